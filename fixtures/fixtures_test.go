package fixtures

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPostIsValid(t *testing.T) {
	for i := 0; i < 20; i++ {
		p := NewPost()
		require.NoError(t, p.Validate())
		assert.True(t, p.ID.IsZero(), "fixtures must not assign ids")
		assert.True(t, p.Created.Before(time.Now()))
		assert.NotEmpty(t, p.Content)
	}
}

func TestNewPosts(t *testing.T) {
	posts := NewPosts(SeedSize)
	assert.Len(t, posts, SeedSize)
	assert.NotSame(t, posts[0], posts[1])
}

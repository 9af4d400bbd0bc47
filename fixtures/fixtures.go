// Package fixtures generates random blog posts for seeding and tests.
package fixtures

import (
	"strings"
	"time"

	"github.com/Pallinder/go-randomdata"

	"blog-api/models"
)

// SeedSize is the number of posts seeded before each integration test.
const SeedSize = 11

// NewAuthor returns an author with random first and last names.
func NewAuthor() models.Author {
	return models.Author{
		FirstName: randomdata.FirstName(randomdata.RandomGender),
		LastName:  randomdata.LastName(),
	}
}

// NewPost returns an unsaved post with random content created in the past.
func NewPost() *models.BlogPost {
	return &models.BlogPost{
		Author:  NewAuthor(),
		Title:   Title(),
		Content: randomdata.Paragraph(),
		Created: PastDate(),
	}
}

// NewPosts returns n unsaved posts.
func NewPosts(n int) []*models.BlogPost {
	out := make([]*models.BlogPost, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, NewPost())
	}
	return out
}

// Title returns a few random words.
func Title() string {
	words := []string{randomdata.Adjective(), randomdata.Noun(), randomdata.Noun()}
	return strings.Join(words, " ")
}

// PastDate returns a millisecond precision UTC time within the last year.
func PastDate() time.Time {
	back := time.Duration(randomdata.Number(1, 365*24)) * time.Hour
	return time.Now().Add(-back).UTC().Truncate(time.Millisecond)
}

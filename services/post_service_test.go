package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"blog-api/dto"
	"blog-api/fixtures"
	"blog-api/models"
	"blog-api/repositories"
	"blog-api/services"
)

type fakePublisher struct {
	created []primitive.ObjectID
	updated []primitive.ObjectID
	deleted []primitive.ObjectID
	err     error
}

func (f *fakePublisher) PublishPostCreated(_ context.Context, p *models.BlogPost) error {
	f.created = append(f.created, p.ID)
	return f.err
}

func (f *fakePublisher) PublishPostUpdated(_ context.Context, p *models.BlogPost) error {
	f.updated = append(f.updated, p.ID)
	return f.err
}

func (f *fakePublisher) PublishPostDeleted(_ context.Context, id primitive.ObjectID) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

func newService(t *testing.T) (*services.PostService, *repositories.MemoryPostRepository, *fakePublisher) {
	t.Helper()
	repo := repositories.NewMemoryPostRepository()
	pub := &fakePublisher{}
	return services.NewPostService(repo, pub), repo, pub
}

func TestListReturnsEmptySliceNotNil(t *testing.T) {
	svc, _, _ := newService(t)

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestCreateThenGet(t *testing.T) {
	svc, _, pub := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.CreatePostRequest{
		Author:  dto.AuthorDTO{FirstName: "April", LastName: "Oneal"},
		Title:   "T",
		Content: "C",
	})
	require.NoError(t, err)
	assert.Equal(t, "April Oneal", created.Author)
	assert.False(t, created.Created.IsZero())
	require.Len(t, pub.created, 1)
	assert.Equal(t, created.ID, pub.created[0].Hex())

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "T", got.Title)
	assert.Equal(t, "C", got.Content)
}

func TestCreateRejectsMissingTitle(t *testing.T) {
	svc, repo, pub := newService(t)

	_, err := svc.Create(context.Background(), dto.CreatePostRequest{
		Author: dto.AuthorDTO{FirstName: "April", LastName: "Oneal"},
	})
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Empty(t, pub.created)

	count, _ := repo.Count(context.Background())
	assert.Zero(t, count)
}

func TestCreateSucceedsWhenPublishFails(t *testing.T) {
	svc, _, pub := newService(t)
	pub.err = errors.New("broker down")

	_, err := svc.Create(context.Background(), dto.CreatePostRequest{
		Author: dto.AuthorDTO{FirstName: "a", LastName: "b"},
		Title:  "t",
	})
	assert.NoError(t, err)
}

func TestGetByIDMalformedIsNotFound(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.GetByID(context.Background(), "not-an-object-id")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUpdate(t *testing.T) {
	svc, repo, pub := newService(t)
	ctx := context.Background()
	post := fixtures.NewPost()
	require.NoError(t, repo.Insert(ctx, post))

	title := "here is a title"
	updated, err := svc.Update(ctx, post.ID.Hex(), dto.UpdatePostRequest{
		ID:     post.ID.Hex(),
		Title:  &title,
		Author: &dto.AuthorDTO{FirstName: "April", LastName: "Oneal"},
	})
	require.NoError(t, err)
	assert.Equal(t, post.ID.Hex(), updated.ID)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, "April Oneal", updated.Author)
	assert.Equal(t, post.Content, updated.Content)
	assert.Equal(t, []primitive.ObjectID{post.ID}, pub.updated)
}

func TestUpdateRejectsMismatchedBodyID(t *testing.T) {
	svc, repo, _ := newService(t)
	ctx := context.Background()
	post := fixtures.NewPost()
	require.NoError(t, repo.Insert(ctx, post))

	title := "x"
	_, err := svc.Update(ctx, post.ID.Hex(), dto.UpdatePostRequest{ID: primitive.NewObjectID().Hex(), Title: &title})

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "id")
}

func TestUpdateAcceptsBodyIDInOtherHexCase(t *testing.T) {
	svc, repo, _ := newService(t)
	ctx := context.Background()
	post := fixtures.NewPost()
	require.NoError(t, repo.Insert(ctx, post))

	title := "case insensitive"
	updated, err := svc.Update(ctx, strings.ToUpper(post.ID.Hex()), dto.UpdatePostRequest{
		ID:    post.ID.Hex(),
		Title: &title,
	})
	require.NoError(t, err)
	assert.Equal(t, post.ID.Hex(), updated.ID)
	assert.Equal(t, title, updated.Title)
}

func TestUpdateRejectsMalformedBodyID(t *testing.T) {
	svc, repo, _ := newService(t)
	ctx := context.Background()
	post := fixtures.NewPost()
	require.NoError(t, repo.Insert(ctx, post))

	title := "x"
	_, err := svc.Update(ctx, post.ID.Hex(), dto.UpdatePostRequest{ID: "zzz", Title: &title})

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "id")
}

func TestDelete(t *testing.T) {
	svc, repo, pub := newService(t)
	ctx := context.Background()
	post := fixtures.NewPost()
	require.NoError(t, repo.Insert(ctx, post))

	require.NoError(t, svc.Delete(ctx, post.ID.Hex()))
	assert.Equal(t, []primitive.ObjectID{post.ID}, pub.deleted)

	_, err := svc.GetByID(ctx, post.ID.Hex())
	assert.ErrorIs(t, err, models.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, post.ID.Hex()), models.ErrNotFound)
}

func TestServiceWithoutPublisher(t *testing.T) {
	svc := services.NewPostService(repositories.NewMemoryPostRepository(), nil)

	_, err := svc.Create(context.Background(), dto.CreatePostRequest{
		Author: dto.AuthorDTO{FirstName: "a", LastName: "b"},
		Title:  "t",
	})
	assert.NoError(t, err)
}

func TestSeedAndCount(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.Seed(ctx, fixtures.NewPosts(fixtures.SeedSize)))

	count, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(fixtures.SeedSize), count)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, fixtures.SeedSize)
}

package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"blog-api/dto"
	"blog-api/logger"
	"blog-api/models"
)

// PostStore is the data-access contract the service depends on.
// repositories.PostRepository and repositories.MemoryPostRepository satisfy it.
type PostStore interface {
	List(ctx context.Context) ([]models.BlogPost, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.BlogPost, error)
	Insert(ctx context.Context, p *models.BlogPost) error
	InsertMany(ctx context.Context, posts []*models.BlogPost) error
	Update(ctx context.Context, id primitive.ObjectID, upd models.PostUpdate) (*models.BlogPost, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}

// EventPublisher receives post lifecycle notifications.
type EventPublisher interface {
	PublishPostCreated(ctx context.Context, post *models.BlogPost) error
	PublishPostUpdated(ctx context.Context, post *models.BlogPost) error
	PublishPostDeleted(ctx context.Context, id primitive.ObjectID) error
}

// PostService encapsulates business logic for posts and DTO mapping.
//
// - store: 포스트 CRUD 를 수행하는 저장소
// - events: nil 이면 이벤트를 발행하지 않는다
type PostService struct {
	store  PostStore
	events EventPublisher
}

func NewPostService(store PostStore, events EventPublisher) *PostService {
	return &PostService{store: store, events: events}
}

// List returns every post as view objects. Never nil.
func (s *PostService) List(ctx context.Context) ([]dto.PostDTO, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PostDTO, 0, len(items))
	for _, p := range items {
		out = append(out, dto.NewPostDTO(p))
	}
	return out, nil
}

// GetByID loads a post by its ObjectID hex and returns a DTO
func (s *PostService) GetByID(ctx context.Context, hexID string) (*dto.PostDTO, error) {
	id, err := parseID(hexID)
	if err != nil {
		return nil, err
	}
	p, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d := dto.NewPostDTO(*p)
	return &d, nil
}

// Create persists a new post and returns it with the assigned id.
func (s *PostService) Create(ctx context.Context, req dto.CreatePostRequest) (*dto.PostDTO, error) {
	p := req.Model()
	if err := s.store.Insert(ctx, p); err != nil {
		return nil, err
	}
	logger.DebugWithFields("post created", logger.Fields{"post_id": p.ID.Hex()})
	if s.events != nil {
		if err := s.events.PublishPostCreated(ctx, p); err != nil {
			logPublishFailure("post.created", p.ID, err)
		}
	}
	d := dto.NewPostDTO(*p)
	return &d, nil
}

// Update applies a partial update to the post identified by hexID.
func (s *PostService) Update(ctx context.Context, hexID string, req dto.UpdatePostRequest) (*dto.PostDTO, error) {
	id, err := parseID(hexID)
	if err != nil {
		return nil, err
	}
	if err := checkBodyID(id, req.ID); err != nil {
		return nil, err
	}
	p, err := s.store.Update(ctx, id, req.Model())
	if err != nil {
		return nil, err
	}
	logger.DebugWithFields("post updated", logger.Fields{"post_id": p.ID.Hex()})
	if s.events != nil {
		if err := s.events.PublishPostUpdated(ctx, p); err != nil {
			logPublishFailure("post.updated", p.ID, err)
		}
	}
	d := dto.NewPostDTO(*p)
	return &d, nil
}

// Delete removes the post identified by hexID.
func (s *PostService) Delete(ctx context.Context, hexID string) error {
	id, err := parseID(hexID)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	logger.DebugWithFields("post deleted", logger.Fields{"post_id": id.Hex()})
	if s.events != nil {
		if err := s.events.PublishPostDeleted(ctx, id); err != nil {
			logPublishFailure("post.deleted", id, err)
		}
	}
	return nil
}

// Seed bulk inserts posts. Used by the seed command.
func (s *PostService) Seed(ctx context.Context, posts []*models.BlogPost) error {
	return s.store.InsertMany(ctx, posts)
}

func (s *PostService) Count(ctx context.Context) (int64, error) {
	return s.store.Count(ctx)
}

// Health reports whether the backing store is reachable.
func (s *PostService) Health(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// parseID treats a malformed hex id as an id that resolves to nothing.
func parseID(hexID string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return primitive.NilObjectID, models.ErrNotFound
	}
	return id, nil
}

// checkBodyID 는 바디에 id 가 있으면 경로 id 와 같은 ObjectID 인지 확인한다.
// hex 대소문자 차이는 같은 id 로 본다.
func checkBodyID(pathID primitive.ObjectID, bodyID string) error {
	if bodyID == "" {
		return nil
	}
	id, err := primitive.ObjectIDFromHex(bodyID)
	if err != nil {
		return models.NewValidationError(map[string]string{
			"id": fmt.Sprintf("request body id (%s) is not a valid id", bodyID),
		})
	}
	if id != pathID {
		return models.NewValidationError(map[string]string{
			"id": fmt.Sprintf("request path id (%s) and request body id (%s) must match", pathID.Hex(), bodyID),
		})
	}
	return nil
}

func logPublishFailure(eventType string, id primitive.ObjectID, err error) {
	logger.ErrorWithFields("failed to publish post event", logger.Fields{
		"event_type": eventType,
		"post_id":    id.Hex(),
		"error":      err.Error(),
	})
}

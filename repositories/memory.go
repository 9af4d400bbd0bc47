package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"blog-api/models"
)

// MemoryPostRepository keeps posts in process memory.
// It follows the same contract as PostRepository and backs handler tests
// and local runs without MongoDB.
type MemoryPostRepository struct {
	mu    sync.RWMutex
	posts map[primitive.ObjectID]models.BlogPost
}

func NewMemoryPostRepository() *MemoryPostRepository {
	return &MemoryPostRepository{posts: make(map[primitive.ObjectID]models.BlogPost)}
}

func (r *MemoryPostRepository) List(ctx context.Context) ([]models.BlogPost, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.BlogPost, 0, len(r.posts))
	for _, p := range r.posts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Created.Equal(out[j].Created) {
			return out[i].Created.After(out[j].Created)
		}
		return out[i].ID.Hex() > out[j].ID.Hex()
	})
	return out, nil
}

func (r *MemoryPostRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.BlogPost, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.posts[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &p, nil
}

func (r *MemoryPostRepository) Insert(ctx context.Context, p *models.BlogPost) error {
	return r.InsertMany(ctx, []*models.BlogPost{p})
}

func (r *MemoryPostRepository) InsertMany(ctx context.Context, posts []*models.BlogPost) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, p := range posts {
		if err := p.Validate(); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// 미리 지정된 id 는 저장된 것과도, 배치 안에서도 겹치면 안 된다
	seen := make(map[primitive.ObjectID]bool, len(posts))
	for _, p := range posts {
		if p.ID.IsZero() {
			continue
		}
		if _, ok := r.posts[p.ID]; ok || seen[p.ID] {
			return models.NewDuplicateIDError(p.ID.Hex())
		}
		seen[p.ID] = true
	}

	now := time.Now()
	for _, p := range posts {
		prepareInsert(p, now)
		r.posts[p.ID] = *p
	}
	return nil
}

func (r *MemoryPostRepository) Update(ctx context.Context, id primitive.ObjectID, upd models.PostUpdate) (*models.BlogPost, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := upd.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	upd.Apply(&p)
	p.Created = p.Created.UTC().Truncate(time.Millisecond)
	r.posts[id] = p
	return &p, nil
}

func (r *MemoryPostRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *MemoryPostRepository) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.posts)), nil
}

func (r *MemoryPostRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Truncate removes every post.
func (r *MemoryPostRepository) Truncate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posts = make(map[primitive.ObjectID]models.BlogPost)
	return nil
}

package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"blog-api/models"
)

const DefaultCollection = "posts"

type PostRepository struct {
	col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return NewPostRepositoryWithCollection(db, DefaultCollection)
}

func NewPostRepositoryWithCollection(db *mongo.Database, collection string) *PostRepository {
	if collection == "" {
		collection = DefaultCollection
	}
	return &PostRepository{col: db.Collection(collection)}
}

// List returns every post sorted by created desc.
func (r *PostRepository) List(ctx context.Context) ([]models.BlogPost, error) {
	findOpts := options.Find().SetSort(bson.D{
		{Key: "created", Value: -1},
		{Key: "_id", Value: -1},
	})
	cur, err := r.col.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	defer cur.Close(ctx)

	results := []models.BlogPost{}
	for cur.Next(ctx) {
		var p models.BlogPost
		if err := cur.Decode(&p); err != nil {
			return nil, fmt.Errorf("decode post: %w", err)
		}
		results = append(results, p)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// FindByID returns a post by its ObjectID
func (r *PostRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.BlogPost, error) {
	var p models.BlogPost
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("find post %s: %w", id.Hex(), err)
	}
	return &p, nil
}

// Insert validates and inserts a new post, assigning its ID.
// On failure the post keeps the id and created it was passed with.
func (r *PostRepository) Insert(ctx context.Context, p *models.BlogPost) error {
	if err := p.Validate(); err != nil {
		return err
	}
	origID, origCreated := p.ID, p.Created
	prepareInsert(p, time.Now())

	if _, err := r.col.InsertOne(ctx, p); err != nil {
		p.ID, p.Created = origID, origCreated
		if mongo.IsDuplicateKeyError(err) {
			return models.NewDuplicateIDError(origID.Hex())
		}
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

// InsertMany validates every post before inserting any of them.
func (r *PostRepository) InsertMany(ctx context.Context, posts []*models.BlogPost) error {
	if len(posts) == 0 {
		return nil
	}
	for _, p := range posts {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	now := time.Now()
	docs := make([]interface{}, 0, len(posts))
	for _, p := range posts {
		prepareInsert(p, now)
		docs = append(docs, p)
	}
	if _, err := r.col.InsertMany(ctx, docs); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.NewValidationError(map[string]string{"id": "duplicate id"})
		}
		return fmt.Errorf("insert posts: %w", err)
	}
	return nil
}

// Update applies the supplied fields and returns the post after the update.
func (r *PostRepository) Update(ctx context.Context, id primitive.ObjectID, upd models.PostUpdate) (*models.BlogPost, error) {
	if err := upd.Validate(); err != nil {
		return nil, err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p models.BlogPost
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": updateFields(upd)}, opts).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("update post %s: %w", id.Hex(), err)
	}
	return &p, nil
}

// Delete removes a post by ID.
func (r *PostRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete post %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *PostRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

// Ping checks that the collection's database answers.
func (r *PostRepository) Ping(ctx context.Context) error {
	return r.col.Database().RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}

func updateFields(upd models.PostUpdate) bson.M {
	set := bson.M{}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Content != nil {
		set["content"] = *upd.Content
	}
	if upd.Author != nil {
		set["author"] = *upd.Author
	}
	if upd.Created != nil {
		set["created"] = upd.Created.UTC().Truncate(time.Millisecond)
	}
	return set
}

// prepareInsert fills storage-assigned defaults.
// Mongo stores time with millisecond precision, so created is truncated to
// keep the in-memory value equal to the persisted one.
func prepareInsert(p *models.BlogPost, now time.Time) {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.Created.IsZero() {
		p.Created = now
	}
	p.Created = p.Created.UTC().Truncate(time.Millisecond)
}

// Truncate removes every post from the collection.
func (r *PostRepository) Truncate(ctx context.Context) error {
	_, err := r.col.DeleteMany(ctx, bson.M{})
	return err
}

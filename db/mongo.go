package db

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"blog-api/config"
	"blog-api/logger"
)

var (
	clientOnce sync.Once
	client     *mongo.Client
	db         *mongo.Database
)

// Init initializes the global Mongo client and database using config values.
func Init(ctx context.Context) error {
	var initErr error
	clientOnce.Do(func() {
		cfg := config.GetConfig().Mongo
		cl, d, err := Open(ctx, cfg)
		if err != nil {
			initErr = err
			return
		}
		client = cl
		db = d
		logger.InfoWithFields("MongoDB connected and indexes ensured", logger.Fields{
			"database":   cfg.Database,
			"collection": cfg.Collection,
		})
	})
	return initErr
}

// Open connects to MongoDB, verifies the connection and ensures indexes on
// the posts collection. Callers own the returned client.
func Open(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cl, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}
	// Ping to verify connection
	if err := cl.Ping(ctx, readpref.Primary()); err != nil {
		_ = cl.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}
	d := cl.Database(cfg.Database)

	if err := ensureIndexes(ctx, d, cfg.Collection); err != nil {
		_ = cl.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ensure indexes: %w", err)
	}
	return cl, d, nil
}

func Database() *mongo.Database { return db }

// Close disconnects the global client.
func Close(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

// Drop removes the whole database. Used by integration tests for teardown.
func Drop(ctx context.Context, d *mongo.Database) error {
	logger.WarnWithFields("dropping database", logger.Fields{"database": d.Name()})
	return d.Drop(ctx)
}

func ensureIndexes(ctx context.Context, d *mongo.Database, collection string) error {
	// posts: created desc, matches the default list order
	_, err := d.Collection(collection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "created", Value: -1}, {Key: "_id", Value: -1}},
		Options: options.Index().SetName("idx_created_desc"),
	})
	return err
}

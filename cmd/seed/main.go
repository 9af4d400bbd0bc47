package main

import (
	"context"
	"flag"
	"os"

	"blog-api/config"
	"blog-api/db"
	"blog-api/fixtures"
	"blog-api/logger"
	"blog-api/repositories"
	"blog-api/services"
)

// seed 는 랜덤 포스트를 컬렉션에 채워 넣는다. 로컬 개발과 통합 테스트 준비용.
func main() {
	n := flag.Int("n", fixtures.SeedSize, "number of posts to insert")
	truncate := flag.Bool("truncate", false, "remove existing posts first")
	flag.Parse()

	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	ctx := context.Background()
	if err := db.Init(ctx); err != nil {
		logger.Log.Errorf("failed to initialize MongoDB: %v", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close(ctx) }()

	repo := repositories.NewPostRepositoryWithCollection(db.Database(), cfg.Mongo.Collection)
	if *truncate {
		if err := repo.Truncate(ctx); err != nil {
			logger.Log.Errorf("failed to truncate posts: %v", err)
			os.Exit(1)
		}
	}

	svc := services.NewPostService(repo, nil)
	if err := svc.Seed(ctx, fixtures.NewPosts(*n)); err != nil {
		logger.Log.Errorf("failed to seed posts: %v", err)
		os.Exit(1)
	}

	count, err := svc.Count(ctx)
	if err != nil {
		logger.Log.Errorf("failed to count posts: %v", err)
		os.Exit(1)
	}
	logger.InfoWithFields("seeded posts", logger.Fields{"inserted": *n, "total": count})
}

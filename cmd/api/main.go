package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"blog-api/api/router"
	"blog-api/config"
	"blog-api/db"
	"blog-api/dispatcher"
	"blog-api/eventbus"
	"blog-api/logger"
	"blog-api/repositories"
	"blog-api/services"
)

// @title           Blog API
// @version         1.0
// @description     CRUD API for blog posts backed by MongoDB
// @BasePath        /
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// MongoDB 초기화
	if err := db.Init(ctx); err != nil {
		logger.Log.Errorf("failed to initialize MongoDB: %v", err)
		os.Exit(1)
	}

	postRepo := repositories.NewPostRepositoryWithCollection(db.Database(), cfg.Mongo.Collection)

	// 이벤트 발행은 설정된 경우에만 사용한다
	var publisher services.EventPublisher
	if cfg.Events.Enabled {
		bus, err := newEventBus(cfg.Events)
		if err != nil {
			logger.Log.Errorf("failed to create event bus: %v", err)
			os.Exit(1)
		}
		defer bus.Close()
		publisher = dispatcher.NewEventDispatcher(bus, eventbus.NewTopic(cfg.Events.Topic))
	}

	postsSvc := services.NewPostService(postRepo, publisher)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router.WithCORS(router.New(postsSvc), cfg.CORS),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.InfoWithFields("server listening", logger.Fields{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Errorf("server stopped: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Warnf("server forced to shutdown: %v", err)
	}
	if err := db.Close(shutdownCtx); err != nil {
		logger.Log.Warnf("failed to close MongoDB: %v", err)
	}
}

func newEventBus(cfg config.EventsConfig) (*eventbus.KafkaEventBus, error) {
	topic := eventbus.NewTopic(cfg.Topic)
	if err := eventbus.EnsureTopic(cfg.Brokers, topic, 3); err != nil {
		// 자동 생성이 막힌 클러스터에서도 발행은 시도한다
		logger.WarnWithFields("failed to ensure topic", logger.Fields{
			"topic":   topic.Base(),
			"brokers": cfg.Brokers,
			"error":   err.Error(),
		})
	}
	return eventbus.NewKafkaEventBus(cfg.Brokers)
}

package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"blog-api/api/handlers"
	"blog-api/api/middleware"
	"blog-api/services"
	_ "blog-api/docs"
)

func New(postsSvc *services.PostService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestTrace())

	// Health check
	r.GET("/health", handlers.HealthHandler(postsSvc))

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	posts := r.Group("/posts")
	{
		posts.GET("", handlers.ListPostsHandler(postsSvc))
		posts.POST("", handlers.CreatePostHandler(postsSvc))
		posts.GET("/:id", handlers.GetPostHandler(postsSvc))
		posts.PUT("/:id", handlers.UpdatePostHandler(postsSvc))
		posts.DELETE("/:id", handlers.DeletePostHandler(postsSvc))
	}

	return r
}

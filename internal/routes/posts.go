package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/handlers"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/middleware"
)

func RegisterPostRoutes(r gin.IRouter) {
	posts := r.Group("/posts")
	posts.Use(middleware.AuthMiddleware())
	{
		posts.POST("", handlers.CreatePost)
		posts.GET("/feed", handlers.GetFeed)
		posts.DELETE("/:id", handlers.DeletePost)

		posts.POST("/:id/like", handlers.ToggleLike)
		posts.POST("/:id/comments", handlers.AddComment)
		posts.GET("/:id/comments", handlers.GetComments)
	}

	comments := r.Group("/comments")
	comments.Use(middleware.AuthMiddleware())
	{
		comments.DELETE("/:id", handlers.DeleteComment)
	}
}

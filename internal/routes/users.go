package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/handlers"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/middleware"
)

func RegisterUserRoutes(r gin.IRouter) {
	users := r.Group("/users")
	{
		protected := users.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/me", handlers.GetMe)
			protected.PUT("/me", handlers.UpdateProfile)
			protected.GET("/search", handlers.SearchUsers)
		}

		// Public profile pages
		users.GET("/:username", handlers.GetUserByUsername)
	}
}

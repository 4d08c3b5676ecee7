package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/handlers"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/middleware"
)

func RegisterUploadRoutes(r gin.IRouter) {
	upload := r.Group("/upload")
	upload.Use(middleware.AuthMiddleware())
	{
		upload.POST("", handlers.UploadFile)
		upload.POST("/avatar", handlers.UploadAvatar)
		upload.POST("/chat", handlers.UploadChatImage)
		upload.POST("/post", handlers.UploadPostMedia)
		upload.POST("/storeroom", handlers.UploadStoreroomFile)
	}
}

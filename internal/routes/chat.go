package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/handlers"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/middleware"
)

func RegisterChatRoutes(r gin.IRouter, h *handlers.ChatHandler) {
	chat := r.Group("/chat")
	chat.Use(middleware.AuthMiddleware())
	{
		chat.GET("/partners", h.GetChatPartners)
		chat.GET("/messages/:otherUserId", h.GetMessages)
		chat.POST("/messages/:receiverId", h.SendMessage)
	}
}

package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/handlers"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/middleware"
)

func RegisterCompanionRoutes(r gin.IRouter, h *handlers.CompanionHandler) {
	companions := r.Group("/companions")
	companions.Use(middleware.AuthMiddleware())
	{
		companions.GET("", h.ListCompanions)
		companions.DELETE("/:userId", h.RemoveCompanion)

		companions.GET("/requests", h.ListRequests)
		companions.POST("/requests", h.SendRequest)
		companions.POST("/requests/:id/accept", h.AcceptRequest)
		companions.POST("/requests/:id/reject", h.RejectRequest)
	}
}

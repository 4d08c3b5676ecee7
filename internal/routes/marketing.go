package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/handlers"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/middleware"
)

// Marketing-page endpoints, public but rate limited.
func RegisterMarketingRoutes(r gin.IRouter) {
	newsletter := r.Group("/newsletter")
	{
		newsletter.POST("/subscribe", handlers.SubscribeNewsletter)
		newsletter.POST("/unsubscribe", handlers.UnsubscribeNewsletter)
	}

	r.POST("/contact", middleware.ContactRateLimit(), handlers.SubmitContactForm)
}

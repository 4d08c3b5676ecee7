package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/database"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/models"
	"github.com/shivamgupta951/YemmyChats-sub000/pkg/errors"
	"github.com/shivamgupta951/YemmyChats-sub000/pkg/utils"
)

type newsletterInput struct {
	Email string `json:"email" binding:"required,email"`
}

// SubscribeNewsletter handles POST /newsletter/subscribe. Idempotent:
// re-subscribing an existing address succeeds quietly.
func SubscribeNewsletter(c *gin.Context) {
	var input newsletterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, errors.BadRequest("A valid email is required"))
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	sub := models.NewsletterSubscriber{Email: email}
	if err := database.DB.Where(models.NewsletterSubscriber{Email: email}).
		FirstOrCreate(&sub).Error; err != nil {
		fail(c, errors.Internal("Subscription failed"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subscribed"})
}

// UnsubscribeNewsletter handles POST /newsletter/unsubscribe
func UnsubscribeNewsletter(c *gin.Context) {
	var input newsletterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, errors.BadRequest("A valid email is required"))
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	database.DB.Where("email = ?", email).Delete(&models.NewsletterSubscriber{})
	c.JSON(http.StatusOK, gin.H{"message": "Unsubscribed"})
}

type contactInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject"`
	Body    string `json:"body" binding:"required"`
}

// SubmitContactForm handles POST /contact
func SubmitContactForm(c *gin.Context) {
	var input contactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, errors.BadRequest("Name, email, and message are required"))
		return
	}

	msg := models.ContactMessage{
		Name:    utils.TruncateString(input.Name, 80),
		Email:   strings.ToLower(strings.TrimSpace(input.Email)),
		Subject: utils.TruncateString(input.Subject, 200),
		Body:    utils.TruncateString(input.Body, 5000),
	}
	if err := database.DB.Create(&msg).Error; err != nil {
		fail(c, errors.Internal("Failed to submit message"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Thanks for reaching out, we'll get back to you soon"})
}

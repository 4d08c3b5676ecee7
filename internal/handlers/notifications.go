package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/database"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/models"
	"github.com/shivamgupta951/YemmyChats-sub000/pkg/errors"
)

// prefsFor loads the user's notification preferences, creating the default
// row on first access.
func prefsFor(userID string) (models.NotificationPrefs, error) {
	prefs := models.NotificationPrefs{
		UserID:   userID,
		Messages: true,
		Requests: true,
		Posts:    true,
	}
	err := database.DB.Where(models.NotificationPrefs{UserID: userID}).
		Attrs(prefs).FirstOrCreate(&prefs).Error
	return prefs, err
}

// notifyEnabled checks one preference toggle before a realtime emit.
// Errors degrade to "notify": losing a toggle beats losing notifications.
func notifyEnabled(userID, kind string) bool {
	prefs, err := prefsFor(userID)
	if err != nil {
		return true
	}
	switch kind {
	case "messages":
		return prefs.Messages
	case "requests":
		return prefs.Requests
	case "posts":
		return prefs.Posts
	}
	return true
}

// GetNotificationPrefs handles GET /notifications/prefs
func GetNotificationPrefs(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	prefs, err := prefsFor(userID)
	if err != nil {
		fail(c, errors.Internal("Failed to fetch preferences"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"prefs": prefs})
}

type updatePrefsInput struct {
	Messages *bool `json:"messages"`
	Requests *bool `json:"requests"`
	Posts    *bool `json:"posts"`
	Email    *bool `json:"email"`
}

// UpdateNotificationPrefs handles PUT /notifications/prefs.
// Only fields present in the body change.
func UpdateNotificationPrefs(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var input updatePrefsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, errors.BadRequest("Invalid request"))
		return
	}

	prefs, err := prefsFor(userID)
	if err != nil {
		fail(c, errors.Internal("Failed to load preferences"))
		return
	}

	updates := map[string]interface{}{}
	if input.Messages != nil {
		updates["messages"] = *input.Messages
	}
	if input.Requests != nil {
		updates["requests"] = *input.Requests
	}
	if input.Posts != nil {
		updates["posts"] = *input.Posts
	}
	if input.Email != nil {
		updates["email"] = *input.Email
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&prefs).Updates(updates).Error; err != nil {
			fail(c, errors.Internal("Failed to update preferences"))
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"prefs": prefs})
}

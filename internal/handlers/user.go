package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/database"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/models"
	"github.com/shivamgupta951/YemmyChats-sub000/pkg/errors"
	"github.com/shivamgupta951/YemmyChats-sub000/pkg/logger"
	"github.com/shivamgupta951/YemmyChats-sub000/pkg/utils"
)

// GetMe handles GET /users/me
func GetMe(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		fail(c, errors.NotFound("User not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

type updateProfileInput struct {
	Name      *string   `json:"name"`
	Bio       *string   `json:"bio"`
	Avatar    *string   `json:"avatar"`
	Interests *[]string `json:"interests"`
}

// UpdateProfile handles PUT /users/me
func UpdateProfile(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var input updateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, errors.BadRequest("Invalid request"))
		return
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = utils.TruncateString(*input.Name, 80)
	}
	if input.Bio != nil {
		updates["bio"] = utils.TruncateString(*input.Bio, 500)
	}
	if input.Avatar != nil {
		updates["avatar"] = *input.Avatar
	}
	if input.Interests != nil {
		updates["interests"] = pq.StringArray(*input.Interests)
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
			fail(c, errors.Internal("Failed to update profile"))
			return
		}
	}

	var user models.User
	database.DB.First(&user, "id = ?", userID)
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// GetUserByUsername handles GET /users/:username (public profile)
func GetUserByUsername(c *gin.Context) {
	username := c.Param("username")

	var user models.User
	if err := database.DB.First(&user, "username = ?", username).Error; err != nil {
		fail(c, errors.NotFound("User not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// SearchUsers handles GET /users/search?q=...
func SearchUsers(c *gin.Context) {
	q := c.Query("q")
	if len(q) < 2 {
		fail(c, errors.BadRequest("Query must be at least 2 characters"))
		return
	}

	var users []models.User
	pattern := "%" + utils.TruncateString(q, 50) + "%"
	if err := database.DB.
		Where("username ILIKE ? OR name ILIKE ?", pattern, pattern).
		Limit(20).Find(&users).Error; err != nil {
		fail(c, errors.Internal("Search failed"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// StampLastSeen persists the disconnect timestamp. Wired into the realtime
// hub; best-effort, failures only logged.
func StampLastSeen(userID string) {
	now := time.Now()
	if err := database.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("last_seen", &now).Error; err != nil {
		logger.Warn().Err(err).Str("user_id", userID).Msg("Failed to stamp last seen")
	}
}

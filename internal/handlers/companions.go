package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/database"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/models"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/realtime"
	"github.com/shivamgupta951/YemmyChats-sub000/pkg/errors"
	"github.com/shivamgupta951/YemmyChats-sub000/pkg/logger"
	"gorm.io/gorm"
)

// CompanionHandler manages the friend graph. The hub is injected so
// accepted/incoming requests can be pushed to online users.
type CompanionHandler struct {
	hub *realtime.Hub
}

func NewCompanionHandler(hub *realtime.Hub) *CompanionHandler {
	return &CompanionHandler{hub: hub}
}

// areCompanions reports whether the unordered pair has an accepted link.
func areCompanions(a, b string) bool {
	lo, hi := models.OrderPair(a, b)
	var count int64
	database.DB.Model(&models.Companion{}).
		Where("user_a_id = ? AND user_b_id = ?", lo, hi).
		Count(&count)
	return count > 0
}

// companionsOf returns the users linked to userID.
func companionsOf(userID string) ([]models.User, error) {
	var pairs []models.Companion
	if err := database.DB.
		Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Find(&pairs).Error; err != nil {
		return nil, err
	}

	otherIDs := make([]string, 0, len(pairs))
	for _, p := range pairs {
		if p.UserAID == userID {
			otherIDs = append(otherIDs, p.UserBID)
		} else {
			otherIDs = append(otherIDs, p.UserAID)
		}
	}

	users := []models.User{}
	if len(otherIDs) == 0 {
		return users, nil
	}
	err := database.DB.Where("id IN ?", otherIDs).Order("username asc").Find(&users).Error
	return users, err
}

type sendRequestInput struct {
	ReceiverID string `json:"receiverId" binding:"required"`
}

// SendRequest handles POST /companions/requests
func (h *CompanionHandler) SendRequest(c *gin.Context) {
	senderID := c.MustGet("userId").(string)

	var input sendRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, errors.BadRequest("receiverId required"))
		return
	}
	receiverID := input.ReceiverID

	if senderID == receiverID {
		fail(c, errors.BadRequest("Cannot send a request to yourself"))
		return
	}

	var receiver models.User
	if err := database.DB.Select("id").First(&receiver, "id = ?", receiverID).Error; err != nil {
		fail(c, errors.NotFound("User not found"))
		return
	}

	if areCompanions(senderID, receiverID) {
		fail(c, errors.Conflict("Already companions"))
		return
	}

	var existing models.CompanionRequest
	err := database.DB.Where(
		"((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)) AND status = ?",
		senderID, receiverID, receiverID, senderID, models.CompanionRequestPending,
	).First(&existing).Error
	if err == nil {
		fail(c, errors.Conflict("A request is already pending"))
		return
	}

	req := models.CompanionRequest{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     models.CompanionRequestPending,
	}
	if err := database.DB.Create(&req).Error; err != nil {
		fail(c, errors.Internal("Failed to send request"))
		return
	}

	if notifyEnabled(receiverID, "requests") {
		h.hub.PushNotification(receiverID, gin.H{
			"type":     "COMPANION_REQUEST",
			"senderId": senderID,
		})
	}

	c.JSON(http.StatusCreated, gin.H{"request": req})
}

// ListRequests handles GET /companions/requests (incoming, pending)
func (h *CompanionHandler) ListRequests(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var requests []models.CompanionRequest
	if err := database.DB.Preload("Sender").
		Where("receiver_id = ? AND status = ?", userID, models.CompanionRequestPending).
		Order("created_at desc").Find(&requests).Error; err != nil {
		fail(c, errors.Internal("Failed to fetch requests"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// AcceptRequest handles POST /companions/requests/:id/accept
func (h *CompanionHandler) AcceptRequest(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	requestID := c.Param("id")

	var req models.CompanionRequest
	if err := database.DB.First(&req, "id = ?", requestID).Error; err != nil {
		fail(c, errors.NotFound("Request not found"))
		return
	}
	if req.ReceiverID != userID {
		fail(c, errors.Forbidden("Not your request to accept"))
		return
	}
	if req.Status != models.CompanionRequestPending {
		fail(c, errors.Conflict("Request already resolved"))
		return
	}

	lo, hi := models.OrderPair(req.SenderID, req.ReceiverID)
	companion := models.Companion{UserAID: lo, UserBID: hi}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&req).Update("status", models.CompanionRequestAccepted).Error; err != nil {
			return err
		}
		return tx.Create(&companion).Error
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to accept companion request")
		fail(c, errors.Internal("Failed to accept request"))
		return
	}

	if notifyEnabled(req.SenderID, "requests") {
		h.hub.PushNotification(req.SenderID, gin.H{
			"type":       "COMPANION_ACCEPT",
			"receiverId": userID,
		})
	}

	c.JSON(http.StatusOK, gin.H{"companion": companion})
}

// RejectRequest handles POST /companions/requests/:id/reject
func (h *CompanionHandler) RejectRequest(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	requestID := c.Param("id")

	var req models.CompanionRequest
	if err := database.DB.First(&req, "id = ?", requestID).Error; err != nil {
		fail(c, errors.NotFound("Request not found"))
		return
	}
	if req.ReceiverID != userID {
		fail(c, errors.Forbidden("Not your request to reject"))
		return
	}
	if req.Status != models.CompanionRequestPending {
		fail(c, errors.Conflict("Request already resolved"))
		return
	}

	database.DB.Model(&req).Update("status", models.CompanionRequestRejected)
	c.JSON(http.StatusOK, gin.H{"message": "Request rejected"})
}

// ListCompanions handles GET /companions
func (h *CompanionHandler) ListCompanions(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	companions, err := companionsOf(userID)
	if err != nil {
		fail(c, errors.Internal("Failed to fetch companions"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"companions": companions})
}

// RemoveCompanion handles DELETE /companions/:userId
func (h *CompanionHandler) RemoveCompanion(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	otherID := c.Param("userId")

	lo, hi := models.OrderPair(userID, otherID)
	result := database.DB.Where("user_a_id = ? AND user_b_id = ?", lo, hi).
		Delete(&models.Companion{})
	if result.Error != nil {
		fail(c, errors.Internal("Failed to remove companion"))
		return
	}
	if result.RowsAffected == 0 {
		fail(c, errors.NotFound("Not companions"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Companion removed"})
}

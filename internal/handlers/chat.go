package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/crypto"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/database"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/models"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/realtime"
	"github.com/shivamgupta951/YemmyChats-sub000/pkg/errors"
	"github.com/shivamgupta951/YemmyChats-sub000/pkg/logger"
)

// ChatHandler owns the message pipeline: encrypt before persist, decrypt
// after fetch, push live to online receivers. Codec and Hub are injected
// so tests build a fresh pair per case.
type ChatHandler struct {
	codec *crypto.Codec
	hub   *realtime.Hub
}

func NewChatHandler(codec *crypto.Codec, hub *realtime.Hub) *ChatHandler {
	return &ChatHandler{codec: codec, hub: hub}
}

type sendMessageInput struct {
	Text  string `json:"text"`
	Image string `json:"image"`
}

// SendMessage handles POST /chat/messages/:receiverId.
// The persisted record holds ciphertext; the HTTP response and the live
// push both carry plaintext.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	senderID := c.MustGet("userId").(string)
	receiverID := c.Param("receiverId")

	var input sendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, errors.BadRequest("Invalid request"))
		return
	}
	if input.Text == "" && input.Image == "" {
		fail(c, errors.BadRequest("Message must have text or an image"))
		return
	}
	if receiverID == senderID {
		fail(c, errors.BadRequest("Cannot message yourself"))
		return
	}

	var receiver models.User
	if err := database.DB.Select("id").First(&receiver, "id = ?", receiverID).Error; err != nil {
		fail(c, errors.NotFound("Receiver not found"))
		return
	}

	if !areCompanions(senderID, receiverID) {
		fail(c, errors.Forbidden("You can only message your companions"))
		return
	}

	stored := ""
	if input.Text != "" {
		var err error
		stored, err = h.codec.Encrypt(input.Text)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to encrypt message")
			fail(c, errors.Internal("Failed to send message"))
			return
		}
	}

	msg := models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       stored,
		Image:      input.Image,
		CreatedAt:  time.Now(),
	}

	// Persist before pushing: a missed live push is recoverable from
	// history, a missed write is not.
	if err := database.DB.Create(&msg).Error; err != nil {
		logger.Error().Err(err).Msg("Failed to persist message")
		fail(c, errors.Internal("Failed to send message"))
		return
	}

	// Plaintext copy for transport and response
	msg.Text = input.Text
	if h.hub.PushMessage(receiverID, msg) {
		logger.Debug().Str("message_id", msg.ID).Str("receiver_id", receiverID).Msg("message pushed live")
	}

	// The newMessage push above is the delivery; this is the badge. Only the
	// badge respects the receiver's messages toggle.
	if notifyEnabled(receiverID, "messages") {
		h.hub.PushNotification(receiverID, gin.H{
			"type":     "NEW_MESSAGE",
			"senderId": senderID,
		})
	}

	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

// GetMessages handles GET /chat/messages/:otherUserId and returns the
// conversation history, oldest first, decrypted per record. A record that
// fails to decrypt gets the placeholder text instead of failing the batch.
func (h *ChatHandler) GetMessages(c *gin.Context) {
	currentUserID := c.MustGet("userId").(string)
	otherUserID := c.Param("otherUserId")

	if !areCompanions(currentUserID, otherUserID) {
		fail(c, errors.Forbidden("You can only view companion conversations"))
		return
	}

	var messages []models.Message
	err := database.DB.Where(
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		currentUserID, otherUserID, otherUserID, currentUserID,
	).Order("created_at asc").Find(&messages).Error
	if err != nil {
		fail(c, errors.Internal("Failed to fetch messages"))
		return
	}

	stored := make([]string, len(messages))
	for i := range messages {
		stored[i] = messages[i].Text
	}
	for i, res := range h.codec.DecryptAll(stored) {
		if res.Err != nil {
			logger.Warn().Err(res.Err).Str("message_id", messages[i].ID).Msg("Undecryptable message, serving placeholder")
			messages[i].Text = crypto.Placeholder
			continue
		}
		messages[i].Text = res.Text
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// GetChatPartners returns the companion users for the chat sidebar.
func (h *ChatHandler) GetChatPartners(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	partners, err := companionsOf(userID)
	if err != nil {
		fail(c, errors.Internal("Failed to fetch chat partners"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"partners": partners})
}

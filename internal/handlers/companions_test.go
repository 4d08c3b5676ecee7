package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/database"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/models"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/realtime"
	"github.com/stretchr/testify/assert"
)

func newTestCompanionHandler() (*CompanionHandler, *realtime.Hub, *recordingEmitter) {
	emitter := &recordingEmitter{}
	hub := realtime.NewHub(realtime.NewRegistry(), nil)
	hub.Bind(emitter)
	return NewCompanionHandler(hub), hub, emitter
}

func TestSendAndAcceptCompanionRequest(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	database.DB.Create(&models.User{ID: "cs1", Username: "csender1", Email: "cs1@example.com"})
	database.DB.Create(&models.User{ID: "cr1", Username: "creceiver1", Email: "cr1@example.com"})

	handler, _, _ := newTestCompanionHandler()

	// Send the request
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("userId", "cs1")
	postJSON(c, "/api/companions/requests", gin.H{"receiverId": "cr1"})

	handler.SendRequest(c)
	assert.Equal(t, http.StatusCreated, w.Code)

	var sent struct {
		Request models.CompanionRequest `json:"request"`
	}
	json.Unmarshal(w.Body.Bytes(), &sent)
	assert.Equal(t, models.CompanionRequestPending, sent.Request.Status)

	// Accept it as the receiver
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Set("userId", "cr1")
	c.Params = gin.Params{{Key: "id", Value: sent.Request.ID}}
	postJSON(c, "/api/companions/requests/"+sent.Request.ID+"/accept", nil)

	handler.AcceptRequest(c)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.True(t, areCompanions("cs1", "cr1"))
	assert.True(t, areCompanions("cr1", "cs1"), "companionship is unordered")
}

func TestAcceptRequest_OnlyReceiverMayAccept(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	database.DB.Create(&models.User{ID: "cs2", Username: "csender2", Email: "cs2@example.com"})
	database.DB.Create(&models.User{ID: "cr2", Username: "creceiver2", Email: "cr2@example.com"})

	req := models.CompanionRequest{SenderID: "cs2", ReceiverID: "cr2", Status: models.CompanionRequestPending}
	database.DB.Create(&req)

	handler, _, _ := newTestCompanionHandler()

	// The sender tries to accept their own request
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("userId", "cs2")
	c.Params = gin.Params{{Key: "id", Value: req.ID}}
	postJSON(c, "/api/companions/requests/"+req.ID+"/accept", nil)

	handler.AcceptRequest(c)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, areCompanions("cs2", "cr2"))
}

func TestSendRequest_DuplicatePendingRejected(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	database.DB.Create(&models.User{ID: "cs3", Username: "csender3", Email: "cs3@example.com"})
	database.DB.Create(&models.User{ID: "cr3", Username: "creceiver3", Email: "cr3@example.com"})
	database.DB.Create(&models.CompanionRequest{SenderID: "cs3", ReceiverID: "cr3", Status: models.CompanionRequestPending})

	handler, _, _ := newTestCompanionHandler()

	// Reverse-direction request while one is already pending
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("userId", "cr3")
	postJSON(c, "/api/companions/requests", gin.H{"receiverId": "cs3"})

	handler.SendRequest(c)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSendRequest_NotifiesOnlineReceiver(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	database.DB.Create(&models.User{ID: "cs4", Username: "csender4", Email: "cs4@example.com"})
	database.DB.Create(&models.User{ID: "cr4", Username: "creceiver4", Email: "cr4@example.com"})

	handler, hub, emitter := newTestCompanionHandler()
	hub.HandleConnect("cr4", "sock-cr4")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("userId", "cs4")
	postJSON(c, "/api/companions/requests", gin.H{"receiverId": "cr4"})

	handler.SendRequest(c)
	assert.Equal(t, http.StatusCreated, w.Code)

	notifications := emitter.byEvent(realtime.EventNotification)
	assert.Len(t, notifications, 1)
	assert.Equal(t, "cr4", notifications[0].Room)
}

func TestSendRequest_RespectsMutedPrefs(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	database.DB.Create(&models.User{ID: "cs5", Username: "csender5", Email: "cs5@example.com"})
	database.DB.Create(&models.User{ID: "cr5", Username: "creceiver5", Email: "cr5@example.com"})
	database.DB.Create(&models.NotificationPrefs{UserID: "cr5", Messages: true, Requests: false, Posts: true})

	handler, hub, emitter := newTestCompanionHandler()
	hub.HandleConnect("cr5", "sock-cr5")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("userId", "cs5")
	postJSON(c, "/api/companions/requests", gin.H{"receiverId": "cr5"})

	handler.SendRequest(c)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, emitter.byEvent(realtime.EventNotification))
}

func TestRemoveCompanion(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	database.DB.Create(&models.User{ID: "cx1", Username: "cxone", Email: "cx1@example.com"})
	database.DB.Create(&models.User{ID: "cx2", Username: "cxtwo", Email: "cx2@example.com"})
	createCompanionPair("cx1", "cx2")

	handler, _, _ := newTestCompanionHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("userId", "cx2")
	c.Params = gin.Params{{Key: "userId", Value: "cx1"}}
	c.Request, _ = http.NewRequest("DELETE", "/api/companions/cx1", nil)

	handler.RemoveCompanion(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, areCompanions("cx1", "cx2"))
}

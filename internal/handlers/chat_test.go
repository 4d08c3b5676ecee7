package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/crypto"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/database"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/models"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/realtime"
	"github.com/shivamgupta951/YemmyChats-sub000/pkg/logger"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupTestDB initializes an in-memory SQLite DB for testing
func SetupTestDB() {
	logger.Init("development")
	db, _ := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	database.DB = db

	// Start from a clean slate; the shared cache keeps state across opens
	for _, table := range []string{
		"messages", "companions", "companion_requests",
		"todo_items", "todo_lists", "storeroom_files", "storerooms",
		"notification_prefs", "posts", "post_likes", "post_comments",
		"newsletter_subscribers", "contact_messages", "users",
	} {
		database.DB.Exec("DELETE FROM " + table)
	}

	database.DB.AutoMigrate(
		&models.User{},
		&models.Message{},
		&models.Companion{},
		&models.CompanionRequest{},
		&models.NotificationPrefs{},
		&models.Post{},
		&models.PostLike{},
		&models.PostComment{},
		&models.TodoList{},
		&models.TodoItem{},
		&models.Storeroom{},
		&models.StoreroomFile{},
		&models.NewsletterSubscriber{},
		&models.ContactMessage{},
	)
}

// recordingEmitter captures hub broadcasts for assertions.
type recordingEmitter struct {
	mu     sync.Mutex
	events []recordedEvent
}

type recordedEvent struct {
	Room  string
	Event string
	Args  []interface{}
}

func (r *recordingEmitter) BroadcastToRoom(namespace, room, event string, args ...interface{}) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{Room: room, Event: event, Args: args})
	return true
}

func (r *recordingEmitter) byEvent(event string) []recordedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []recordedEvent
	for _, e := range r.events {
		if e.Event == event {
			out = append(out, e)
		}
	}
	return out
}

func newTestChatHandler() (*ChatHandler, *realtime.Hub, *recordingEmitter) {
	emitter := &recordingEmitter{}
	hub := realtime.NewHub(realtime.NewRegistry(), nil)
	hub.Bind(emitter)
	return NewChatHandler(crypto.NewCodec("test-secret"), hub), hub, emitter
}

func createCompanionPair(a, b string) {
	lo, hi := models.OrderPair(a, b)
	database.DB.Create(&models.Companion{UserAID: lo, UserBID: hi})
}

var storedTextPattern = regexp.MustCompile(`^[0-9a-f]{32}:[0-9a-f]+$`)

func postJSON(c *gin.Context, path string, body interface{}) {
	raw, _ := json.Marshal(body)
	c.Request, _ = http.NewRequest("POST", path, bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")
}

func TestSendMessage_ReceiverOnline(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	sender := models.User{ID: "s1", Username: "sender1", Email: "s1@example.com"}
	receiver := models.User{ID: "r1", Username: "receiver1", Email: "r1@example.com"}
	database.DB.Create(&sender)
	database.DB.Create(&receiver)
	createCompanionPair("s1", "r1")

	handler, hub, emitter := newTestChatHandler()
	hub.HandleConnect("r1", "sock-r1")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("userId", "s1")
	c.Params = gin.Params{{Key: "receiverId", Value: "r1"}}
	postJSON(c, "/api/chat/messages/r1", gin.H{"text": "hi"})

	handler.SendMessage(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	// Sender always gets plaintext back
	var response struct {
		Message models.Message `json:"message"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "hi", response.Message.Text)

	// Persisted record is ciphertext in <ivHex>:<cipherHex> form
	var stored models.Message
	database.DB.First(&stored, "id = ?", response.Message.ID)
	assert.True(t, storedTextPattern.MatchString(stored.Text), "persisted text should be encrypted, got %q", stored.Text)
	assert.NotEqual(t, "hi", stored.Text)

	// Receiver got exactly one newMessage push carrying plaintext
	pushes := emitter.byEvent(realtime.EventNewMessage)
	assert.Len(t, pushes, 1)
	assert.Equal(t, "r1", pushes[0].Room)
	pushed := pushes[0].Args[0].(models.Message)
	assert.Equal(t, "hi", pushed.Text)

	// Plus one notification badge, since the messages toggle defaults on
	notes := emitter.byEvent(realtime.EventNotification)
	assert.Len(t, notes, 1)
	assert.Equal(t, "r1", notes[0].Room)
}

func TestSendMessage_RespectsMutedMessagePrefs(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	database.DB.Create(&models.User{ID: "s6", Username: "sender6", Email: "s6@example.com"})
	database.DB.Create(&models.User{ID: "r6", Username: "receiver6", Email: "r6@example.com"})
	database.DB.Create(&models.NotificationPrefs{UserID: "r6", Messages: false, Requests: true, Posts: true})
	createCompanionPair("s6", "r6")

	handler, hub, emitter := newTestChatHandler()
	hub.HandleConnect("r6", "sock-r6")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("userId", "s6")
	c.Params = gin.Params{{Key: "receiverId", Value: "r6"}}
	postJSON(c, "/api/chat/messages/r6", gin.H{"text": "quiet hi"})

	handler.SendMessage(c)
	assert.Equal(t, http.StatusCreated, w.Code)

	// The message itself is still delivered; only the badge is muted
	assert.Len(t, emitter.byEvent(realtime.EventNewMessage), 1)
	assert.Empty(t, emitter.byEvent(realtime.EventNotification))
}

func TestSendMessage_ReceiverOffline(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	database.DB.Create(&models.User{ID: "s2", Username: "sender2", Email: "s2@example.com"})
	database.DB.Create(&models.User{ID: "r2", Username: "receiver2", Email: "r2@example.com"})
	createCompanionPair("s2", "r2")

	handler, _, emitter := newTestChatHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("userId", "s2")
	c.Params = gin.Params{{Key: "receiverId", Value: "r2"}}
	postJSON(c, "/api/chat/messages/r2", gin.H{"text": "hi"})

	handler.SendMessage(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Message models.Message `json:"message"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "hi", response.Message.Text)

	// Message persisted even though nobody was pushed to
	var count int64
	database.DB.Model(&models.Message{}).Where("sender_id = ?", "s2").Count(&count)
	assert.EqualValues(t, 1, count)
	assert.Empty(t, emitter.byEvent(realtime.EventNewMessage))
}

func TestSendMessage_EmptyBodyRejected(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	database.DB.Create(&models.User{ID: "s3", Username: "sender3", Email: "s3@example.com"})
	database.DB.Create(&models.User{ID: "r3", Username: "receiver3", Email: "r3@example.com"})
	createCompanionPair("s3", "r3")

	handler, _, _ := newTestChatHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("userId", "s3")
	c.Params = gin.Params{{Key: "receiverId", Value: "r3"}}
	postJSON(c, "/api/chat/messages/r3", gin.H{})

	handler.SendMessage(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSendMessage_NonCompanionForbidden(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	database.DB.Create(&models.User{ID: "s4", Username: "sender4", Email: "s4@example.com"})
	database.DB.Create(&models.User{ID: "r4", Username: "receiver4", Email: "r4@example.com"})
	// No companion link

	handler, _, _ := newTestChatHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("userId", "s4")
	c.Params = gin.Params{{Key: "receiverId", Value: "r4"}}
	postJSON(c, "/api/chat/messages/r4", gin.H{"text": "hi"})

	handler.SendMessage(c)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSendMessage_ImageOnly(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	database.DB.Create(&models.User{ID: "s5", Username: "sender5", Email: "s5@example.com"})
	database.DB.Create(&models.User{ID: "r5", Username: "receiver5", Email: "r5@example.com"})
	createCompanionPair("s5", "r5")

	handler, _, _ := newTestChatHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("userId", "s5")
	c.Params = gin.Params{{Key: "receiverId", Value: "r5"}}
	postJSON(c, "/api/chat/messages/r5", gin.H{"image": "https://cdn.example.com/yemmy/chat/pic.png"})

	handler.SendMessage(c)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Image-only messages persist an empty text field, not ciphertext
	var stored models.Message
	database.DB.First(&stored, "sender_id = ?", "s5")
	assert.Equal(t, "", stored.Text)
	assert.Equal(t, "https://cdn.example.com/yemmy/chat/pic.png", stored.Image)
}

func TestGetMessages_CorruptedRecordIsolated(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	database.DB.Create(&models.User{ID: "a1", Username: "alice1", Email: "a1@example.com"})
	database.DB.Create(&models.User{ID: "b1", Username: "bob1", Email: "b1@example.com"})
	createCompanionPair("a1", "b1")

	handler, _, _ := newTestChatHandler()
	codec := crypto.NewCodec("test-secret")

	first, _ := codec.Encrypt("one")
	second, _ := codec.Encrypt("two")
	third, _ := codec.Encrypt("three")

	database.DB.Create(&models.Message{ID: "h1", SenderID: "a1", ReceiverID: "b1", Text: first})
	// Corrupted: truncated hex
	database.DB.Create(&models.Message{ID: "h2", SenderID: "b1", ReceiverID: "a1", Text: second[:len(second)-5]})
	database.DB.Create(&models.Message{ID: "h3", SenderID: "a1", ReceiverID: "b1", Text: third})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("userId", "a1")
	c.Params = gin.Params{{Key: "otherUserId", Value: "b1"}}
	c.Request, _ = http.NewRequest("GET", "/api/chat/messages/b1", nil)

	handler.GetMessages(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Messages []models.Message `json:"messages"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Len(t, response.Messages, 3)

	byID := map[string]string{}
	for _, m := range response.Messages {
		byID[m.ID] = m.Text
	}
	assert.Equal(t, "one", byID["h1"])
	assert.Equal(t, crypto.Placeholder, byID["h2"])
	assert.Equal(t, "three", byID["h3"])
}

func TestGetChatPartners(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	database.DB.Create(&models.User{ID: "p1", Username: "pat", Email: "p1@example.com"})
	database.DB.Create(&models.User{ID: "p2", Username: "quinn", Email: "p2@example.com"})
	database.DB.Create(&models.User{ID: "p3", Username: "riley", Email: "p3@example.com"})
	createCompanionPair("p1", "p2")
	// p3 is not linked to p1

	handler, _, _ := newTestChatHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("userId", "p1")
	c.Request, _ = http.NewRequest("GET", "/api/chat/partners", nil)

	handler.GetChatPartners(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Partners []models.User `json:"partners"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Len(t, response.Partners, 1)
	assert.Equal(t, "p2", response.Partners[0].ID)
}

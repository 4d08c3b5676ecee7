package realtime

import (
	"github.com/shivamgupta951/YemmyChats-sub000/pkg/logger"
)

// Socket event names shared with the frontend.
const (
	EventOnlineUsers  = "getOnlineUsers"
	EventNewMessage   = "newMessage"
	EventNotification = "notification"
)

// presenceRoom is joined by every connection, authenticated or not, so the
// online-users broadcast reaches everyone.
const presenceRoom = "presence"

// Emitter is the slice of *socketio.Server the hub needs. Tests swap in a
// recorder.
type Emitter interface {
	BroadcastToRoom(namespace string, room string, event string, args ...interface{}) bool
}

// LastSeenFunc stamps a user's last-seen timestamp after disconnect.
// Called on its own goroutine; failures are the callback's to log.
type LastSeenFunc func(userID string)

// Hub routes realtime events: it owns the Registry and decides whether a
// message can be pushed live or left for the next history fetch.
type Hub struct {
	registry *Registry
	emitter  Emitter
	lastSeen LastSeenFunc
}

func NewHub(registry *Registry, lastSeen LastSeenFunc) *Hub {
	return &Hub{registry: registry, lastSeen: lastSeen}
}

// Bind attaches the transport the hub emits through. Must be called before
// any connection is accepted.
func (h *Hub) Bind(e Emitter) {
	h.emitter = e
}

func (h *Hub) Registry() *Registry {
	return h.registry
}

// HandleConnect registers the user and broadcasts the updated online list.
func (h *Hub) HandleConnect(userID, socketID string) {
	h.registry.Connect(userID, socketID)
	h.broadcastOnlineUsers()
	logger.Debug().Str("user_id", userID).Str("socket_id", socketID).Msg("user connected")
}

// HandleDisconnect deregisters whichever user owned the socket, stamps
// last-seen best-effort, and re-broadcasts the online list.
func (h *Hub) HandleDisconnect(socketID string) {
	userID, ok := h.registry.DisconnectBySocket(socketID)
	if !ok {
		return
	}
	if h.lastSeen != nil {
		go h.lastSeen(userID)
	}
	h.broadcastOnlineUsers()
	logger.Debug().Str("user_id", userID).Msg("user disconnected")
}

// PushMessage delivers payload to the receiver's personal room if they are
// online. An offline receiver is a silent no-op: the message is already
// persisted and shows up on the next fetch. Returns whether a live push
// was attempted.
func (h *Hub) PushMessage(receiverID string, payload interface{}) bool {
	if _, online := h.registry.Lookup(receiverID); !online {
		return false
	}
	h.emitter.BroadcastToRoom("/", receiverID, EventNewMessage, payload)
	return true
}

// PushNotification emits a notification event to one user if online.
func (h *Hub) PushNotification(userID string, payload interface{}) bool {
	if _, online := h.registry.Lookup(userID); !online {
		return false
	}
	h.emitter.BroadcastToRoom("/", userID, EventNotification, payload)
	return true
}

func (h *Hub) broadcastOnlineUsers() {
	h.emitter.BroadcastToRoom("/", presenceRoom, EventOnlineUsers, h.registry.OnlineUserIDs())
}

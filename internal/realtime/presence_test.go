package realtime

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// emitRecord captures one BroadcastToRoom call.
type emitRecord struct {
	Room  string
	Event string
	Args  []interface{}
}

// fakeEmitter records broadcasts instead of hitting a socket server.
type fakeEmitter struct {
	mu      sync.Mutex
	records []emitRecord
}

func (f *fakeEmitter) BroadcastToRoom(namespace, room, event string, args ...interface{}) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, emitRecord{Room: room, Event: event, Args: args})
	return true
}

func (f *fakeEmitter) byEvent(event string) []emitRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []emitRecord
	for _, r := range f.records {
		if r.Event == event {
			out = append(out, r)
		}
	}
	return out
}

func newTestHub() (*Hub, *fakeEmitter) {
	emitter := &fakeEmitter{}
	hub := NewHub(NewRegistry(), nil)
	hub.Bind(emitter)
	return hub, emitter
}

func TestRegistryConnectLookupDisconnect(t *testing.T) {
	reg := NewRegistry()

	reg.Connect("u1", "sock1")
	sid, ok := reg.Lookup("u1")
	assert.True(t, ok)
	assert.Equal(t, "sock1", sid)

	userID, ok := reg.DisconnectBySocket("sock1")
	assert.True(t, ok)
	assert.Equal(t, "u1", userID)

	_, ok = reg.Lookup("u1")
	assert.False(t, ok)
}

func TestRegistryLastConnectionWins(t *testing.T) {
	reg := NewRegistry()

	reg.Connect("u1", "sock1")
	reg.Connect("u1", "sock2")

	sid, ok := reg.Lookup("u1")
	assert.True(t, ok)
	assert.Equal(t, "sock2", sid)

	// The stale socket closing must not knock the user offline
	_, removed := reg.DisconnectBySocket("sock1")
	assert.False(t, removed)
	_, ok = reg.Lookup("u1")
	assert.True(t, ok)
}

func TestRegistryOnlineUserIDsSorted(t *testing.T) {
	reg := NewRegistry()
	reg.Connect("charlie", "s3")
	reg.Connect("alice", "s1")
	reg.Connect("bob", "s2")

	assert.Equal(t, []string{"alice", "bob", "charlie"}, reg.OnlineUserIDs())
}

func TestHubBroadcastsOnlineUsersOnConnect(t *testing.T) {
	hub, emitter := newTestHub()

	hub.HandleConnect("u1", "sock1")
	hub.HandleConnect("u2", "sock2")

	broadcasts := emitter.byEvent(EventOnlineUsers)
	assert.Len(t, broadcasts, 2, "exactly one broadcast per connect")

	last := broadcasts[len(broadcasts)-1]
	assert.Equal(t, "presence", last.Room)
	assert.Equal(t, []interface{}{[]string{"u1", "u2"}}, last.Args)
}

func TestHubBroadcastsOnlineUsersOnDisconnect(t *testing.T) {
	hub, emitter := newTestHub()

	hub.HandleConnect("u1", "sock1")
	hub.HandleConnect("u2", "sock2")
	hub.HandleDisconnect("sock1")

	broadcasts := emitter.byEvent(EventOnlineUsers)
	assert.Len(t, broadcasts, 3)
	assert.Equal(t, []interface{}{[]string{"u2"}}, broadcasts[2].Args)
}

func TestHubDisconnectUnknownSocketIsSilent(t *testing.T) {
	hub, emitter := newTestHub()

	hub.HandleDisconnect("never-seen")
	assert.Empty(t, emitter.byEvent(EventOnlineUsers))
}

func TestHubPushMessageOnlineReceiver(t *testing.T) {
	hub, emitter := newTestHub()
	hub.HandleConnect("receiver", "sock1")

	pushed := hub.PushMessage("receiver", map[string]string{"text": "hi"})
	assert.True(t, pushed)

	pushes := emitter.byEvent(EventNewMessage)
	assert.Len(t, pushes, 1)
	assert.Equal(t, "receiver", pushes[0].Room)
	assert.Equal(t, []interface{}{map[string]string{"text": "hi"}}, pushes[0].Args)
}

func TestHubPushMessageOfflineReceiverIsNoOp(t *testing.T) {
	hub, emitter := newTestHub()

	pushed := hub.PushMessage("nobody", map[string]string{"text": "hi"})
	assert.False(t, pushed)
	assert.Empty(t, emitter.byEvent(EventNewMessage))
}

func TestHubStampsLastSeenOnDisconnect(t *testing.T) {
	emitter := &fakeEmitter{}
	stamped := make(chan string, 1)
	hub := NewHub(NewRegistry(), func(userID string) {
		stamped <- userID
	})
	hub.Bind(emitter)

	hub.HandleConnect("u1", "sock1")
	hub.HandleDisconnect("sock1")

	assert.Equal(t, "u1", <-stamped)
}

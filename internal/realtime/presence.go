package realtime

import (
	"sort"
	"sync"
)

// Registry tracks which users currently hold a live socket connection.
// At most one socket per user: a reconnect overwrites the previous entry
// (last connection wins, no multi-device fan-out). Absence is a normal
// state, so no operation returns an error.
type Registry struct {
	mu      sync.RWMutex
	sockets map[string]string // userId -> socketId
}

func NewRegistry() *Registry {
	return &Registry{sockets: make(map[string]string)}
}

// Connect records userID as online on the given socket.
func (r *Registry) Connect(userID, socketID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sockets[userID] = socketID
}

// DisconnectBySocket removes the entry owned by socketID and reports which
// user it belonged to. A socket that reconnected elsewhere (its user's
// entry was overwritten) removes nothing.
func (r *Registry) DisconnectBySocket(socketID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for userID, sid := range r.sockets {
		if sid == socketID {
			delete(r.sockets, userID)
			return userID, true
		}
	}
	return "", false
}

// Lookup returns the socket currently held by userID, if any.
func (r *Registry) Lookup(userID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sid, ok := r.sockets[userID]
	return sid, ok
}

// OnlineUserIDs returns the connected user ids, sorted for a stable
// broadcast payload.
func (r *Registry) OnlineUserIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.sockets))
	for userID := range r.sockets {
		ids = append(ids, userID)
	}
	sort.Strings(ids)
	return ids
}

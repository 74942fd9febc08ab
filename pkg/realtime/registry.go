package realtime

import (
	"sort"
	"sync"

	"github.com/coachlab/notification-service/pkg/logger"
	"go.uber.org/zap/zapcore"
)

// PresenceListener notified when a user get first handle and lose last handle
type PresenceListener interface {
	OnUserOnline(userID string)
	OnUserOffline(userID string)
}

// Registry active live channels per user, process local
type Registry struct {
	mu       sync.RWMutex
	users    map[string]map[string]Handle // user id -> slot -> handle
	presence PresenceListener
}

// NewRegistry constructor
func NewRegistry() *Registry {
	return &Registry{users: make(map[string]map[string]Handle)}
}

// SetPresenceListener set listener for first/last handle of user
func (r *Registry) SetPresenceListener(l PresenceListener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presence = l
}

// Register add handle for user, previous handle in same slot is closed and replaced
func (r *Registry) Register(userID string, handle Handle) {
	r.mu.Lock()
	slots, ok := r.users[userID]
	if !ok {
		slots = make(map[string]Handle)
		r.users[userID] = slots
	}
	previous := slots[handle.Slot()]
	slots[handle.Slot()] = handle
	if !ok && r.presence != nil {
		r.presence.OnUserOnline(userID)
	}
	r.mu.Unlock()

	if previous != nil && previous.ID() != handle.ID() {
		previous.Close()
		logger.LogYellow("realtime: replaced " + string(previous.Kind()) + " channel of user " + userID)
	}
}

// Unregister remove handle for user, no-op when handle is absent
func (r *Registry) Unregister(userID string, handle Handle) {
	r.mu.Lock()
	removed := r.remove(userID, handle)
	r.mu.Unlock()

	if removed {
		handle.Close()
	}
}

// remove must hold write lock
func (r *Registry) remove(userID string, handle Handle) bool {
	slots, ok := r.users[userID]
	if !ok {
		return false
	}
	current, ok := slots[handle.Slot()]
	if !ok || current.ID() != handle.ID() {
		return false
	}

	delete(slots, handle.Slot())
	if len(slots) == 0 {
		delete(r.users, userID)
		if r.presence != nil {
			r.presence.OnUserOffline(userID)
		}
	}
	return true
}

// Deliver serialize message once and send to every handle of user,
// failing handle is closed and evicted. Return number of handles received the message
func (r *Registry) Deliver(userID string, message interface{}) int {
	r.mu.RLock()
	handles := make([]Handle, 0, len(r.users[userID]))
	for _, h := range r.users[userID] {
		handles = append(handles, h)
	}
	r.mu.RUnlock()

	if len(handles) == 0 {
		return 0
	}

	payload, err := Marshal(message)
	if err != nil {
		logger.Log(zapcore.ErrorLevel, err.Error(), "RealtimeRegistry", "marshal_message")
		return 0
	}

	var delivered int
	var failed []Handle
	for _, h := range handles {
		if err := h.Send(payload); err != nil {
			logger.Log(zapcore.WarnLevel, "evict "+string(h.Kind())+" channel "+h.ID()+": "+err.Error(), "RealtimeRegistry", "deliver")
			failed = append(failed, h)
			continue
		}
		delivered++
	}

	if len(failed) > 0 {
		r.mu.Lock()
		for _, h := range failed {
			r.remove(userID, h)
		}
		r.mu.Unlock()
		for _, h := range failed {
			h.Close()
		}
	}
	return delivered
}

// DeliverToMany deliver message to every user, return total handles received the message
func (r *Registry) DeliverToMany(userIDs []string, message interface{}) int {
	payload, err := Marshal(message)
	if err != nil {
		logger.Log(zapcore.ErrorLevel, err.Error(), "RealtimeRegistry", "marshal_message")
		return 0
	}

	var total int
	for _, userID := range userIDs {
		total += r.Deliver(userID, payload)
	}
	return total
}

// BroadcastAll deliver message to every connected user
func (r *Registry) BroadcastAll(message interface{}) int {
	return r.DeliverToMany(r.ActiveUserIDs(), message)
}

// Count total open handles
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var total int
	for _, slots := range r.users {
		total += len(slots)
	}
	return total
}

// CountUser total open handles of user
func (r *Registry) CountUser(userID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users[userID])
}

// ActiveUserIDs sorted list of users having at least one open handle
func (r *Registry) ActiveUserIDs() []string {
	r.mu.RLock()
	userIDs := make([]string, 0, len(r.users))
	for userID := range r.users {
		userIDs = append(userIDs, userID)
	}
	r.mu.RUnlock()

	sort.Strings(userIDs)
	return userIDs
}

// CloseAll close and remove every handle, used at shutdown
func (r *Registry) CloseAll() {
	r.mu.Lock()
	var handles []Handle
	for userID, slots := range r.users {
		for _, h := range slots {
			handles = append(handles, h)
		}
		delete(r.users, userID)
		if r.presence != nil {
			r.presence.OnUserOffline(userID)
		}
	}
	r.mu.Unlock()

	for _, h := range handles {
		h.Close()
	}
}

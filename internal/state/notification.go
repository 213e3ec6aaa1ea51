package state

import (
	"strings"
	"sync"
	"time"
)

// Kind classifies a notification for display.
type Kind int

const (
	KindFailure Kind = iota
	KindSuccess
)

// SuccessPrefix marks a message as a success notification.
const SuccessPrefix = "A new"

// KindOf infers the kind from the message text.
func KindOf(message string) Kind {
	if strings.HasPrefix(message, SuccessPrefix) {
		return KindSuccess
	}
	return KindFailure
}

func (k Kind) String() string {
	if k == KindSuccess {
		return "success"
	}
	return "failure"
}

// Notification is a transient status message.
type Notification struct {
	Message   string
	Kind      Kind
	ExpiresAt time.Time // zero when the message never expires
}

// NotificationStore holds at most one message. Each Publish stops the timer
// of the message it replaces, so an older timer never clears a newer message.
type NotificationStore struct {
	mu      sync.Mutex
	current *Notification
	timer   *time.Timer
	gen     uint64
}

// Publish shows message immediately and clears it after d. A non-positive d
// keeps the message until the next Publish or Clear.
func (s *NotificationStore) Publish(message string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	s.gen++

	n := Notification{Message: message, Kind: KindOf(message)}
	if d > 0 {
		n.ExpiresAt = time.Now().Add(d)
		gen := s.gen
		s.timer = time.AfterFunc(d, func() { s.expire(gen) })
	}
	s.current = &n
}

// Clear removes the message and cancels its timer.
func (s *NotificationStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	s.gen++
	s.current = nil
}

// Current returns the visible message, if any.
func (s *NotificationStore) Current() (Notification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Notification{}, false
	}
	return *s.current, true
}

func (s *NotificationStore) expire(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Stop can race a timer that already fired; the generation settles it.
	if gen != s.gen {
		return
	}
	s.current = nil
	s.timer = nil
}

func (s *NotificationStore) stopLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

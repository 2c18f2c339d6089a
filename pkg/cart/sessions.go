package cart

import (
	"sync"
	"time"
)

// Kind separates the food basket from the reward basket of the same user.
type Kind string

const (
	Food   Kind = "food"
	Reward Kind = "reward"
)

// DefaultIdleTTL is how long an untouched cart survives.
const DefaultIdleTTL = 6 * time.Hour

type sessionKey struct {
	userID uint
	kind   Kind
}

type session struct {
	cart     *Cart
	lastSeen time.Time
}

// Sessions keeps one cart per user and kind in process memory. Carts are
// not persisted and are gone after a restart or after idle time without a
// Get.
type Sessions struct {
	mu        sync.Mutex
	carts     map[sessionKey]*session
	idle      time.Duration
	now       func() time.Time
	lastSweep time.Time
}

func NewSessions() *Sessions {
	return NewSessionsWithIdle(DefaultIdleTTL)
}

// NewSessionsWithIdle: idle <= 0 ไม่ลบ cart เลย
func NewSessionsWithIdle(idle time.Duration) *Sessions {
	return &Sessions{carts: make(map[sessionKey]*session), idle: idle, now: time.Now}
}

// Get returns the user's cart, creating an empty one on first use.
func (s *Sessions) Get(userID uint, kind Kind) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)

	k := sessionKey{userID: userID, kind: kind}
	e, ok := s.carts[k]
	if !ok {
		e = &session{cart: New()}
		s.carts[k] = e
	}
	e.lastSeen = now
	return e.cart
}

// sweep ทำอย่างมากนาทีละครั้ง
func (s *Sessions) sweep(now time.Time) {
	if s.idle <= 0 || now.Sub(s.lastSweep) < time.Minute {
		return
	}
	s.lastSweep = now
	for k, e := range s.carts {
		if now.Sub(e.lastSeen) > s.idle {
			delete(s.carts, k)
		}
	}
}

func (s *Sessions) Drop(userID uint, kind Kind) {
	s.mu.Lock()
	delete(s.carts, sessionKey{userID: userID, kind: kind})
	s.mu.Unlock()
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.carts)
}

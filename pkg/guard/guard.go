// Package guard provides the per-user "checkout in progress" flag.
package guard

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Guard hands out at most one live lease per key. Release only drops the
// lease named by token, so a holder whose TTL ran out cannot free a lease
// taken after it.
type Guard interface {
	// Acquire returns ok=false when the key is already held.
	Acquire(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	Release(ctx context.Context, key, token string)
}

func CheckoutKey(userID uint) string {
	return "checkout_lock:" + strconv.FormatUint(uint64(userID), 10)
}

type lease struct {
	token   string
	expires time.Time
}

type Memory struct {
	mu    sync.Mutex
	held  map[string]lease
	clock func() time.Time
}

func NewMemory() *Memory {
	return &Memory{held: make(map[string]lease), clock: time.Now}
}

func (m *Memory) Acquire(_ context.Context, key string, ttl time.Duration) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock()
	if l, ok := m.held[key]; ok && now.Before(l.expires) {
		return "", false, nil
	}
	token := uuid.NewString()
	m.held[key] = lease{token: token, expires: now.Add(ttl)}
	return token, true, nil
}

func (m *Memory) Release(_ context.Context, key, token string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if l, ok := m.held[key]; ok && l.token == token {
		delete(m.held, key)
	}
}

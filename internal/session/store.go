package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/teamnine/humanofdelivery/backend/internal/common/clock"
	"github.com/teamnine/humanofdelivery/backend/internal/common/constants"
	commoncrypto "github.com/teamnine/humanofdelivery/backend/internal/common/crypto"
	commonerrors "github.com/teamnine/humanofdelivery/backend/internal/common/errors"
	"github.com/teamnine/humanofdelivery/backend/internal/observability/metrics"
)

// ErrLoginRequired is surfaced whenever a request carries no live session.
var ErrLoginRequired = commonerrors.NewDomainError(
	"LOGIN_REQUIRED",
	commonerrors.CategoryUnauthorized,
	http.StatusUnauthorized,
	"login required",
)

// Store maps opaque session ids to the authenticated member's email.
type Store interface {
	Create(email string) (string, error)
	Principal(sessionID string) (string, error)
	Invalidate(sessionID string)
}

type entry struct {
	email     string
	expiresAt time.Time
}

type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]entry
	ttl      time.Duration
	ids      commoncrypto.IDGenerator
	clock    clock.Clock
}

func NewMemoryStore(ttl time.Duration, ids commoncrypto.IDGenerator, clk clock.Clock) *MemoryStore {
	if ttl <= 0 {
		ttl = constants.DefaultSessionTTL
	}
	return &MemoryStore{
		sessions: make(map[string]entry),
		ttl:      ttl,
		ids:      ids,
		clock:    clk,
	}
}

func (s *MemoryStore) Create(email string) (string, error) {
	id, err := s.ids.NewID()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.sessions[id] = entry{
		email:     email,
		expiresAt: s.clock.Now().Add(s.ttl),
	}
	metrics.SessionsActive.Set(float64(len(s.sessions)))
	s.mu.Unlock()

	return id, nil
}

func (s *MemoryStore) Principal(sessionID string) (string, error) {
	if sessionID == "" {
		return "", ErrLoginRequired
	}

	s.mu.RLock()
	e, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok || s.clock.Now().After(e.expiresAt) {
		return "", ErrLoginRequired
	}

	return e.email, nil
}

func (s *MemoryStore) Invalidate(sessionID string) {
	if sessionID == "" {
		return
	}

	s.mu.Lock()
	delete(s.sessions, sessionID)
	metrics.SessionsActive.Set(float64(len(s.sessions)))
	s.mu.Unlock()
}

// StartCleanup evicts expired sessions until ctx is canceled.
func (s *MemoryStore) StartCleanup(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = constants.SessionCleanupInterval
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.evictExpired()
			}
		}
	}()
}

func (s *MemoryStore) evictExpired() {
	now := s.clock.Now()

	s.mu.Lock()
	for id, e := range s.sessions {
		if now.After(e.expiresAt) {
			delete(s.sessions, id)
		}
	}
	metrics.SessionsActive.Set(float64(len(s.sessions)))
	s.mu.Unlock()
}

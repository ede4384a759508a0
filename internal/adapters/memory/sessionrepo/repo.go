package sessionrepo

import (
	"context"
	"sync"
	"time"

	"github.com/hobbyhub-app/hobby-directory-api/internal/domain"
	"github.com/hobbyhub-app/hobby-directory-api/internal/ports/out/sessionrepo"
)

// Repo is an in-memory implementation of sessionrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu   sync.RWMutex
	byID map[domain.SessionID]sessionrepo.Session
}

func NewRepo() *Repo {
	return &Repo{
		byID: make(map[domain.SessionID]sessionrepo.Session),
	}
}

func (r *Repo) Create(ctx context.Context, s sessionrepo.Session) error {
	_ = ctx
	if s.ID == "" {
		return sessionrepo.ErrAlreadyExists // treat empty ID as invalid
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[s.ID]; ok {
		return sessionrepo.ErrAlreadyExists
	}
	r.byID[s.ID] = cloneSession(s)
	return nil
}

func (r *Repo) Get(ctx context.Context, id domain.SessionID) (sessionrepo.Session, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byID[id]
	if !ok {
		return sessionrepo.Session{}, sessionrepo.ErrNotFound
	}
	return cloneSession(s), nil
}

func (r *Repo) Revoke(ctx context.Context, id domain.SessionID, at time.Time) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	if !ok {
		return sessionrepo.ErrNotFound
	}
	if s.RevokedAt != nil {
		return nil
	}
	s.RevokedAt = &at
	r.byID[id] = s
	return nil
}

func cloneSession(s sessionrepo.Session) sessionrepo.Session {
	cp := s
	if s.RevokedAt != nil {
		v := *s.RevokedAt
		cp.RevokedAt = &v
	}
	return cp
}

package identityrepo

import (
	"context"
	"strings"
	"sync"

	"github.com/hobbyhub-app/hobby-directory-api/internal/domain"
	"github.com/hobbyhub-app/hobby-directory-api/internal/ports/out/identityrepo"
)

// Repo is an in-memory implementation of identityrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu      sync.RWMutex
	byID    map[domain.IdentityID]identityrepo.Identity
	byEmail map[string]domain.IdentityID // keyed by folded email
}

func NewRepo() *Repo {
	return &Repo{
		byID:    make(map[domain.IdentityID]identityrepo.Identity),
		byEmail: make(map[string]domain.IdentityID),
	}
}

func (r *Repo) Create(ctx context.Context, id identityrepo.Identity) error {
	_ = ctx
	if id.ID == "" {
		return identityrepo.ErrAlreadyExists // treat empty ID as invalid
	}
	key := foldEmail(id.Email)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id.ID]; ok {
		return identityrepo.ErrAlreadyExists
	}
	if _, ok := r.byEmail[key]; ok {
		return identityrepo.ErrEmailTaken
	}
	r.byID[id.ID] = cloneIdentity(id)
	r.byEmail[key] = id.ID
	return nil
}

func (r *Repo) Update(ctx context.Context, id identityrepo.Identity) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	prev, ok := r.byID[id.ID]
	if !ok {
		return identityrepo.ErrNotFound
	}
	newKey := foldEmail(id.Email)
	oldKey := foldEmail(prev.Email)
	if newKey != oldKey {
		if holder, taken := r.byEmail[newKey]; taken && holder != id.ID {
			return identityrepo.ErrEmailTaken
		}
		delete(r.byEmail, oldKey)
		r.byEmail[newKey] = id.ID
	}
	r.byID[id.ID] = cloneIdentity(id)
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.IdentityID) (identityrepo.Identity, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.byID[id]
	if !ok {
		return identityrepo.Identity{}, identityrepo.ErrNotFound
	}
	return cloneIdentity(rec), nil
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (identityrepo.Identity, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[foldEmail(email)]
	if !ok {
		return identityrepo.Identity{}, identityrepo.ErrNotFound
	}
	return cloneIdentity(r.byID[id]), nil
}

func foldEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func cloneIdentity(id identityrepo.Identity) identityrepo.Identity {
	cp := id
	cp.OrganizationName = cloneStringPtr(id.OrganizationName)
	cp.Phone = cloneStringPtr(id.Phone)
	return cp
}

func cloneStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

package objectstore

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/hobbyhub-app/hobby-directory-api/internal/ports/out/objectstore"
)

// Object is a stored upload.
type Object struct {
	ContentType string
	Data        []byte
}

// Store keeps uploads in memory. Useful for tests and the memory backend.
// It is safe for concurrent use.
type Store struct {
	baseURL  string
	maxBytes int64

	mu    sync.RWMutex
	byKey map[string]Object
}

func NewStore(baseURL string, maxBytes int64) *Store {
	return &Store{
		baseURL:  strings.TrimRight(baseURL, "/"),
		maxBytes: maxBytes,
		byKey:    make(map[string]Object),
	}
}

func (s *Store) Upload(ctx context.Context, key string, contentType string, r io.Reader) (string, error) {
	_ = ctx
	limit := s.maxBytes
	if limit <= 0 {
		limit = 5 << 20
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", err
	}
	if int64(len(data)) > limit {
		return "", objectstore.ErrTooLarge
	}

	s.mu.Lock()
	s.byKey[key] = Object{ContentType: contentType, Data: data}
	s.mu.Unlock()

	return s.baseURL + "/" + key, nil
}

// Get returns a stored object, for test assertions.
func (s *Store) Get(key string) (Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.byKey[key]
	return o, ok
}

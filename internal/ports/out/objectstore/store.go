package objectstore

import (
	"context"
	"errors"
	"io"
)

// ErrTooLarge indicates the uploaded object exceeded the store's size limit.
var ErrTooLarge = errors.New("object too large")

// Store persists uploaded binary objects (listing images) and returns a URL
// the API can hand back to clients.
type Store interface {
	// Upload stores the object under key and returns its public URL.
	// contentType is advisory; implementations may reject types they cannot
	// serve.
	Upload(ctx context.Context, key string, contentType string, r io.Reader) (string, error)
}

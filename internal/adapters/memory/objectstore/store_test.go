package objectstore

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hobbyhub-app/hobby-directory-api/internal/ports/out/objectstore"
)

func TestStore_UploadAndGet(t *testing.T) {
	t.Parallel()

	s := NewStore("/uploads", 1024)
	url, err := s.Upload(context.Background(), "activities/a1/img", "image/png", strings.NewReader("pngdata"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if url != "/uploads/activities/a1/img" {
		t.Fatalf("url=%q", url)
	}
	obj, ok := s.Get("activities/a1/img")
	if !ok || string(obj.Data) != "pngdata" || obj.ContentType != "image/png" {
		t.Fatalf("stored object: ok=%v %+v", ok, obj)
	}
}

func TestStore_RejectsOversized(t *testing.T) {
	t.Parallel()

	s := NewStore("/uploads", 4)
	_, err := s.Upload(context.Background(), "k", "image/png", strings.NewReader("too big"))
	if !errors.Is(err, objectstore.ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}

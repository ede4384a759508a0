// Package events publishes activity change notifications for downstream
// consumers (search indexing, analytics). Publishing is best-effort: the API
// never fails a request because an event could not be delivered.
package events

import (
	"context"
	"time"

	"github.com/hobbyhub-app/hobby-directory-api/internal/domain"
)

// Kind labels an activity change.
type Kind string

const (
	ActivityCreated Kind = "activity.created"
	ActivityUpdated Kind = "activity.updated"
	ActivityDeleted Kind = "activity.deleted"
)

// ActivityEvent is the wire payload for a single change.
type ActivityEvent struct {
	Kind        Kind              `json:"kind"`
	ActivityID  domain.ActivityID `json:"activity_id"`
	OrganizerID domain.IdentityID `json:"organizer_id"`
	Title       string            `json:"title"`
	OccurredAt  time.Time         `json:"occurred_at"`
}

// Publisher delivers activity events.
type Publisher interface {
	PublishActivity(ctx context.Context, ev ActivityEvent) error
}

// Noop discards events; used when no broker is configured and in tests.
type Noop struct{}

func (Noop) PublishActivity(context.Context, ActivityEvent) error { return nil }

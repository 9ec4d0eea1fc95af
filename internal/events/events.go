package events

import (
	"context"
	"time"
)

// Resume lifecycle event types. They double as AMQP routing keys.
const (
	ResumeCreated   = "resume.created"
	ResumeUpdated   = "resume.updated"
	ResumeOptimized = "resume.optimized"
	ResumeDeleted   = "resume.deleted"
)

// Event describes a change to a resume.
type Event struct {
	Type       string    `json:"type"`
	ResumeID   string    `json:"resumeId"`
	UserID     string    `json:"userId"`
	OccurredAt time.Time `json:"occurredAt"`
	// Degraded is set on resume.optimized when the fallback result was stored.
	Degraded bool `json:"degraded,omitempty"`
}

// Publisher delivers events to interested consumers.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

// Nop discards every event.
type Nop struct{}

// Publish does nothing.
func (Nop) Publish(ctx context.Context, evt Event) error {
	_ = evt
	return ctx.Err()
}

var _ Publisher = Nop{}

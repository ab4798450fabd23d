package events

import (
	"context"
	"time"
)

// ComplaintSubmittedChannel is the queue/topic complaint intake publishes to.
// The priority-inference pipeline consumes it.
const ComplaintSubmittedChannel = "complaint.submitted"

// ComplaintSubmitted is the payload published after a complaint is
// persisted. It carries enough for a downstream consumer to score the
// complaint without reading the database.
type ComplaintSubmitted struct {
	ComplaintID     string    `json:"complaint_id"`
	ComplaintNumber string    `json:"complaint_number"`
	CitizenID       string    `json:"citizen_id"`
	CategoryID      string    `json:"category_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	SubmittedAt     time.Time `json:"submitted_at"`
}

// Publisher delivers complaint events to a broker. Publishing is
// best-effort from the request's point of view: a broker failure is
// logged by the caller, never surfaced to the citizen.
type Publisher interface {
	PublishComplaintSubmitted(ctx context.Context, event ComplaintSubmitted) error
	Close() error
}

// NopPublisher discards events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishComplaintSubmitted(ctx context.Context, event ComplaintSubmitted) error {
	return nil
}

func (NopPublisher) Close() error {
	return nil
}

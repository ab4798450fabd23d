package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/hemantthp85-ai/Civic-1/internal/events"
	"github.com/hemantthp85-ai/Civic-1/internal/store"
	"github.com/hemantthp85-ai/Civic-1/types"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100

	complaintNumberPrefix    = "NCIP"
	complaintNumberSuffixLen = 7
	complaintNumberCharset   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// ComplaintRepository defines persistence operations for complaints.
type ComplaintRepository interface {
	Create(ctx context.Context, complaint types.Complaint) (types.Complaint, error)
	List(ctx context.Context, citizenID string, limit, offset int) ([]types.Complaint, error)
	GetByID(ctx context.Context, id string) (types.Complaint, error)
	ListMedia(ctx context.Context, complaintID string) ([]types.ComplaintMedia, error)
}

// ComplaintService encapsulates complaint use-cases.
type ComplaintService struct {
	repo      ComplaintRepository
	publisher events.Publisher
}

func NewComplaintService(repo ComplaintRepository, publisher events.Publisher) *ComplaintService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &ComplaintService{
		repo:      repo,
		publisher: publisher,
	}
}

// Submit assigns identifiers and intake defaults, persists the complaint
// with its media, and hands it off to the triage pipeline. The complaint
// number carries a random suffix; on the improbable collision with an
// existing number the insert is retried once with a fresh one.
func (s *ComplaintService) Submit(ctx context.Context, complaint types.Complaint) (types.Complaint, error) {
	complaint.ID = uuid.NewString()
	complaint.Status = types.StatusSubmitted
	complaint.Priority = types.PriorityMedium
	complaint.AIPriorityScore = types.PlaceholderAIScore
	complaint.AIConfidence = types.PlaceholderAIScore
	for i := range complaint.Media {
		complaint.Media[i].UploadedBy = complaint.CitizenID
	}

	var created types.Complaint
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		complaint.ComplaintID = newComplaintNumber(time.Now())
		created, err = s.repo.Create(ctx, complaint)
		if !errors.Is(err, store.ErrConflict) {
			break
		}
	}
	if err != nil {
		return types.Complaint{}, err
	}

	if err := s.publisher.PublishComplaintSubmitted(ctx, events.ComplaintSubmitted{
		ComplaintID:     created.ID,
		ComplaintNumber: created.ComplaintID,
		CitizenID:       created.CitizenID,
		CategoryID:      created.CategoryID,
		Title:           created.Title,
		Description:     created.Description,
		SubmittedAt:     created.CreatedAt,
	}); err != nil {
		// Triage scoring is asynchronous and the row already carries
		// placeholder scores, so a broker failure does not fail intake.
		log.Printf("publish complaint.submitted for %s: %v", created.ID, err)
	}

	return created, nil
}

// List returns complaints for the caller. Citizens only ever see their
// own; officers and admins see the full set.
func (s *ComplaintService) List(ctx context.Context, caller types.Role, callerID string, limit, offset int) ([]types.Complaint, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	citizenID := ""
	if caller == types.RoleCitizen {
		citizenID = callerID
	}
	return s.repo.List(ctx, citizenID, limit, offset)
}

// Get fetches one complaint with its media. Citizens may only fetch
// complaints they own.
func (s *ComplaintService) Get(ctx context.Context, caller types.Role, callerID, id string) (types.Complaint, error) {
	complaint, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return types.Complaint{}, err
	}
	if caller == types.RoleCitizen && complaint.CitizenID != callerID {
		return types.Complaint{}, store.ErrNotFound
	}
	return complaint, nil
}

func newComplaintNumber(now time.Time) string {
	suffix := make([]byte, complaintNumberSuffixLen)
	if _, err := rand.Read(suffix); err != nil {
		// crypto/rand never fails on supported platforms.
		panic(err)
	}
	for i, b := range suffix {
		suffix[i] = complaintNumberCharset[int(b)%len(complaintNumberCharset)]
	}
	return fmt.Sprintf("%s-%d-%s", complaintNumberPrefix, now.UnixMilli(), suffix)
}

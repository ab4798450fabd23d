package types

import "time"

// ComplaintStatus is the workflow state of a complaint. Intake only ever
// writes StatusSubmitted; later transitions belong to the officer workflow.
type ComplaintStatus string

const (
	StatusSubmitted  ComplaintStatus = "submitted"
	StatusInProgress ComplaintStatus = "in_progress"
	StatusResolved   ComplaintStatus = "resolved"
	StatusRejected   ComplaintStatus = "rejected"
)

// ComplaintPriority is the triage priority of a complaint.
type ComplaintPriority string

const (
	PriorityLow    ComplaintPriority = "low"
	PriorityMedium ComplaintPriority = "medium"
	PriorityHigh   ComplaintPriority = "high"
)

// PlaceholderAIScore is written for ai_priority_score and ai_confidence
// at intake time. The real values are assigned asynchronously by the
// inference pipeline, which consumes the complaint.submitted event.
const PlaceholderAIScore = 0.7

// Complaint represents a citizen-submitted report.
type Complaint struct {
	// ID is the internal unique identifier of the complaint (UUID).
	ID string `json:"id" db:"id"`

	// ComplaintID is the human-facing complaint number, derived from the
	// submission timestamp plus a random suffix.
	ComplaintID string `json:"complaint_id" db:"complaint_id"`

	// CitizenID identifies the owning user.
	CitizenID string `json:"citizen_id" db:"citizen_id"`

	// CategoryID references the external category catalog.
	CategoryID string `json:"category_id" db:"category_id"`

	// Title is a short summary of the complaint.
	Title string `json:"title" db:"title"`

	// Description is the full report text.
	Description string `json:"description" db:"description"`

	// Status is the workflow state, "submitted" at creation.
	Status ComplaintStatus `json:"status" db:"status"`

	// Priority is the triage priority, "medium" at creation.
	Priority ComplaintPriority `json:"priority" db:"priority"`

	// LocationLat and LocationLng are the optional geolocation of the
	// reported issue.
	LocationLat *float64 `json:"location_lat,omitempty" db:"location_lat"`
	LocationLng *float64 `json:"location_lng,omitempty" db:"location_lng"`

	// LocationAddress is an optional free-text address.
	LocationAddress string `json:"location_address,omitempty" db:"location_address"`

	// AIPriorityScore and AIConfidence hold placeholder values until the
	// asynchronous inference pipeline overwrites them.
	AIPriorityScore float64 `json:"ai_priority_score" db:"ai_priority_score"`
	AIConfidence    float64 `json:"ai_confidence" db:"ai_confidence"`

	// CreatedAt is the timestamp when the complaint was submitted.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// Media holds the attachments submitted with the complaint. Omitted
	// in list views.
	Media []ComplaintMedia `json:"media,omitempty" db:"-"`
}

// ComplaintMedia is an externally hosted attachment referenced by a
// complaint. Media rows are written once at submission and never updated.
type ComplaintMedia struct {
	ComplaintID string `json:"complaint_id" db:"complaint_id"`
	FileURL     string `json:"file_url" db:"file_url"`
	FileType    string `json:"file_type" db:"file_type"`
	MimeType    string `json:"mime_type" db:"mime_type"`
	UploadedBy  string `json:"uploaded_by" db:"uploaded_by"`
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/hemantthp85-ai/Civic-1/types"
)

// ComplaintRepository handles persistence for complaints and their media.
type ComplaintRepository struct {
	db *sql.DB
}

func NewComplaintRepository(db *sql.DB) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

// Create inserts a complaint and its media rows in a single transaction,
// so a partial failure never leaves a complaint with fewer media rows than
// were submitted. A complaint-number collision is reported as ErrConflict;
// the caller regenerates the number and retries.
func (r *ComplaintRepository) Create(ctx context.Context, complaint types.Complaint) (types.Complaint, error) {
	complaint.CreatedAt = time.Now()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return types.Complaint{}, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const insertComplaint = `
		INSERT INTO complaints (
			id, complaint_id, citizen_id, category_id, title, description,
			status, priority, location_lat, location_lng, location_address,
			ai_priority_score, ai_confidence, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err = tx.ExecContext(
		ctx,
		insertComplaint,
		complaint.ID,
		complaint.ComplaintID,
		complaint.CitizenID,
		complaint.CategoryID,
		complaint.Title,
		complaint.Description,
		complaint.Status,
		complaint.Priority,
		complaint.LocationLat,
		complaint.LocationLng,
		nullableString(complaint.LocationAddress),
		complaint.AIPriorityScore,
		complaint.AIConfidence,
		complaint.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return types.Complaint{}, ErrConflict
		}
		return types.Complaint{}, err
	}

	const insertMedia = `
		INSERT INTO complaint_media (complaint_id, file_url, file_type, mime_type, uploaded_by)
		VALUES ($1, $2, $3, $4, $5)`
	for i := range complaint.Media {
		complaint.Media[i].ComplaintID = complaint.ID
		item := complaint.Media[i]
		if _, err := tx.ExecContext(ctx, insertMedia, item.ComplaintID, item.FileURL, item.FileType, item.MimeType, item.UploadedBy); err != nil {
			return types.Complaint{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return types.Complaint{}, err
	}
	return complaint, nil
}

// List returns complaints ordered by creation time, newest first. When
// citizenID is non-empty the result is scoped to that owner; officers and
// admins pass an empty citizenID and see everything.
func (r *ComplaintRepository) List(ctx context.Context, citizenID string, limit, offset int) ([]types.Complaint, error) {
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = 10
	}

	const scopedQuery = `
		SELECT id, complaint_id, citizen_id, category_id, title, description,
			status, priority, location_lat, location_lng, location_address,
			ai_priority_score, ai_confidence, created_at
		FROM complaints
		WHERE citizen_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	const unscopedQuery = `
		SELECT id, complaint_id, citizen_id, category_id, title, description,
			status, priority, location_lat, location_lng, location_address,
			ai_priority_score, ai_confidence, created_at
		FROM complaints
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	var rows *sql.Rows
	var err error
	if citizenID != "" {
		rows, err = r.db.QueryContext(ctx, scopedQuery, citizenID, limit, offset)
	} else {
		rows, err = r.db.QueryContext(ctx, unscopedQuery, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	complaints := make([]types.Complaint, 0, limit)
	for rows.Next() {
		complaint, err := scanComplaint(rows)
		if err != nil {
			return nil, err
		}
		complaints = append(complaints, complaint)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return complaints, nil
}

// GetByID fetches one complaint with its media rows.
func (r *ComplaintRepository) GetByID(ctx context.Context, id string) (types.Complaint, error) {
	const query = `
		SELECT id, complaint_id, citizen_id, category_id, title, description,
			status, priority, location_lat, location_lng, location_address,
			ai_priority_score, ai_confidence, created_at
		FROM complaints
		WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	complaint, err := scanComplaint(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Complaint{}, ErrNotFound
		}
		return types.Complaint{}, err
	}

	media, err := r.ListMedia(ctx, id)
	if err != nil {
		return types.Complaint{}, err
	}
	complaint.Media = media
	return complaint, nil
}

// ListMedia returns the media rows attached to a complaint.
func (r *ComplaintRepository) ListMedia(ctx context.Context, complaintID string) ([]types.ComplaintMedia, error) {
	const query = `
		SELECT complaint_id, file_url, file_type, mime_type, uploaded_by
		FROM complaint_media
		WHERE complaint_id = $1`
	rows, err := r.db.QueryContext(ctx, query, complaintID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var media []types.ComplaintMedia
	for rows.Next() {
		var item types.ComplaintMedia
		if err := rows.Scan(&item.ComplaintID, &item.FileURL, &item.FileType, &item.MimeType, &item.UploadedBy); err != nil {
			return nil, err
		}
		media = append(media, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return media, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanComplaint(row rowScanner) (types.Complaint, error) {
	var complaint types.Complaint
	var address sql.NullString
	err := row.Scan(
		&complaint.ID,
		&complaint.ComplaintID,
		&complaint.CitizenID,
		&complaint.CategoryID,
		&complaint.Title,
		&complaint.Description,
		&complaint.Status,
		&complaint.Priority,
		&complaint.LocationLat,
		&complaint.LocationLng,
		&address,
		&complaint.AIPriorityScore,
		&complaint.AIConfidence,
		&complaint.CreatedAt,
	)
	if err != nil {
		return types.Complaint{}, err
	}
	if address.Valid {
		complaint.LocationAddress = address.String
	}
	return complaint, nil
}

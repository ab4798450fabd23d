package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hemantthp85-ai/Civic-1/internal/auth"
	"github.com/hemantthp85-ai/Civic-1/internal/services"
	"github.com/hemantthp85-ai/Civic-1/internal/store"
	"github.com/hemantthp85-ai/Civic-1/types"
)

// ComplaintHandler provides complaint intake and listing endpoints.
type ComplaintHandler struct {
	complaintService *services.ComplaintService
}

// NewComplaintHandler constructs a handler with the provided service.
func NewComplaintHandler(complaintService *services.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{complaintService: complaintService}
}

// ComplaintRouter registers complaint routes on the given router. All
// routes require a session; creating additionally requires the citizen
// role via the policy table.
func ComplaintRouter(r chi.Router, complaintService *services.ComplaintService, sessions *auth.SessionManager) {
	handler := NewComplaintHandler(complaintService)

	r.Use(RequireSession(sessions))
	r.With(RequireOperation(auth.OpComplaintCreate)).Post("/", handler.CreateComplaint)
	r.With(RequireOperation(auth.OpComplaintList)).Get("/", handler.ListComplaints)
	r.With(RequireOperation(auth.OpComplaintView)).Get("/{complaintID}", handler.GetComplaint)
}

func (h *ComplaintHandler) CreateComplaint(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateComplaintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.CategoryID = strings.TrimSpace(req.CategoryID)
	if req.Title == "" || req.Description == "" || req.CategoryID == "" {
		writeError(w, http.StatusBadRequest, "missing required fields")
		return
	}

	media := make([]types.ComplaintMedia, 0, len(req.Media))
	for _, file := range req.Media {
		if strings.TrimSpace(file.URL) == "" {
			writeError(w, http.StatusBadRequest, "media entries require a url")
			return
		}
		media = append(media, types.ComplaintMedia{
			FileURL:  file.URL,
			FileType: file.Type,
			MimeType: file.MimeType,
		})
	}

	created, err := h.complaintService.Submit(r.Context(), types.Complaint{
		CitizenID:       claims.UserID,
		CategoryID:      req.CategoryID,
		Title:           req.Title,
		Description:     req.Description,
		LocationLat:     req.Latitude,
		LocationLng:     req.Longitude,
		LocationAddress: strings.TrimSpace(req.Address),
		Media:           media,
	})
	if err != nil {
		log.Printf("create complaint: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create complaint")
		return
	}

	writeJSON(w, http.StatusCreated, CreateComplaintResponse{
		Complaint: ComplaintStub{
			ID:          created.ID,
			ComplaintID: created.ComplaintID,
			Status:      created.Status,
			CreatedAt:   created.CreatedAt,
		},
	})
}

func (h *ComplaintHandler) ListComplaints(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit, offset, err := parseLimitOffset(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	complaints, err := h.complaintService.List(r.Context(), claims.Role, claims.UserID, limit, offset)
	if err != nil {
		log.Printf("list complaints: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list complaints")
		return
	}

	writeJSON(w, http.StatusOK, ComplaintListResponse{Complaints: complaints})
}

func (h *ComplaintHandler) GetComplaint(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id := chi.URLParam(r, "complaintID")
	complaint, err := h.complaintService.Get(r.Context(), claims.Role, claims.UserID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "complaint not found")
			return
		}
		log.Printf("get complaint: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch complaint")
		return
	}

	writeJSON(w, http.StatusOK, complaint)
}

type CreateComplaintRequest struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	CategoryID  string       `json:"categoryId"`
	Latitude    *float64     `json:"latitude"`
	Longitude   *float64     `json:"longitude"`
	Address     string       `json:"address"`
	Media       []MediaEntry `json:"media"`
}

// MediaEntry references an already-uploaded file attached to a complaint.
type MediaEntry struct {
	URL      string `json:"url"`
	Type     string `json:"type"`
	MimeType string `json:"mimeType"`
}

// ComplaintStub is the minimal projection returned on creation.
type ComplaintStub struct {
	ID          string                `json:"id"`
	ComplaintID string                `json:"complaintId"`
	Status      types.ComplaintStatus `json:"status"`
	CreatedAt   time.Time             `json:"createdAt"`
}

type CreateComplaintResponse struct {
	Complaint ComplaintStub `json:"complaint"`
}

type ComplaintListResponse struct {
	Complaints []types.Complaint `json:"complaints"`
}

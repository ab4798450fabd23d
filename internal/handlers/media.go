package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hemantthp85-ai/Civic-1/internal/auth"
	"github.com/hemantthp85-ai/Civic-1/internal/media"
)

// MediaHandler issues presigned upload URLs for complaint attachments.
// Files go straight from the client to the object store; this service
// only hands out URLs.
type MediaHandler struct {
	signer media.Signer
}

// NewMediaHandler constructs a handler around the configured signer.
func NewMediaHandler(signer media.Signer) *MediaHandler {
	return &MediaHandler{signer: signer}
}

// MediaRouter registers media routes on the given router.
func MediaRouter(r chi.Router, signer media.Signer, sessions *auth.SessionManager) {
	handler := NewMediaHandler(signer)

	r.Use(RequireSession(sessions))
	r.With(RequireOperation(auth.OpMediaPresign)).Post("/uploads", handler.PresignUpload)
}

func (h *MediaHandler) PresignUpload(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req PresignUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	// path.Base strips any directory components a client might smuggle in.
	fileName := path.Base(strings.TrimSpace(req.FileName))
	if fileName == "" || fileName == "." || fileName == "/" {
		writeError(w, http.StatusBadRequest, "fileName is required")
		return
	}

	key := claims.UserID + "/" + uuid.NewString() + "-" + fileName
	ticket, err := h.signer.PresignUpload(r.Context(), key, strings.TrimSpace(req.ContentType))
	if err != nil {
		log.Printf("presign upload: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to presign upload")
		return
	}

	writeJSON(w, http.StatusCreated, PresignUploadResponse{Upload: ticket})
}

type PresignUploadRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
}

type PresignUploadResponse struct {
	Upload media.UploadTicket `json:"upload"`
}

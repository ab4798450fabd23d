package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hemantthp85-ai/Civic-1/internal/handlers"
	"github.com/hemantthp85-ai/Civic-1/internal/media"
	"github.com/hemantthp85-ai/Civic-1/types"
)

// fakeSigner records the presigned key.
type fakeSigner struct {
	lastKey         string
	lastContentType string
}

func (f *fakeSigner) PresignUpload(ctx context.Context, key, contentType string) (media.UploadTicket, error) {
	f.lastKey = key
	f.lastContentType = contentType
	return media.UploadTicket{
		UploadURL: "https://store.example.com/upload/" + key,
		FileURL:   "https://store.example.com/" + key,
		ExpiresAt: time.Now().Add(media.UploadTTL),
	}, nil
}

func (f *fakeSigner) PresignGet(ctx context.Context, key string) (string, error) {
	return "https://store.example.com/" + key, nil
}

func (f *fakeSigner) Bucket() string { return "complaint-media" }

func newMediaEnv(t *testing.T) (*testEnv, *fakeSigner) {
	t.Helper()

	env := newTestEnv(t)
	signer := &fakeSigner{}
	env.router.Route("/media", func(r chi.Router) {
		handlers.MediaRouter(r, signer, env.sessions)
	})
	return env, signer
}

func TestPresignUpload_Succeeds(t *testing.T) {
	env, signer := newMediaEnv(t)
	cookie := env.seedUser(t, "citizen-1", "jane@example.com", types.RoleCitizen)

	req := postJSON(t, "/media/uploads", map[string]string{
		"fileName":    "pothole.jpg",
		"contentType": "image/jpeg",
	})
	req.AddCookie(cookie)
	rec := env.do(t, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var parsed handlers.PresignUploadResponse
	if err := json.NewDecoder(rec.Body).Decode(&parsed); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if parsed.Upload.UploadURL == "" || parsed.Upload.FileURL == "" {
		t.Errorf("expected upload and file URLs, got %+v", parsed.Upload)
	}

	if !strings.HasPrefix(signer.lastKey, "citizen-1/") {
		t.Errorf("object key should be namespaced by user, got %q", signer.lastKey)
	}
	if !strings.HasSuffix(signer.lastKey, "-pothole.jpg") {
		t.Errorf("object key should keep the file name, got %q", signer.lastKey)
	}
	if signer.lastContentType != "image/jpeg" {
		t.Errorf("unexpected content type: %q", signer.lastContentType)
	}
}

func TestPresignUpload_StripsPathComponents(t *testing.T) {
	env, signer := newMediaEnv(t)
	cookie := env.seedUser(t, "citizen-1", "jane@example.com", types.RoleCitizen)

	req := postJSON(t, "/media/uploads", map[string]string{"fileName": "../../etc/passwd"})
	req.AddCookie(cookie)
	if rec := env.do(t, req); rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if strings.Contains(signer.lastKey, "..") {
		t.Errorf("object key must not contain path traversal, got %q", signer.lastKey)
	}
}

func TestPresignUpload_Validation(t *testing.T) {
	env, _ := newMediaEnv(t)
	cookie := env.seedUser(t, "citizen-1", "jane@example.com", types.RoleCitizen)

	missing := postJSON(t, "/media/uploads", map[string]string{"contentType": "image/jpeg"})
	missing.AddCookie(cookie)
	if rec := env.do(t, missing); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a missing file name, got %d", rec.Code)
	}

	malformed := httptest.NewRequest(http.MethodPost, "/media/uploads", strings.NewReader("{not json"))
	malformed.AddCookie(cookie)
	if rec := env.do(t, malformed); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed JSON, got %d", rec.Code)
	}
}

func TestPresignUpload_RequiresSession(t *testing.T) {
	env, _ := newMediaEnv(t)

	req := postJSON(t, "/media/uploads", map[string]string{"fileName": "pothole.jpg"})
	if rec := env.do(t, req); rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

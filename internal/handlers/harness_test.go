package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hemantthp85-ai/Civic-1/internal/auth"
	"github.com/hemantthp85-ai/Civic-1/internal/handlers"
	"github.com/hemantthp85-ai/Civic-1/internal/services"
	"github.com/hemantthp85-ai/Civic-1/internal/store"
	"github.com/hemantthp85-ai/Civic-1/types"
)

const testSecret = "handler-test-secret"

// fakeUserRepo is an in-memory services.UserRepository.
type fakeUserRepo struct {
	users      map[string]types.User // keyed by id
	lastLogins map[string]int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:      make(map[string]types.User),
		lastLogins: make(map[string]int),
	}
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (types.User, error) {
	user, ok := f.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (types.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (f *fakeUserRepo) Create(ctx context.Context, user types.User) (types.User, error) {
	if _, err := f.GetByEmail(ctx, user.Email); err == nil {
		return types.User{}, store.ErrConflict
	}
	user.CreatedAt = time.Now()
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) TouchLastLogin(ctx context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return store.ErrNotFound
	}
	f.lastLogins[id]++
	return nil
}

// fakeComplaintRepo is an in-memory services.ComplaintRepository.
type fakeComplaintRepo struct {
	complaints []types.Complaint
	clock      time.Time
}

func newFakeComplaintRepo() *fakeComplaintRepo {
	return &fakeComplaintRepo{clock: time.Now()}
}

func (f *fakeComplaintRepo) Create(ctx context.Context, complaint types.Complaint) (types.Complaint, error) {
	for _, existing := range f.complaints {
		if existing.ComplaintID == complaint.ComplaintID {
			return types.Complaint{}, store.ErrConflict
		}
	}
	// Monotonic timestamps keep list ordering deterministic.
	f.clock = f.clock.Add(time.Second)
	complaint.CreatedAt = f.clock
	for i := range complaint.Media {
		complaint.Media[i].ComplaintID = complaint.ID
	}
	f.complaints = append(f.complaints, complaint)
	return complaint, nil
}

func (f *fakeComplaintRepo) List(ctx context.Context, citizenID string, limit, offset int) ([]types.Complaint, error) {
	matched := make([]types.Complaint, 0, len(f.complaints))
	for _, complaint := range f.complaints {
		if citizenID == "" || complaint.CitizenID == citizenID {
			plain := complaint
			plain.Media = nil
			matched = append(matched, plain)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (f *fakeComplaintRepo) GetByID(ctx context.Context, id string) (types.Complaint, error) {
	for _, complaint := range f.complaints {
		if complaint.ID == id {
			return complaint, nil
		}
	}
	return types.Complaint{}, store.ErrNotFound
}

func (f *fakeComplaintRepo) ListMedia(ctx context.Context, complaintID string) ([]types.ComplaintMedia, error) {
	for _, complaint := range f.complaints {
		if complaint.ID == complaintID {
			return complaint.Media, nil
		}
	}
	return nil, nil
}

// testEnv bundles the router and fakes for a handler test.
type testEnv struct {
	router        *chi.Mux
	sessions      *auth.SessionManager
	userRepo      *fakeUserRepo
	complaintRepo *fakeComplaintRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	userRepo := newFakeUserRepo()
	complaintRepo := newFakeComplaintRepo()

	tokens := auth.NewTokenService(testSecret)
	sessions := auth.NewSessionManager(tokens, false)

	userService := services.NewUserService(userRepo)
	complaintService := services.NewComplaintService(complaintRepo, nil)

	router := chi.NewRouter()
	router.Route("/auth", func(r chi.Router) {
		handlers.AuthRouter(r, userService, sessions)
	})
	router.Route("/complaints", func(r chi.Router) {
		handlers.ComplaintRouter(r, complaintService, sessions)
	})

	return &testEnv{
		router:        router,
		sessions:      sessions,
		userRepo:      userRepo,
		complaintRepo: complaintRepo,
	}
}

// seedUser inserts a user directly and returns its session cookie.
func (e *testEnv) seedUser(t *testing.T, id, email string, role types.Role) *http.Cookie {
	t.Helper()

	hash, err := auth.HashPassword("a valid password")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	e.userRepo.users[id] = types.User{
		ID:           id,
		Email:        email,
		FullName:     "Seeded User",
		Role:         role,
		IsVerified:   true,
		PasswordHash: hash,
	}
	return e.sessionCookie(t, id, email, role)
}

func (e *testEnv) sessionCookie(t *testing.T, id, email string, role types.Role) *http.Cookie {
	t.Helper()

	rec := httptest.NewRecorder()
	if err := e.sessions.Issue(rec, id, email, role); err != nil {
		t.Fatalf("issue session: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected exactly one cookie, got %d", len(cookies))
	}
	return cookies[0]
}

func (e *testEnv) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hemantthp85-ai/Civic-1/internal/auth"
	"github.com/hemantthp85-ai/Civic-1/types"
)

const testSecret = "unit-test-secret"

func TestHashPassword_NeverStoresPlaintext(t *testing.T) {
	password := "correct horse battery staple"

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hash == password {
		t.Fatalf("hash equals the plaintext password")
	}
	if !auth.VerifyPassword(password, hash) {
		t.Errorf("expected the original password to verify")
	}
	if auth.VerifyPassword("wrong password", hash) {
		t.Errorf("expected a wrong password to fail verification")
	}
}

func TestHashPassword_FreshSaltPerCall(t *testing.T) {
	first, err := auth.HashPassword("hunter2hunter2")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	second, err := auth.HashPassword("hunter2hunter2")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if first == second {
		t.Errorf("two hashes of the same password should differ")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	if auth.VerifyPassword("anything", "not-a-bcrypt-hash") {
		t.Errorf("malformed hash must verify as false, not panic or succeed")
	}
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	tokens := auth.NewTokenService(testSecret)

	token, err := tokens.Issue("user-123", "citizen@example.com", types.RoleCitizen)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	claims := tokens.Verify(token)
	if claims == nil {
		t.Fatalf("expected a freshly issued token to verify")
	}
	if claims.UserID != "user-123" {
		t.Errorf("unexpected user id: %q", claims.UserID)
	}
	if claims.Email != "citizen@example.com" {
		t.Errorf("unexpected email: %q", claims.Email)
	}
	if claims.Role != types.RoleCitizen {
		t.Errorf("unexpected role: %q", claims.Role)
	}
}

func TestTokenService_VerifyFailuresReturnNil(t *testing.T) {
	tokens := auth.NewTokenService(testSecret)

	if got := tokens.Verify("not.a.token"); got != nil {
		t.Errorf("malformed token: expected nil, got %+v", got)
	}

	otherSecret := auth.NewTokenService("a-different-secret")
	forged, err := otherSecret.Issue("user-123", "citizen@example.com", types.RoleCitizen)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if got := tokens.Verify(forged); got != nil {
		t.Errorf("token signed with a different secret: expected nil, got %+v", got)
	}
}

// signAt builds a token with an explicit age so expiry behavior can be
// checked without waiting.
func signAt(t *testing.T, issuedAt time.Time, role types.Role) string {
	t.Helper()

	claims := auth.Claims{
		UserID: "user-123",
		Email:  "citizen@example.com",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(auth.TokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestTokenService_SevenDayExpiry(t *testing.T) {
	tokens := auth.NewTokenService(testSecret)

	sixDaysOld := signAt(t, time.Now().Add(-6*24*time.Hour), types.RoleCitizen)
	if tokens.Verify(sixDaysOld) == nil {
		t.Errorf("a 6-day-old token should still verify")
	}

	eightDaysOld := signAt(t, time.Now().Add(-8*24*time.Hour), types.RoleCitizen)
	if got := tokens.Verify(eightDaysOld); got != nil {
		t.Errorf("an 8-day-old token should be rejected, got %+v", got)
	}
}

func TestTokenService_RejectsUnknownRole(t *testing.T) {
	tokens := auth.NewTokenService(testSecret)

	token := signAt(t, time.Now(), types.Role("superuser"))
	if got := tokens.Verify(token); got != nil {
		t.Errorf("a token with an unknown role should be rejected, got %+v", got)
	}
}

package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hemantthp85-ai/Civic-1/types"
	"golang.org/x/crypto/bcrypt"
)

// HashCost is the bcrypt work factor used for all password hashes. The
// salt and cost are embedded in the hash output, so verification needs no
// side-channel storage.
const HashCost = 12

// TokenTTL is the lifetime of a session token. Tokens do not renew; a
// user logs in again after expiry.
const TokenTTL = 7 * 24 * time.Hour

// Claims is the signed claim set carried by a session token.
type Claims struct {
	UserID string     `json:"user_id"`
	Email  string     `json:"email"`
	Role   types.Role `json:"role"`
	jwt.RegisteredClaims
}

// HashPassword applies salted adaptive-cost hashing to a password.
// Each call produces a different hash for the same input.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword reports whether password matches hash. A malformed hash
// is treated as a mismatch, never an error.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// TokenService issues and verifies signed session tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService constructs a TokenService around the server-held
// signing secret. An empty secret must be rejected by the caller before
// construction; there is no fallback value.
func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    TokenTTL,
	}
}

// Issue produces a signed token for the given identity with an embedded
// expiry of TokenTTL from now.
func (s *TokenService) Issue(userID string, email string, role types.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature and expiry and returns the decoded claims, or
// nil for any failure: bad signature, expired, or malformed input. An
// invalid token is an absent session, not an error.
func (s *TokenService) Verify(tokenString string) *Claims {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil
	}
	if claims.UserID == "" || !claims.Role.Valid() {
		return nil
	}
	return claims
}

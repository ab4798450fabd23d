package auth

import (
	"net/http"

	"github.com/hemantthp85-ai/Civic-1/types"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "auth_token"

// SessionManager reads and writes the session cookie. The session is
// stateless: all state lives in the signed token, so logout is cookie
// deletion and there is no server-side revocation list.
type SessionManager struct {
	tokens *TokenService
	secure bool
}

// NewSessionManager wires the cookie adapter to the token service.
// secureCookies should be true only in production, where requests arrive
// over TLS.
func NewSessionManager(tokens *TokenService, secureCookies bool) *SessionManager {
	return &SessionManager{
		tokens: tokens,
		secure: secureCookies,
	}
}

// Issue signs a token for the identity and stores it in the response
// cookie.
func (m *SessionManager) Issue(w http.ResponseWriter, userID, email string, role types.Role) error {
	token, err := m.tokens.Issue(userID, email, role)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(TokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Current resolves the session for a request: cookie retrieval composed
// with token verification. Returns nil when the cookie is absent or the
// token fails verification. Every protected endpoint goes through this
// gate.
func (m *SessionManager) Current(r *http.Request) *Claims {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	return m.tokens.Verify(cookie.Value)
}

// Clear deletes the session cookie, ending the session client-side.
func (m *SessionManager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Package auth issues and verifies shopper session tokens. The storefront
// only ever asks whether a shopper is signed in; identity plays no part in
// cart or catalog computation.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName is the session cookie the web layer reads.
const CookieName = "nexshop_session"

// defaultTTL bounds how long a session token stays valid.
const defaultTTL = 24 * time.Hour

const issuer = "nexshop"

// ErrInvalidSession indicates a missing, expired, or tampered token.
var ErrInvalidSession = errors.New("invalid session")

// Session identifies a signed-in shopper.
type Session struct {
	ID    string
	Name  string
	Email string
}

// Manager signs and verifies session tokens with an HMAC secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
	clock  func() time.Time
}

// NewManager creates a session manager. The secret must be non-empty.
func NewManager(secret string) (*Manager, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("session secret is required")
	}
	return &Manager{
		secret: []byte(secret),
		ttl:    defaultTTL,
		clock:  time.Now,
	}, nil
}

type sessionClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Issue creates a signed session token for the shopper.
func (m *Manager) Issue(name, email string) (string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return "", fmt.Errorf("name is required")
	}
	now := m.clock().UTC()
	claims := sessionClaims{
		Name:  name,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Verify parses a session token and returns the session it identifies.
func (m *Manager) Verify(token string) (Session, error) {
	if strings.TrimSpace(token) == "" {
		return Session{}, ErrInvalidSession
	}
	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return m.clock() }), jwt.WithIssuer(issuer))
	if err != nil || !parsed.Valid {
		return Session{}, ErrInvalidSession
	}
	return Session{
		ID:    claims.Subject,
		Name:  claims.Name,
		Email: claims.Email,
	}, nil
}

// SetCookie attaches the session token to the response.
func (m *Manager) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie.
func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// FromRequest resolves the session on the request, if any.
func (m *Manager) FromRequest(r *http.Request) (Session, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return Session{}, ErrInvalidSession
	}
	return m.Verify(cookie.Value)
}

package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager("test-secret")
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	return m
}

func TestNewManagerRequiresSecret(t *testing.T) {
	t.Parallel()

	if _, err := NewManager("   "); err == nil {
		t.Fatal("NewManager(blank) error = nil, want error")
	}
}

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	token, err := m.Issue("Jordan Doe", "jordan@example.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	session, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if session.Name != "Jordan Doe" {
		t.Fatalf("Name = %q, want %q", session.Name, "Jordan Doe")
	}
	if session.Email != "jordan@example.com" {
		t.Fatalf("Email = %q, want %q", session.Email, "jordan@example.com")
	}
	if session.ID == "" {
		t.Fatal("ID is empty, want generated id")
	}
}

func TestIssueRequiresName(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	if _, err := m.Issue("  ", "a@example.com"); err == nil {
		t.Fatal("Issue(blank name) error = nil, want error")
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	token, err := m.Issue("Jordan", "")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	other, err := NewManager("different-secret")
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	if _, err := other.Verify(token); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("Verify() error = %v, want ErrInvalidSession", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	issued := time.Now().Add(-48 * time.Hour)
	m.clock = func() time.Time { return issued }
	token, err := m.Issue("Jordan", "")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	m.clock = time.Now
	if _, err := m.Verify(token); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("Verify() error = %v, want ErrInvalidSession", err)
	}
}

func TestVerifyRejectsBlankToken(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	if _, err := m.Verify(""); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("Verify(blank) error = %v, want ErrInvalidSession", err)
	}
}

func TestCookieRoundTrip(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	token, err := m.Issue("Jordan", "jordan@example.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	rec := httptest.NewRecorder()
	m.SetCookie(rec, token)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}

	session, err := m.FromRequest(req)
	if err != nil {
		t.Fatalf("FromRequest() error = %v", err)
	}
	if session.Name != "Jordan" {
		t.Fatalf("Name = %q, want %q", session.Name, "Jordan")
	}
}

func TestFromRequestWithoutCookie(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, err := m.FromRequest(req); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("FromRequest() error = %v, want ErrInvalidSession", err)
	}
}

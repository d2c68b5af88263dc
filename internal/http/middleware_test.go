package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/noticenest/noticenest/internal/domain/auth"
	"github.com/noticenest/noticenest/internal/domain/authz"
)

const testAdminEmail = "admin@example.com"

func testPolicy() authz.Policy {
	return authz.NewPolicy(testAdminEmail, "/auth/login")
}

func sessionFor(email string) *domainauth.Session {
	return &domainauth.Session{
		Token:     "token-" + email,
		Identity:  domainauth.Identity{Email: email, DisplayName: "Test User", Provider: domainauth.ProviderGoogle},
		IssuedAt:  time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

// guardRequest runs one request through the guard with the given
// session state already resolved into the context.
func guardRequest(t *testing.T, path string, state SessionState) *httptest.ResponseRecorder {
	t.Helper()

	var reached bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})

	handler := Guard(GuardConfig{Policy: testPolicy()})(next)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req = req.WithContext(WithSessionState(req.Context(), state))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code == http.StatusOK {
		assert.True(t, reached, "200 response should come from the inner handler")
	} else {
		assert.False(t, reached, "redirects must not invoke the inner handler")
	}
	return rec
}

func TestGuard_AnonymousOnResidentPageRedirectsToSignIn(t *testing.T) {
	rec := guardRequest(t, "/home", SessionState{Resolved: true})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/auth/login?redirect_uri=%2Fhome", rec.Header().Get("Location"))
}

func TestGuard_RedirectPreservesQuery(t *testing.T) {
	rec := guardRequest(t, "/announcements?category=safety", SessionState{Resolved: true})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/auth/login?redirect_uri=%2Fannouncements%3Fcategory%3Dsafety", rec.Header().Get("Location"))
}

func TestGuard_ResidentAllowedOnResidentPage(t *testing.T) {
	state := SessionState{Resolved: true, Session: sessionFor("resident@example.com")}

	rec := guardRequest(t, "/home", state)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGuard_ResidentOnAdminPageRedirectsToLanding(t *testing.T) {
	state := SessionState{Resolved: true, Session: sessionFor("resident@example.com")}

	rec := guardRequest(t, "/admin", state)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestGuard_AdminAllowedOnAdminPage(t *testing.T) {
	state := SessionState{Resolved: true, Session: sessionFor(testAdminEmail)}

	rec := guardRequest(t, "/admin", state)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGuard_PublicPageAlwaysAllowed(t *testing.T) {
	states := map[string]SessionState{
		"anonymous": {Resolved: true},
		"resident":  {Resolved: true, Session: sessionFor("resident@example.com")},
		"admin":     {Resolved: true, Session: sessionFor(testAdminEmail)},
	}

	for name, state := range states {
		t.Run(name, func(t *testing.T) {
			rec := guardRequest(t, "/", state)
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestGuard_UnresolvedStateFailsClosed(t *testing.T) {
	// No resolver ran; protected pages must not render.
	rec := guardRequest(t, "/home", SessionState{})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "/auth/login")
}

func TestGuard_UnresolvedStateOnPublicPageAllowed(t *testing.T) {
	rec := guardRequest(t, "/", SessionState{})

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGuard_UnknownPathRequiresSession(t *testing.T) {
	rec := guardRequest(t, "/not-a-page", SessionState{Resolved: true})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "/auth/login")
}

func TestSafeRedirectPath(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		expected  string
	}{
		{"empty falls back to root", "", "/"},
		{"relative path passes", "/events", "/events"},
		{"path with query passes", "/events?q=diwali", "/events?q=diwali"},
		{"absolute URL rejected", "https://evil.example.com/", "/"},
		{"protocol-relative rejected", "//evil.example.com", "/"},
		{"missing leading slash rejected", "events", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, safeRedirectPath(tt.candidate))
		})
	}
}

func TestLogging_CapturesStatus(t *testing.T) {
	handler := Logging(testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestRecover_PanicBecomesInternalError(t *testing.T) {
	handler := Recover(testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

package httpx

import (
	"encoding/json"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	noticenest "github.com/noticenest/noticenest"
	mocksauth "github.com/noticenest/noticenest/internal/mocks/auth"
	"github.com/noticenest/noticenest/internal/service"
)

func newTestRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()

	sub, err := fs.Sub(noticenest.TemplateFS, "web/templates")
	require.NoError(t, err)

	renderer, err := NewTemplateRenderer(TemplateRendererConfig{TemplateFS: sub, Logger: testLogger()})
	require.NoError(t, err)
	return renderer
}

type authHandlersFixture struct {
	handlers *AuthHandlers
	svc      *service.AuthService
	provider *mocksauth.MockAuthProvider
	sessions *mocksauth.MemorySessionStore
}

func newAuthHandlers(t *testing.T) *authHandlersFixture {
	t.Helper()

	provider := mocksauth.NewMockAuthProvider()
	sessions := mocksauth.NewMemorySessionStore()
	creds := &mocksauth.MockCredentialVerifier{Username: "resident", Password: "hunter2"}

	svc := service.NewAuthService(service.AuthServiceOptions{
		Provider:    provider,
		Sessions:    sessions,
		Credentials: creds,
	})

	return &authHandlersFixture{
		handlers: &AuthHandlers{
			Svc:      svc,
			Policy:   testPolicy(),
			Renderer: newTestRenderer(t),
			Logger:   testLogger(),
		},
		svc:      svc,
		provider: provider,
		sessions: sessions,
	}
}

// anonymousRequest builds a request carrying a resolved-anonymous state,
// as the resolver would for a visitor without a session.
func anonymousRequest(method, target string, body string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return req.WithContext(WithSessionState(req.Context(), SessionState{Resolved: true}))
}

func TestLoginPage_RendersSignInForm(t *testing.T) {
	f := newAuthHandlers(t)

	rec := httptest.NewRecorder()
	f.handlers.LoginPage(rec, anonymousRequest(http.MethodGet, "/auth/login", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `action="/auth/login"`)
	assert.Contains(t, body, "/auth/google")
	assert.Contains(t, body, `name="username"`)
	assert.Contains(t, body, `name="password"`)
}

func TestLoginPage_AuthenticatedVisitorGoesHome(t *testing.T) {
	f := newAuthHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
	state := SessionState{Resolved: true, Session: sessionFor("resident@example.com")}
	req = req.WithContext(WithSessionState(req.Context(), state))

	rec := httptest.NewRecorder()
	f.handlers.LoginPage(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, PostLoginPath, rec.Header().Get("Location"))
}

func TestBeginOAuth_RedirectsToProviderWithCookies(t *testing.T) {
	f := newAuthHandlers(t)

	rec := httptest.NewRecorder()
	f.handlers.BeginOAuth(rec, anonymousRequest(http.MethodGet, "/auth/google?redirect_uri=/events", ""))

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://mock-idp/auth", rec.Header().Get("Location"))

	cookies := map[string]string{}
	for _, c := range rec.Result().Cookies() {
		cookies[c.Name] = c.Value
	}
	assert.Equal(t, "state-1", cookies["oauth_state"])
	assert.Equal(t, "nonce-1", cookies["oauth_nonce"])
	assert.Equal(t, "/events", cookies["post_login_redirect"])
}

func TestCallback_HappyPathSetsSessionAndRedirects(t *testing.T) {
	f := newAuthHandlers(t)

	req := anonymousRequest(http.MethodGet, "/auth/callback?code=abc&state=state-1", "")
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "state-1"})
	req.AddCookie(&http.Cookie{Name: "oauth_nonce", Value: "nonce-1"})
	req.AddCookie(&http.Cookie{Name: "post_login_redirect", Value: "/events"})

	rec := httptest.NewRecorder()
	f.handlers.Callback(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/events", rec.Header().Get("Location"))

	var sessionCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookieName && c.Value != "" {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie, "callback must set the session cookie")
	assert.Equal(t, 1, f.sessions.Len())
}

func TestCallback_StateMismatchRejected(t *testing.T) {
	f := newAuthHandlers(t)

	req := anonymousRequest(http.MethodGet, "/auth/callback?code=abc&state=forged", "")
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "state-1"})
	req.AddCookie(&http.Cookie{Name: "oauth_nonce", Value: "nonce-1"})

	rec := httptest.NewRecorder()
	f.handlers.Callback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, f.sessions.Len(), "no session may be created on a forged state")
}

func TestCallback_MissingParamsRejected(t *testing.T) {
	f := newAuthHandlers(t)

	rec := httptest.NewRecorder()
	f.handlers.Callback(rec, anonymousRequest(http.MethodGet, "/auth/callback", ""))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPasswordLogin_Success(t *testing.T) {
	f := newAuthHandlers(t)

	form := url.Values{"username": {"resident"}, "password": {"hunter2"}, "redirect_uri": {"/marketplace"}}
	rec := httptest.NewRecorder()
	f.handlers.PasswordLogin(rec, anonymousRequest(http.MethodPost, "/auth/login", form.Encode()))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/marketplace", rec.Header().Get("Location"))
	assert.Equal(t, 1, f.sessions.Len())
}

func TestPasswordLogin_DefaultsToHome(t *testing.T) {
	f := newAuthHandlers(t)

	form := url.Values{"username": {"resident"}, "password": {"hunter2"}}
	rec := httptest.NewRecorder()
	f.handlers.PasswordLogin(rec, anonymousRequest(http.MethodPost, "/auth/login", form.Encode()))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, PostLoginPath, rec.Header().Get("Location"))
}

func TestPasswordLogin_FailuresAreUniform(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "resident", "wrong"},
		{"unknown user", "nobody", "hunter2"},
		{"empty credentials", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthHandlers(t)

			form := url.Values{"username": {tt.username}, "password": {tt.password}}
			rec := httptest.NewRecorder()
			f.handlers.PasswordLogin(rec, anonymousRequest(http.MethodPost, "/auth/login", form.Encode()))

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "Invalid username or password.")
			assert.Equal(t, 0, f.sessions.Len())
		})
	}
}

func TestPasswordLogin_FailureKeepsRedirectURI(t *testing.T) {
	f := newAuthHandlers(t)

	form := url.Values{"username": {"resident"}, "password": {"wrong"}, "redirect_uri": {"/events"}}
	rec := httptest.NewRecorder()
	f.handlers.PasswordLogin(rec, anonymousRequest(http.MethodPost, "/auth/login", form.Encode()))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	// The re-rendered form must carry the posted destination, not reset it.
	assert.Contains(t, rec.Body.String(), `name="redirect_uri" value="/events"`)
}

func TestLogout_ClearsSessionAndCookie(t *testing.T) {
	f := newAuthHandlers(t)

	session, err := f.svc.PasswordLogin(t.Context(), "resident", "hunter2")
	require.NoError(t, err)
	require.Equal(t, 1, f.sessions.Len())

	req := anonymousRequest(http.MethodPost, "/auth/logout", "")
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: session.Session.Token})

	rec := httptest.NewRecorder()
	f.handlers.Logout(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/auth/signed-out", rec.Header().Get("Location"))
	assert.Equal(t, 0, f.sessions.Len())

	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "logout must clear the session cookie")
}

func TestLogout_IsIdempotent(t *testing.T) {
	f := newAuthHandlers(t)

	// No cookie at all, and then a stale token: both land on signed-out.
	rec := httptest.NewRecorder()
	f.handlers.Logout(rec, anonymousRequest(http.MethodPost, "/auth/logout", ""))
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	req := anonymousRequest(http.MethodPost, "/auth/logout", "")
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "long-gone"})
	rec = httptest.NewRecorder()
	f.handlers.Logout(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestStatus_ReportsRole(t *testing.T) {
	f := newAuthHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	state := SessionState{Resolved: true, Session: sessionFor(testAdminEmail)}
	req = req.WithContext(WithSessionState(req.Context(), state))

	rec := httptest.NewRecorder()
	f.handlers.Status(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Authenticated bool `json:"authenticated"`
		User          struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Authenticated)
	assert.Equal(t, testAdminEmail, body.User.Email)
	assert.Equal(t, "admin", body.User.Role)
}

func TestStatus_Anonymous(t *testing.T) {
	f := newAuthHandlers(t)

	rec := httptest.NewRecorder()
	f.handlers.Status(rec, anonymousRequest(http.MethodGet, "/auth/session", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"authenticated": false}`, rec.Body.String())
}

func TestRenew_ExtendsSession(t *testing.T) {
	f := newAuthHandlers(t)

	result, err := f.svc.PasswordLogin(t.Context(), "resident", "hunter2")
	require.NoError(t, err)

	req := anonymousRequest(http.MethodPost, "/auth/renew", "")
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: result.Session.Token})

	rec := httptest.NewRecorder()
	f.handlers.Renew(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authenticated":true`)
}

func TestRenew_ExpiredSessionClearsCookie(t *testing.T) {
	f := newAuthHandlers(t)

	req := anonymousRequest(http.MethodPost, "/auth/renew", "")
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "expired-token"})

	rec := httptest.NewRecorder()
	f.handlers.Renew(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "session_expired")

	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestRenew_NoCookie(t *testing.T) {
	f := newAuthHandlers(t)

	rec := httptest.NewRecorder()
	f.handlers.Renew(rec, anonymousRequest(http.MethodPost, "/auth/renew", ""))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "no_session")
}

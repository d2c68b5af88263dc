package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainauth "github.com/noticenest/noticenest/internal/domain/auth"
	"github.com/noticenest/noticenest/internal/domain/authz"
	"github.com/noticenest/noticenest/internal/ports"
	"github.com/noticenest/noticenest/internal/service"
)

// PostLoginPath is where a fresh sign-in lands when no explicit
// redirect was requested.
const PostLoginPath = "/home"

// AuthServiceInterface defines the auth service surface the handlers use.
type AuthServiceInterface interface {
	BeginLogin(ctx context.Context, redirectURL string) (*service.BeginLoginResult, error)
	CompleteLogin(ctx context.Context, input service.CompleteLoginInput) (*service.CompleteLoginResult, error)
	PasswordLogin(ctx context.Context, username, password string) (*service.CompleteLoginResult, error)
	GetSession(ctx context.Context, token string) (*domainauth.Session, error)
	RenewSession(ctx context.Context, token string) (*domainauth.Session, error)
	Logout(ctx context.Context, token string) error
}

// AuthHandlers provides HTTP handlers for the sign-in endpoints.
type AuthHandlers struct {
	Svc          AuthServiceInterface
	Policy       authz.Policy
	Renderer     *TemplateRenderer
	CookieDomain string
	CallbackURL  string
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// LoginPage renders the sign-in page.
// GET /auth/login?redirect_uri=<optional_redirect>.
func (h *AuthHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	// A signed-in visitor has nothing to do here
	if IsAuthenticated(r.Context()) {
		http.Redirect(w, r, PostLoginPath, http.StatusSeeOther)
		return
	}

	h.renderLoginPage(w, r, "")
}

func (h *AuthHandlers) renderLoginPage(w http.ResponseWriter, r *http.Request, errMsg string) {
	// FormValue prefers the posted field over the query string, so a
	// failed credentials attempt keeps its original destination.
	redirect := safeRedirectPath(r.FormValue("redirect_uri"))
	data := PageData{
		Title:       "Sign In - NoticeNest",
		CurrentPage: "login",
		CSRFToken:   CSRFTokenFrom(r.Context()),
		Viewer:      viewerFrom(r.Context(), h.Policy),
		Data: map[string]any{
			"RedirectURI": redirect,
			"Error":       errMsg,
		},
	}
	code := http.StatusOK
	if errMsg != "" {
		code = http.StatusUnauthorized
	}
	if err := h.Renderer.RenderPageStatus(w, code, "login-page", data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// BeginOAuth starts the Google sign-in flow.
// GET /auth/google?redirect_uri=<optional_redirect>.
func (h *AuthHandlers) BeginOAuth(w http.ResponseWriter, r *http.Request) {
	redirectURI := safeRedirectPath(r.URL.Query().Get("redirect_uri"))

	callback := h.CallbackURL
	if callback == "" {
		callback = "/auth/callback"
	}
	result, err := h.Svc.BeginLogin(r.Context(), callback)
	if err != nil {
		h.logger().ErrorContext(r.Context(), "begin sign-in failed", slog.Any("error", err))
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "login_failed",
			Err:     errors.New("unable to start sign-in"),
		})
		return
	}

	h.setOAuthCookies(w, r, oauthCookieParams{State: result.State, Nonce: result.Nonce, RedirectURI: redirectURI})
	http.Redirect(w, r, result.AuthURL, http.StatusFound)
}

// Callback handles the OAuth callback endpoint.
// GET /auth/callback?code=<code>&state=<state>.
func (h *AuthHandlers) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")
	if code == "" || state == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_callback",
			Err:     errors.New("code and state parameters are required"),
		})
		return
	}

	// Verify state and read nonce from the short-lived cookies
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value != state {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_state",
			Err:     errors.New("invalid or missing state parameter"),
		})
		return
	}
	nonceCookie, err := r.Cookie("oauth_nonce")
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_nonce",
			Err:     errors.New("missing nonce parameter"),
		})
		return
	}

	result, err := h.Svc.CompleteLogin(r.Context(), service.CompleteLoginInput{
		Code:  code,
		State: state,
		Nonce: nonceCookie.Value,
	})
	if err != nil {
		h.logger().ErrorContext(r.Context(), "sign-in completion failed", slog.Any("error", err))
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "login_completion_failed",
			Err:     errors.New("unable to complete sign-in"),
		})
		return
	}

	h.setSessionCookie(w, r, result.Session)
	h.clearCookie(w, r, "oauth_state")
	h.clearCookie(w, r, "oauth_nonce")

	http.Redirect(w, r, h.postLoginRedirect(w, r), http.StatusSeeOther)
}

// PasswordLogin handles the username/password sign-in form.
// POST /auth/login with form fields username, password, redirect_uri.
func (h *AuthHandlers) PasswordLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLoginPage(w, r, "Invalid username or password.")
		return
	}

	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")

	result, err := h.Svc.PasswordLogin(r.Context(), username, password)
	if err != nil {
		// Always the same message, whatever actually failed
		if !errors.Is(err, ports.ErrInvalidCredentials) {
			h.logger().ErrorContext(r.Context(), "password sign-in failed", slog.Any("error", err))
		}
		h.renderLoginPage(w, r, "Invalid username or password.")
		return
	}

	h.setSessionCookie(w, r, result.Session)

	redirectURI := safeRedirectPath(r.PostFormValue("redirect_uri"))
	if redirectURI == "/" {
		redirectURI = PostLoginPath
	}
	http.Redirect(w, r, redirectURI, http.StatusSeeOther)
}

// Logout invalidates the session and clears the cookie.
// POST /auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if sessionCookie, err := r.Cookie(SessionCookieName); err == nil {
		if logoutErr := h.Svc.Logout(r.Context(), sessionCookie.Value); logoutErr != nil {
			h.logger().WarnContext(r.Context(), "logout failed", slog.Any("error", logoutErr))
		}
	}

	h.clearCookie(w, r, SessionCookieName)
	http.Redirect(w, r, "/auth/signed-out", http.StatusSeeOther)
}

// Status returns the current authentication status.
// GET /auth/session.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())
	if session == nil {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user": map[string]any{
			"email":        session.Identity.Email,
			"display_name": session.Identity.DisplayName,
			"provider":     session.Identity.Provider,
			"role":         authz.RoleFor(&session.Identity, h.Policy.AdminEmail),
		},
		"expires_at": session.ExpiresAt,
	})
}

// Renew extends the current session.
// POST /auth/renew.
func (h *AuthHandlers) Renew(w http.ResponseWriter, r *http.Request) {
	sessionCookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "no_session",
			Err:     errors.New("no session to renew"),
		})
		return
	}

	session, err := h.Svc.RenewSession(r.Context(), sessionCookie.Value)
	if err != nil {
		if errors.Is(err, ports.ErrSessionExpired) {
			h.clearCookie(w, r, SessionCookieName)
			WriteError(w, ErrorParams{
				Code:    http.StatusUnauthorized,
				ErrCode: "session_expired",
				Err:     errors.New("session expired; sign in again"),
			})
			return
		}
		h.logger().ErrorContext(r.Context(), "session renewal failed", slog.Any("error", err))
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "renew_failed",
			Err:     errors.New("unable to renew session"),
		})
		return
	}

	h.setSessionCookie(w, r, *session)
	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"expires_at":    session.ExpiresAt,
	})
}

// clearCookie clears a cookie by setting it to expire immediately. It
// mirrors the attributes used when setting cookies to maximize
// compatibility across browsers during deletion.
func (h *AuthHandlers) clearCookie(w http.ResponseWriter, r *http.Request, name string) {
	isSecure := r.TLS != nil || isForwardedHTTPS(r)
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecure,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

// oauthCookieParams groups values needed to set the OAuth cookies.
type oauthCookieParams struct {
	State       string
	Nonce       string
	RedirectURI string
}

// setOAuthCookies stores OAuth state, nonce, and the post-login redirect in secure cookies.
func (h *AuthHandlers) setOAuthCookies(w http.ResponseWriter, r *http.Request, p oauthCookieParams) {
	isSecure := r.TLS != nil || isForwardedHTTPS(r)

	for name, value := range map[string]string{
		"oauth_state":         p.State,
		"oauth_nonce":         p.Nonce,
		"post_login_redirect": p.RedirectURI,
	} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    value,
			Path:     "/",
			Domain:   h.CookieDomain,
			HttpOnly: true,
			Secure:   isSecure,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   600, // 10 minutes
		})
	}
}

// setSessionCookie writes the session cookie based on the session's expiry.
func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, s domainauth.Session) {
	isSecure := r.TLS != nil || isForwardedHTTPS(r)
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    s.Token,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(time.Until(s.ExpiresAt).Seconds()),
	})
}

// postLoginRedirect returns the post-login destination and clears the cookie.
func (h *AuthHandlers) postLoginRedirect(w http.ResponseWriter, r *http.Request) string {
	redirectURI := PostLoginPath
	if redirectCookie, err := r.Cookie("post_login_redirect"); err == nil {
		candidate := redirectCookie.Value
		// Defensive re-validation: allow only relative paths
		u, parseErr := url.Parse(candidate)
		if parseErr == nil && !u.IsAbs() && u.Host == "" && strings.HasPrefix(u.Path, "/") && candidate != "/" {
			redirectURI = candidate
		}
		h.clearCookie(w, r, "post_login_redirect")
	}
	return redirectURI
}

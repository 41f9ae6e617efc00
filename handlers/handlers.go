package handlers

import (
	"context"
	"net/http"
	"time"

	"dbexport/audit"
	"dbexport/auth"
	"dbexport/config"
	"dbexport/i18n"
	"dbexport/login"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handlers holds the dependencies of the web layer: the authenticator the
// login controller delegates to and the shared logger.
type Handlers struct {
	Auth login.Authenticator
	Log  *zap.Logger

	loginLimiter *rateLimiter
}

func New(authenticator login.Authenticator, log *zap.Logger) *Handlers {
	return &Handlers{
		Auth:         authenticator,
		Log:          log,
		loginLimiter: newRateLimiter(),
	}
}

// Router builds the application's route tree.
func (h *Handlers) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(SecurityHeadersMiddleware)
	r.Use(RequestLogging(h.Log))

	r.Get("/", h.Index)
	r.Get("/login", h.LoginPage)
	r.Post("/login", h.SubmitLogin)
	r.Get("/export", h.ExportPage)
	r.Get("/logout", h.Logout)
	r.Post("/logout", h.Logout)

	r.Post("/api/v1/login", h.APILogin)

	if config.AppConfig.CaptchaEnabled {
		r.Get("/captcha/new", NewCaptchaHandler)
		r.Handle("/captcha/img/{file}", captchaImageServer())
	}

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	return r
}

func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentTarget(r); ok {
		http.Redirect(w, r, config.AppConfig.ExportPath, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "login.html", h.loginPageData(r, login.Credentials{}, ""))
}

// SubmitLogin runs one credential submission through the form controller.
// The controller owns the behavioral contract (single authenticator call,
// unconditional loading reset, navigation fallback); this handler supplies
// the boundary gating the contract demands: rate limiting, captcha, and
// the required-field check the browser normally enforces.
func (h *Handlers) SubmitLogin(w http.ResponseWriter, r *http.Request) {
	lang := i18n.DetectLanguage(r)

	ip := getClientIP(r)
	if !h.loginLimiter.Allow(ip) {
		h.renderLoginError(w, r, http.StatusTooManyRequests, i18n.T(lang, "TooManyAttempts"), login.Credentials{})
		return
	}

	if config.AppConfig.CaptchaEnabled && !verifyCaptcha(r) {
		h.renderLoginError(w, r, http.StatusBadRequest, i18n.T(lang, "CaptchaFailed"), formCredentials(r))
		return
	}

	nav := newHTTPNavigator(w, r)
	grace := time.Duration(config.AppConfig.GraceWindowMs) * time.Millisecond
	ctrl := login.NewController(h.Auth, nav, config.AppConfig.ExportPath, grace)
	defer ctrl.Close()

	ctrl.SetField(login.FieldServer, r.FormValue("server"))
	ctrl.SetField(login.FieldDatabase, r.FormValue("database"))
	ctrl.SetField(login.FieldUsername, r.FormValue("username"))
	ctrl.SetField(login.FieldPassword, r.FormValue("password"))

	form := ctrl.State().Form
	if !form.Complete() {
		h.renderLoginError(w, r, http.StatusBadRequest, i18n.T(lang, "MissingFields"), form)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(config.AppConfig.AuthTimeoutSec)*time.Second)
	defer cancel()
	ctrl.Submit(ctx)

	if st := ctrl.State(); st.Error != "" {
		h.loginLimiter.RecordFailure(ip)
		outcome := audit.OutcomeError
		if st.Error == login.MsgAuthFailed {
			outcome = audit.OutcomeRejected
		}
		h.recordAttempt(audit.Attempt{
			Server:   form.Server,
			Database: form.Database,
			Username: form.Username,
			Outcome:  outcome,
			Detail:   st.Error,
		})
		h.renderLoginError(w, r, http.StatusOK, st.Error, form)
		return
	}

	h.loginLimiter.Reset(ip)
	target := auth.NewTarget(form.Server, form.Database, form.Username)
	auth.SetTarget(w, r, target)
	h.recordAttempt(audit.Attempt{
		ConnID:   target.ConnID,
		Server:   target.Server,
		Database: target.Database,
		Username: target.Username,
		Outcome:  audit.OutcomeOK,
	})
	nav.Flush()
}

func (h *Handlers) ExportPage(w http.ResponseWriter, r *http.Request) {
	target, ok := auth.CurrentTarget(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	renderTemplate(w, r, "export.html", map[string]any{
		"Target": target,
	})
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSession(w, r)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// renderLoginError surfaces a failed submission. HTMX requests get the bare
// message retargeted at the form's error region; full requests get the page
// re-rendered with the message and the non-secret fields preserved.
func (h *Handlers) renderLoginError(w http.ResponseWriter, r *http.Request, status int, message string, form login.Credentials) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Retarget", "#error-message")
		// HTMX ignores HX-* headers on error statuses, so answer 200.
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(message))
		return
	}
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	renderTemplate(w, r, "login.html", h.loginPageData(r, form, message))
}

func (h *Handlers) loginPageData(r *http.Request, form login.Credentials, errMsg string) map[string]any {
	data := map[string]any{
		"Error":          errMsg,
		"Server":         form.Server,
		"Database":       form.Database,
		"Username":       form.Username,
		"CaptchaEnabled": config.AppConfig.CaptchaEnabled,
	}
	if config.AppConfig.CaptchaEnabled {
		data["CaptchaID"] = newCaptchaID()
	}
	if recent, err := audit.Recent(r.Context(), 5); err == nil {
		data["Recent"] = recent
	}
	return data
}

func (h *Handlers) recordAttempt(a audit.Attempt) {
	if err := audit.Record(context.Background(), a); err != nil {
		h.Log.Warn("audit record failed", zap.Error(err))
	}
}

func formCredentials(r *http.Request) login.Credentials {
	return login.Credentials{
		Server:   r.FormValue("server"),
		Database: r.FormValue("database"),
		Username: r.FormValue("username"),
	}
}

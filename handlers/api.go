package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"dbexport/audit"
	"dbexport/auth"
	"dbexport/config"
	"dbexport/i18n"
	"dbexport/login"
)

type APIResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

func sendJSONResponse(w http.ResponseWriter, status int, response APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

// recordingNavigator satisfies the controller's Navigator for the JSON
// flow, where the client performs its own transition from the returned
// redirect path.
type recordingNavigator struct {
	mu   sync.Mutex
	path string
}

func (n *recordingNavigator) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.path = path
}

func (n *recordingNavigator) CurrentPath() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.path
}

func (n *recordingNavigator) Redirect(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.path = path
}

// APILogin is the JSON twin of SubmitLogin for non-HTML clients.
func (h *Handlers) APILogin(w http.ResponseWriter, r *http.Request) {
	lang := i18n.DetectLanguage(r)

	ip := getClientIP(r)
	if !h.loginLimiter.Allow(ip) {
		sendJSONResponse(w, http.StatusTooManyRequests, APIResponse{Status: "error", Message: i18n.T(lang, "TooManyAttempts")})
		return
	}

	var input struct {
		Server   string `json:"server"`
		Database string `json:"database"`
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendJSONResponse(w, http.StatusBadRequest, APIResponse{Status: "error", Message: i18n.T(lang, "InvalidRequestBody")})
		return
	}

	nav := &recordingNavigator{}
	grace := time.Duration(config.AppConfig.GraceWindowMs) * time.Millisecond
	ctrl := login.NewController(h.Auth, nav, config.AppConfig.ExportPath, grace)
	defer ctrl.Close()

	ctrl.SetField(login.FieldServer, input.Server)
	ctrl.SetField(login.FieldDatabase, input.Database)
	ctrl.SetField(login.FieldUsername, input.Username)
	ctrl.SetField(login.FieldPassword, input.Password)

	form := ctrl.State().Form
	if !form.Complete() {
		sendJSONResponse(w, http.StatusBadRequest, APIResponse{Status: "error", Message: i18n.T(lang, "MissingFields")})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(config.AppConfig.AuthTimeoutSec)*time.Second)
	defer cancel()
	ctrl.Submit(ctx)

	if st := ctrl.State(); st.Error != "" {
		h.loginLimiter.RecordFailure(ip)
		status := http.StatusBadGateway
		outcome := audit.OutcomeError
		if st.Error == login.MsgAuthFailed {
			status = http.StatusUnauthorized
			outcome = audit.OutcomeRejected
		}
		h.recordAttempt(audit.Attempt{
			Server:   form.Server,
			Database: form.Database,
			Username: form.Username,
			Outcome:  outcome,
			Detail:   st.Error,
		})
		sendJSONResponse(w, status, APIResponse{Status: "error", Message: st.Error})
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

	sendJSONResponse(w, http.StatusOK, APIResponse{Status: "success", Redirect: nav.CurrentPath()})
}

package auth

import (
	"net/http"

	"dbexport/config"
	"dbexport/crypto"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

var Store *sessions.CookieStore

func InitStore() {
	// Derive two independent 32-byte keys from the configured secret:
	// one for signing (HMAC), one for content encryption (AES).
	authKey := crypto.DeriveKey(config.AppConfig.SessionKey, "auth")
	encKey := crypto.DeriveKey(config.AppConfig.SessionKey, "encryption")

	Store = sessions.NewCookieStore(authKey, encKey)

	Store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   3600 * 8, // one working day
		HttpOnly: true,
		Secure:   config.AppConfig.ListenPort != 8080, // Default to true unless dev port
		SameSite: http.SameSiteLaxMode,
	}
}

const SessionName = "dbexport-session"

// Target identifies the connection a session is logged into. The password
// is deliberately absent: it is read once at submission and never retained.
type Target struct {
	ConnID   string
	Server   string
	Database string
	Username string
}

// NewTarget mints a Target with a fresh connection id.
func NewTarget(server, database, username string) Target {
	return Target{
		ConnID:   uuid.NewString(),
		Server:   server,
		Database: database,
		Username: username,
	}
}

// SetTarget stores the connection target in the session cookie.
func SetTarget(w http.ResponseWriter, r *http.Request, t Target) {
	session, _ := Store.Get(r, SessionName)
	session.Values["connID"] = t.ConnID
	session.Values["server"] = t.Server
	session.Values["database"] = t.Database
	session.Values["username"] = t.Username
	session.Save(r, w)
}

// CurrentTarget returns the session's connection target, if any.
func CurrentTarget(r *http.Request) (Target, bool) {
	session, _ := Store.Get(r, SessionName)
	id, ok := session.Values["connID"].(string)
	if !ok || id == "" {
		return Target{}, false
	}
	t := Target{ConnID: id}
	t.Server, _ = session.Values["server"].(string)
	t.Database, _ = session.Values["database"].(string)
	t.Username, _ = session.Values["username"].(string)
	return t, true
}

func ClearSession(w http.ResponseWriter, r *http.Request) {
	session, _ := Store.Get(r, SessionName)
	session.Options.MaxAge = -1
	session.Save(r, w)
}

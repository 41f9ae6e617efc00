package handlers

import (
	"net/http"
	"sync"
)

// httpNavigator adapts the login controller's Navigator to one HTTP
// exchange. Navigate only records the transition so the handler can write
// the session cookie first and commit with Flush; Redirect (the
// grace-window fallback) writes immediately.
type httpNavigator struct {
	w http.ResponseWriter
	r *http.Request

	mu        sync.Mutex
	committed string
	wrote     bool
}

func newHTTPNavigator(w http.ResponseWriter, r *http.Request) *httpNavigator {
	return &httpNavigator{w: w, r: r}
}

func (n *httpNavigator) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.committed = path
}

func (n *httpNavigator) CurrentPath() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.committed
}

func (n *httpNavigator) Redirect(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.write(path)
}

// Flush commits the recorded navigation to the response.
func (n *httpNavigator) Flush() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.committed != "" {
		n.write(n.committed)
	}
}

func (n *httpNavigator) write(path string) {
	if n.wrote {
		return
	}
	n.wrote = true
	if n.r.Header.Get("HX-Request") == "true" {
		n.w.Header().Set("HX-Redirect", path)
		n.w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(n.w, n.r, path, http.StatusSeeOther)
}

package login

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Fixed user-facing failure messages. Their exact wording is part of the
// form contract: MsgAuthFailed surfaces an explicit rejection, and
// MsgConnectionFailed surfaces any failure that carries no detail of its
// own.
const (
	MsgAuthFailed       = "Authentication failed. Please check your credentials."
	MsgConnectionFailed = "Could not connect to the server. Please try again."
)

// Authenticator validates the connection credentials against the backend.
// Login returns true on success, false on a graceful rejection, or an error
// for transport and endpoint failures. Errors may implement DetailCarrier.
type Authenticator interface {
	Login(ctx context.Context, creds Credentials) (bool, error)
}

// Navigator performs page transitions. Navigate commits the primary
// client-side transition, CurrentPath reports the currently resolved path,
// and Redirect forces a full-document navigation as a last resort.
type Navigator interface {
	Navigate(path string)
	CurrentPath() string
	Redirect(path string)
}

// DetailCarrier is implemented by authenticator errors that carry a
// human-readable failure detail from the backend.
type DetailCarrier interface {
	error
	Detail() string
}

// ErrorMessage resolves the message displayed for an authenticator error:
// the carried detail when one is present, MsgConnectionFailed otherwise.
func ErrorMessage(err error) string {
	var dc DetailCarrier
	if errors.As(err, &dc) && dc.Detail() != "" {
		return dc.Detail()
	}
	return MsgConnectionFailed
}

// Controller owns the form state and runs the submission workflow. It does
// not gate concurrent Submit calls; the boundary that triggers submission
// must disable its control while State().Loading is true.
type Controller struct {
	auth   Authenticator
	nav    Navigator
	target string
	grace  time.Duration

	mu       sync.Mutex
	state    State
	fallback *time.Timer
}

// NewController builds a controller that navigates to target on success and
// waits grace before checking whether the primary navigation took effect.
func NewController(auth Authenticator, nav Navigator, target string, grace time.Duration) *Controller {
	return &Controller{auth: auth, nav: nav, target: target, grace: grace}
}

// State returns the current state snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetField replaces one form field's value.
func (c *Controller) SetField(f Field, value string) {
	c.apply(FieldChanged{Field: f, Value: value})
}

// Submit runs one authentication attempt against the current form values.
// Exactly one Authenticator call is made, and Loading is reset once that
// call settles no matter how it settles.
func (c *Controller) Submit(ctx context.Context) {
	c.apply(SubmitStarted{})
	defer c.apply(SubmitSettled{})

	ok, err := c.auth.Login(ctx, c.State().Form)
	if err != nil {
		c.apply(SubmitFailed{Message: ErrorMessage(err)})
		return
	}
	if !ok {
		c.apply(SubmitFailed{Message: MsgAuthFailed})
		return
	}

	c.nav.Navigate(c.target)
	c.scheduleFallback()
}

// Close cancels a pending fallback redirect. Call it when the form goes
// away so a stale hard-redirect cannot fire after the user has moved on.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fallback != nil {
		c.fallback.Stop()
		c.fallback = nil
	}
}

func (c *Controller) apply(e Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Reduce(c.state, e)
}

// scheduleFallback arms the grace-window check: if the navigator has not
// resolved to the target path once the window elapses, force a hard
// redirect. A newer submission replaces any previously armed timer.
func (c *Controller) scheduleFallback() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fallback != nil {
		c.fallback.Stop()
	}
	nav, target := c.nav, c.target
	c.fallback = time.AfterFunc(c.grace, func() {
		if nav.CurrentPath() != target {
			nav.Redirect(target)
		}
	})
}

// Package login implements the credential form workflow: a form state
// record with a pure reducer, and a controller that drives the external
// authenticator and navigator collaborators on submission.
package login

// Field names a credential form field.
type Field string

const (
	FieldServer   Field = "server"
	FieldDatabase Field = "database"
	FieldUsername Field = "username"
	FieldPassword Field = "password"
)

// Credentials is the four-field connection record submitted for
// authentication. The password is read once at submission time and is never
// logged or persisted.
type Credentials struct {
	Server   string
	Database string
	Username string
	Password string
}

// Complete reports whether every required field is non-empty.
func (c Credentials) Complete() bool {
	return c.Server != "" && c.Database != "" && c.Username != "" && c.Password != ""
}

// State is an immutable snapshot of the form controller.
type State struct {
	Form    Credentials
	Loading bool
	Error   string
}

// Event is a state transition input for Reduce.
type Event interface {
	isEvent()
}

// FieldChanged replaces one field's value. Other fields are untouched and
// no validation happens at this point.
type FieldChanged struct {
	Field Field
	Value string
}

// SubmitStarted marks the beginning of a submission: loading on, previous
// error cleared.
type SubmitStarted struct{}

// SubmitFailed records the user-facing failure message.
type SubmitFailed struct {
	Message string
}

// SubmitSettled fires once the authentication call settles, regardless of
// outcome. It only resets loading.
type SubmitSettled struct{}

func (FieldChanged) isEvent()  {}
func (SubmitStarted) isEvent() {}
func (SubmitFailed) isEvent()  {}
func (SubmitSettled) isEvent() {}

// Reduce returns the state that follows s after e. It never mutates s.
func Reduce(s State, e Event) State {
	switch ev := e.(type) {
	case FieldChanged:
		switch ev.Field {
		case FieldServer:
			s.Form.Server = ev.Value
		case FieldDatabase:
			s.Form.Database = ev.Value
		case FieldUsername:
			s.Form.Username = ev.Value
		case FieldPassword:
			s.Form.Password = ev.Value
		}
	case SubmitStarted:
		s.Loading = true
		s.Error = ""
	case SubmitFailed:
		s.Error = ev.Message
	case SubmitSettled:
		s.Loading = false
	}
	return s
}

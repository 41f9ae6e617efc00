package login

import "testing"

func TestReduceFieldChanged(t *testing.T) {
	var s State

	s = Reduce(s, FieldChanged{Field: FieldServer, Value: "db.example.com"})
	s = Reduce(s, FieldChanged{Field: FieldDatabase, Value: "sales"})
	s = Reduce(s, FieldChanged{Field: FieldUsername, Value: "reader"})
	s = Reduce(s, FieldChanged{Field: FieldPassword, Value: "secret"})

	want := Credentials{Server: "db.example.com", Database: "sales", Username: "reader", Password: "secret"}
	if s.Form != want {
		t.Errorf("Expected form %+v, got %+v", want, s.Form)
	}
}

func TestReduceLastWriteWinsPerField(t *testing.T) {
	var s State
	s = Reduce(s, FieldChanged{Field: FieldServer, Value: "first"})
	s = Reduce(s, FieldChanged{Field: FieldUsername, Value: "alice"})
	s = Reduce(s, FieldChanged{Field: FieldServer, Value: "second"})

	if s.Form.Server != "second" {
		t.Errorf("Expected last server value 'second', got '%s'", s.Form.Server)
	}
	if s.Form.Username != "alice" {
		t.Errorf("Server update clobbered username: got '%s'", s.Form.Username)
	}
}

func TestReduceUnknownFieldIsNoop(t *testing.T) {
	s := Reduce(State{}, FieldChanged{Field: Field("bogus"), Value: "x"})
	if s != (State{}) {
		t.Errorf("Unknown field changed state: %+v", s)
	}
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	before := State{Form: Credentials{Server: "a"}}
	_ = Reduce(before, FieldChanged{Field: FieldServer, Value: "b"})
	if before.Form.Server != "a" {
		t.Error("Reduce mutated its input state")
	}
}

func TestReduceSubmitLifecycle(t *testing.T) {
	s := State{Error: "stale error"}

	s = Reduce(s, SubmitStarted{})
	if !s.Loading {
		t.Error("SubmitStarted did not set loading")
	}
	if s.Error != "" {
		t.Errorf("SubmitStarted did not clear error, got '%s'", s.Error)
	}

	s = Reduce(s, SubmitFailed{Message: "bad creds"})
	if s.Error != "bad creds" {
		t.Errorf("Expected error 'bad creds', got '%s'", s.Error)
	}

	s = Reduce(s, SubmitSettled{})
	if s.Loading {
		t.Error("SubmitSettled did not reset loading")
	}
	if s.Error != "bad creds" {
		t.Error("SubmitSettled must not touch the error message")
	}
}

func TestCredentialsComplete(t *testing.T) {
	full := Credentials{Server: "s", Database: "d", Username: "u", Password: "p"}
	if !full.Complete() {
		t.Error("Expected complete credentials to report Complete")
	}

	for _, partial := range []Credentials{
		{Database: "d", Username: "u", Password: "p"},
		{Server: "s", Username: "u", Password: "p"},
		{Server: "s", Database: "d", Password: "p"},
		{Server: "s", Database: "d", Username: "u"},
	} {
		if partial.Complete() {
			t.Errorf("Expected %+v to be incomplete", partial)
		}
	}
}

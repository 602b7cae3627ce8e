package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/ascentlabs/ascent/cli/pkg/terminal"
	"github.com/ascentlabs/ascent/session"
)

func TestLogin(t *testing.T) {
	setup := &TestSetup{}

	loginHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			http.NotFound(w, r)
			return
		}
		r.ParseForm()
		if r.PostFormValue("username") != "dev@example.com" || r.PostFormValue("password") != "hunter2" {
			http.Error(w, `{"detail": "Incorrect email or password"}`, http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"access_token": "issued-token", "token_type": "bearer"})
	})

	setup.RunTests(t, []TestScenario{
		{
			Name:    "success - email flag, password from stdin",
			Command: []string{"login", "--email", "dev@example.com"},
			Stdin:   "hunter2\n",
			Handler: loginHandler,
			Expected: TestExpectation{
				Stdout: fmt.Sprintf("Password: %s Signed in as dev@example.com\n", terminal.SuccessSymbol),
			},
			Verify: func(t *testing.T, store *session.Store) {
				if !store.IsAuthenticated() {
					t.Error("expected the session to be authenticated after login")
				}
				if credential, _ := store.Credential(); credential != "issued-token" {
					t.Errorf("expected the issued credential to be stored, got %q", credential)
				}
			},
		},
		{
			Name:    "success - email prompted from stdin",
			Command: []string{"login"},
			Stdin:   "dev@example.com\nhunter2\n",
			Handler: loginHandler,
			Expected: TestExpectation{
				Stdout: fmt.Sprintf("Email: Password: %s Signed in as dev@example.com\n", terminal.SuccessSymbol),
			},
		},
		{
			Name:    "error - wrong password",
			Command: []string{"login", "--email", "dev@example.com"},
			Stdin:   "wrong\n",
			Handler: loginHandler,
			Expected: TestExpectation{
				Stdout: "Password: ",
				Error:  "invalid email or password",
			},
			Verify: func(t *testing.T, store *session.Store) {
				if store.IsAuthenticated() {
					t.Error("expected no session after a rejected login")
				}
			},
		},
	})
}

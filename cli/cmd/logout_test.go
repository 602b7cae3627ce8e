package cmd

import (
	"fmt"
	"testing"

	"github.com/ascentlabs/ascent/cli/pkg/terminal"
	"github.com/ascentlabs/ascent/session"
)

func TestLogout(t *testing.T) {
	setup := &TestSetup{}

	setup.RunTests(t, []TestScenario{
		{
			Name:       "success - clears the stored credential",
			Command:    []string{"logout"},
			Credential: "stored-token",
			Expected: TestExpectation{
				Stdout: fmt.Sprintf("%s Signed out\n", terminal.SuccessSymbol),
			},
			Verify: func(t *testing.T, store *session.Store) {
				if store.IsAuthenticated() {
					t.Error("expected the session to be cleared")
				}
			},
		},
		{
			Name:    "success - logging out while logged out is fine",
			Command: []string{"logout"},
			Expected: TestExpectation{
				Stdout: fmt.Sprintf("%s Signed out\n", terminal.SuccessSymbol),
			},
		},
	})
}

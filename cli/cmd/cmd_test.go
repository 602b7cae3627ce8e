package cmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/ascentlabs/ascent/client"
	"github.com/ascentlabs/ascent/session"
	"github.com/ascentlabs/ascent/shared/keyring"
)

type testUserInfo struct{}

func (t *testUserInfo) UserID() (string, error)          { return "1000", nil }
func (t *testUserInfo) HomeDir() (string, error)         { return "/home/dev", nil }
func (t *testUserInfo) AscentConfigDir() (string, error) { return "/home/dev/.config/ascent", nil }
func (t *testUserInfo) AscentDataDir() (string, error) {
	return "/home/dev/.local/share/ascent", nil
}
func (t *testUserInfo) AscentLogDir() (string, error) {
	return "/home/dev/.local/state/ascent", nil
}

type TestSetup struct {
	CmpOptions []cmp.Option
}

type TestScenario struct {
	Name            string
	Command         []string
	Stdin           string
	Credential      string
	Handler         http.Handler
	SetupFileSystem func(fs *afero.Afero)
	SetupEnv        map[string]string
	Expected        TestExpectation
	Verify          func(t *testing.T, store *session.Store)
}

type TestExpectation struct {
	Stdout string
	Error  string
}

func (s *TestSetup) RunTests(t *testing.T, scenarios []TestScenario) {
	if len(scenarios) == 0 {
		t.Fatalf("no scenarios provided")
	}

	for _, scenario := range scenarios {
		t.Run(scenario.Name, func(t *testing.T) {
			endpoint := client.DefaultBaseURL
			if scenario.Handler != nil {
				server := httptest.NewServer(scenario.Handler)
				defer server.Close()
				endpoint = server.URL
			}

			secrets := keyring.NewMemoryProvider()
			if scenario.Credential != "" {
				if err := secrets.Set(session.CredentialKey, scenario.Credential); err != nil {
					t.Fatalf("failed to seed keyring: %v", err)
				}
			}
			sessionStore := session.Open(secrets)

			fs := &afero.Afero{Fs: afero.NewMemMapFs()}
			if scenario.SetupFileSystem != nil {
				scenario.SetupFileSystem(fs)
			}

			for key, value := range scenario.SetupEnv {
				t.Setenv(key, value)
			}

			testCmd := NewRootCmd()
			testCmd.SilenceUsage = true
			testCmd.SilenceErrors = true

			var stdin bytes.Buffer
			if scenario.Stdin != "" {
				stdin.WriteString(scenario.Stdin)
				testCmd.SetIn(&stdin)
			}

			var stdout bytes.Buffer
			testCmd.SetOut(&stdout)
			testCmd.SetErr(&stdout)

			ctx := context.Background()
			ctx = context.WithValue(ctx, ContextKeyFileSystem, fs)
			ctx = context.WithValue(ctx, ContextKeyUserInfo, &testUserInfo{})
			ctx = context.WithValue(ctx, ContextKeySessionStore, sessionStore)
			ctx = context.WithValue(ctx, ContextKeyAPIClient, client.NewClient(endpoint, sessionStore))
			ctx = context.WithValue(ctx, ContextKeyDisableFileLogs, true)

			testCmd.SetArgs(scenario.Command)

			var actual TestExpectation
			err := testCmd.ExecuteContext(ctx)
			if err != nil {
				actual.Error = err.Error()
			}
			actual.Stdout = stdout.String()

			if diff := cmp.Diff(scenario.Expected, actual, s.CmpOptions...); diff != "" {
				t.Errorf("%s mismatch (-want +got):\n%s", scenario.Name, diff)
			}

			if scenario.Verify != nil {
				scenario.Verify(t, sessionStore)
			}
		})
	}
}

package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
)

type stubUserInfo struct {
	configDir string
}

func (s *stubUserInfo) UserID() (string, error)          { return "1000", nil }
func (s *stubUserInfo) HomeDir() (string, error)         { return "/home/dev", nil }
func (s *stubUserInfo) AscentConfigDir() (string, error) { return s.configDir, nil }
func (s *stubUserInfo) AscentDataDir() (string, error)   { return "/home/dev/.local/share/ascent", nil }
func (s *stubUserInfo) AscentLogDir() (string, error)    { return "/home/dev/.local/state/ascent", nil }

func newTestStore() *Store {
	fs := &afero.Afero{Fs: afero.NewMemMapFs()}
	return NewStore(fs, &stubUserInfo{configDir: "/home/dev/.config/ascent"})
}

func TestLoadWithoutConfigFile(t *testing.T) {
	store := newTestStore()

	config, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if diff := cmp.Diff(&Config{}, config); diff != "" {
		t.Errorf("expected an empty config (-want +got):\n%s", diff)
	}
}

func TestSaveThenLoad(t *testing.T) {
	store := newTestStore()

	saved := &Config{
		APIURL:         "https://ascent.example.com/api/v1",
		DisableKeyring: true,
	}
	if err := store.Save(saved); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if diff := cmp.Diff(saved, loaded); diff != "" {
		t.Errorf("config round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveAPIURLPrecedence(t *testing.T) {
	config := &Config{APIURL: "https://from-file.example.com"}

	// Config file only.
	if got := config.ResolveAPIURL(""); got != "https://from-file.example.com" {
		t.Errorf("expected the file value, got %q", got)
	}

	// Environment beats the file.
	t.Setenv(EnvAPIURL, "https://from-env.example.com")
	if got := config.ResolveAPIURL(""); got != "https://from-env.example.com" {
		t.Errorf("expected the environment value, got %q", got)
	}

	// Flag beats both.
	if got := config.ResolveAPIURL("https://from-flag.example.com"); got != "https://from-flag.example.com" {
		t.Errorf("expected the flag value, got %q", got)
	}
}

func TestResolveAPIURLEmpty(t *testing.T) {
	config := &Config{}

	if got := config.ResolveAPIURL(""); got != "" {
		t.Errorf("expected empty so the client default applies, got %q", got)
	}
}

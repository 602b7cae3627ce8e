package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/ascentlabs/ascent/shared"
)

const (
	configFileName = "config.yaml"

	// EnvAPIURL overrides the configured endpoint.
	EnvAPIURL = "ASCENT_API_URL"
)

// Config is the on-disk client configuration. The credential itself never
// lives here; it belongs to the keyring.
type Config struct {
	// APIURL is the base URL of the career-mentor service.
	APIURL string `yaml:"api_url,omitempty"`

	// DisableKeyring falls back to in-process credential storage for
	// systems without a secret service. Sessions then last one invocation.
	DisableKeyring bool `yaml:"disable_keyring,omitempty"`
}

type Store struct {
	fs       *afero.Afero
	userInfo shared.UserInfo
}

func NewStore(fs *afero.Afero, userInfo shared.UserInfo) *Store {
	return &Store{fs: fs, userInfo: userInfo}
}

// Load reads the config file, returning an empty config when none exists.
func (s *Store) Load() (*Config, error) {
	configDir, err := s.userInfo.AscentConfigDir()
	if err != nil {
		return nil, err
	}

	configFile := filepath.Join(configDir, configFileName)
	exists, err := s.fs.Exists(configFile)
	if err != nil {
		return nil, err
	}
	if !exists {
		return &Config{}, nil
	}

	content, err := s.fs.ReadFile(configFile)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(content, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

func (s *Store) Save(config *Config) error {
	configDir, err := s.userInfo.AscentConfigDir()
	if err != nil {
		return err
	}

	content, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return s.fs.WriteFile(filepath.Join(configDir, configFileName), content, 0600)
}

// ResolveAPIURL applies the precedence flag > environment > config file.
// An empty result means the client default applies.
func (c *Config) ResolveAPIURL(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(EnvAPIURL); envValue != "" {
		return envValue
	}
	return c.APIURL
}

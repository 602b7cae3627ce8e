package shared

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
	"github.com/spf13/afero"
)

type UserInfo interface {
	UserID() (string, error)
	HomeDir() (string, error)
	AscentConfigDir() (string, error)
	AscentDataDir() (string, error)
	AscentLogDir() (string, error)
}

type DefaultUserInfo struct {
	fs *afero.Afero
}

func NewDefaultUserInfo(fs *afero.Afero) *DefaultUserInfo {
	return &DefaultUserInfo{fs: fs}
}

func (u *DefaultUserInfo) UserID() (string, error) {
	user, err := user.Current()
	if err != nil {
		return "", err
	}
	return user.Uid, nil
}

func (u *DefaultUserInfo) HomeDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return homeDir, nil
}

func (u *DefaultUserInfo) AscentConfigDir() (string, error) {
	configDir := filepath.Join(xdg.ConfigHome, "ascent")
	if err := u.fs.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return configDir, nil
}

func (u *DefaultUserInfo) AscentDataDir() (string, error) {
	dataDir := filepath.Join(xdg.DataHome, "ascent")
	if err := u.fs.MkdirAll(dataDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return dataDir, nil
}

func (u *DefaultUserInfo) AscentLogDir() (string, error) {
	var logDir string
	switch runtime.GOOS {
	case "darwin":
		homeDir, err := u.HomeDir()
		if err != nil {
			return "", err
		}
		logDir = filepath.Join(homeDir, "Library", "Logs", "ascent")
	default:
		logDir = filepath.Join(xdg.StateHome, "ascent")
	}

	if err := u.fs.MkdirAll(logDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}
	return logDir, nil
}

var _ UserInfo = (*DefaultUserInfo)(nil)

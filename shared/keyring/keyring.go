package keyring

import (
	"fmt"
	"sync"

	"github.com/zalando/go-keyring"
)

const ServiceName = "ascent"

type ErrSecretNotFound struct {
	Key string
	Err error
}

func (e *ErrSecretNotFound) Error() string {
	return fmt.Sprintf("secret %q not found: %s", e.Key, e.Err)
}

func (e *ErrSecretNotFound) Is(target error) bool {
	_, ok := target.(*ErrSecretNotFound)
	return ok
}

func (e *ErrSecretNotFound) Unwrap() error {
	return e.Err
}

type ErrSecretTooLarge struct {
	Key string
	Err error
}

func (e *ErrSecretTooLarge) Error() string {
	return fmt.Sprintf("secret %q is too large: %s", e.Key, e.Err)
}

func (e *ErrSecretTooLarge) Is(target error) bool {
	_, ok := target.(*ErrSecretTooLarge)
	return ok
}

func (e *ErrSecretTooLarge) Unwrap() error {
	return e.Err
}

type Provider interface {
	Get(key string) (string, error)
	Set(key string, value string) error
	Delete(key string) error
}

type KeyringProvider struct {
	service string
}

func NewKeyringProvider() *KeyringProvider {
	return &KeyringProvider{
		service: ServiceName,
	}
}

func (k *KeyringProvider) Get(key string) (string, error) {
	secret, err := keyring.Get(k.service, key)
	if err != nil {
		return "", toError(key, err)
	}
	return secret, nil
}

func (k *KeyringProvider) Set(key string, value string) error {
	err := keyring.Set(k.service, key, value)
	if err != nil {
		return toError(key, err)
	}
	return nil
}

func (k *KeyringProvider) Delete(key string) error {
	err := keyring.Delete(k.service, key)
	if err != nil {
		return toError(key, err)
	}
	return nil
}

func toError(key string, err error) error {
	if err == keyring.ErrNotFound {
		return &ErrSecretNotFound{Key: key, Err: err}
	}

	if err == keyring.ErrSetDataTooBig {
		return &ErrSecretTooLarge{Key: key, Err: err}
	}

	return err
}

var _ Provider = (*KeyringProvider)(nil)

// MemoryProvider keeps secrets in process memory. Used in tests and on
// systems without a usable secret service.
type MemoryProvider struct {
	mu      sync.RWMutex
	secrets map[string]string
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		secrets: make(map[string]string),
	}
}

func (m *MemoryProvider) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	secret, ok := m.secrets[key]
	if !ok {
		return "", &ErrSecretNotFound{Key: key, Err: keyring.ErrNotFound}
	}
	return secret, nil
}

func (m *MemoryProvider) Set(key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.secrets[key] = value
	return nil
}

func (m *MemoryProvider) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.secrets[key]; !ok {
		return &ErrSecretNotFound{Key: key, Err: keyring.ErrNotFound}
	}
	delete(m.secrets, key)
	return nil
}

var _ Provider = (*MemoryProvider)(nil)

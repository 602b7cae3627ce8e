// Package session is the single source of truth for the authenticated
// session. A session is nothing more than the presence of an opaque bearer
// credential; everything else (guards, header injection) derives from it.
package session

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/ascentlabs/ascent/shared/keyring"
)

// CredentialKey is the single keyring entry holding the bearer credential.
// Absence of the entry means unauthenticated.
const CredentialKey = "credential"

// Store holds the credential in memory and mirrors it to the keyring. It is
// mutated from three call sites (login, logout, 401 teardown); all three
// write unconditionally, so last writer wins and no cross-site coordination
// is needed beyond the internal mutex.
type Store struct {
	mu         sync.RWMutex
	credential string
	secrets    keyring.Provider
}

// Open reads any persisted credential synchronously so that the very first
// authentication check after startup already sees the durable state. A
// missing entry is the normal logged-out case; any other keyring failure is
// logged and treated as logged out rather than blocking startup.
func Open(secrets keyring.Provider) *Store {
	store := &Store{secrets: secrets}

	credential, err := secrets.Get(CredentialKey)
	if err != nil {
		if !errors.Is(err, &keyring.ErrSecretNotFound{}) {
			slog.Warn("failed to read credential from keyring", "error", err)
		}
		return store
	}

	store.credential = credential
	return store
}

// Credential returns the current credential and whether one is present.
func (s *Store) Credential() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.credential, s.credential != ""
}

// IsAuthenticated is derived purely from credential presence.
func (s *Store) IsAuthenticated() bool {
	_, ok := s.Credential()
	return ok
}

// Set persists a freshly issued credential to the keyring and memory. Memory
// is only updated once the durable write succeeded, so a keyring failure
// leaves the session state untouched.
func (s *Store) Set(credential string) error {
	if err := s.secrets.Set(CredentialKey, credential); err != nil {
		return err
	}

	s.mu.Lock()
	s.credential = credential
	s.mu.Unlock()
	return nil
}

// Clear removes the credential from the keyring and memory. It is idempotent
// and never fails: clearing an already-cleared session is a no-op, and any
// other keyring error is logged but does not keep the session alive. This is
// what makes the 401 teardown safe to fire from concurrent requests.
func (s *Store) Clear() {
	if err := s.secrets.Delete(CredentialKey); err != nil && !errors.Is(err, &keyring.ErrSecretNotFound{}) {
		slog.Warn("failed to delete credential from keyring", "error", err)
	}

	s.mu.Lock()
	s.credential = ""
	s.mu.Unlock()
}

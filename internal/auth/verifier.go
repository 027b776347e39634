package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
)

// Credential is an administrator username/password pair.
type Credential struct {
	Username string
	Password string
}

// CredentialStore loads the provisioned administrator credential.
type CredentialStore interface {
	AdminCredential(ctx context.Context) (Credential, error)
}

// Verifier checks submitted credentials against the stored administrator
// record. All failure modes collapse into ErrInvalidCredentials so callers
// cannot distinguish a wrong username from a wrong password.
type Verifier struct {
	store CredentialStore
}

// NewVerifier constructs a Verifier backed by the given store.
func NewVerifier(store CredentialStore) *Verifier {
	return &Verifier{store: store}
}

// Verify returns nil when the pair matches the stored credential.
func (v *Verifier) Verify(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return ErrInvalidCredentials
	}

	cred, err := v.store.AdminCredential(ctx)
	if err != nil {
		if errors.Is(err, ErrCredentialNotFound) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("load admin credential: %w", err)
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(cred.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(cred.Password)) == 1
	if !userOK || !passOK {
		return ErrInvalidCredentials
	}
	return nil
}

// StaticCredentials is a CredentialStore holding a single in-memory pair.
// Used when the portal runs without a database.
type StaticCredentials struct {
	Credential Credential
}

// AdminCredential implements CredentialStore.
func (s StaticCredentials) AdminCredential(context.Context) (Credential, error) {
	if s.Credential.Username == "" {
		return Credential{}, ErrCredentialNotFound
	}
	return s.Credential, nil
}

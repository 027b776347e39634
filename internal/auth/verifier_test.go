package auth

import (
	"context"
	"errors"
	"testing"
)

func TestVerifierMatch(t *testing.T) {
	v := NewVerifier(StaticCredentials{Credential: Credential{Username: "admin", Password: "secret"}})
	if err := v.Verify(context.Background(), "admin", "secret"); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestVerifierRejects(t *testing.T) {
	v := NewVerifier(StaticCredentials{Credential: Credential{Username: "admin", Password: "secret"}})

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "admin", "nope"},
		{"wrong username", "root", "secret"},
		{"both wrong", "root", "nope"},
		{"empty username", "", "secret"},
		{"empty password", "admin", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Verify(context.Background(), tc.username, tc.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("Verify = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestVerifierMissingCredential(t *testing.T) {
	v := NewVerifier(StaticCredentials{})
	err := v.Verify(context.Background(), "admin", "secret")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Verify = %v, want ErrInvalidCredentials", err)
	}
}

type failingStore struct{ err error }

func (s failingStore) AdminCredential(context.Context) (Credential, error) {
	return Credential{}, s.err
}

func TestVerifierStoreFailure(t *testing.T) {
	storeErr := errors.New("connection refused")
	v := NewVerifier(failingStore{err: storeErr})
	err := v.Verify(context.Background(), "admin", "secret")
	if err == nil || errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Verify = %v, want wrapped store error", err)
	}
	if !errors.Is(err, storeErr) {
		t.Fatalf("Verify = %v, want to wrap %v", err, storeErr)
	}
}

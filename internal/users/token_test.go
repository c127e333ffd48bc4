package users_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mwhitfield/placard/internal/users"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens := users.NewTokens("test-secret", time.Hour)
	id := uuid.New()

	signed, err := tokens.Issue(id)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if signed == "" {
		t.Fatal("issued token is empty")
	}

	got, err := tokens.Verify(signed)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if got != id {
		t.Errorf("subject = %s, want %s", got, id)
	}
}

func TestTokenExpired(t *testing.T) {
	tokens := users.NewTokens("test-secret", -time.Minute)

	signed, err := tokens.Issue(uuid.New())
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := tokens.Verify(signed); !errors.Is(err, users.ErrUnauthorized) {
		t.Errorf("verify expired token: got %v, want ErrUnauthorized", err)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	signer := users.NewTokens("secret-a", time.Hour)
	verifier := users.NewTokens("secret-b", time.Hour)

	signed, err := signer.Issue(uuid.New())
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := verifier.Verify(signed); !errors.Is(err, users.ErrUnauthorized) {
		t.Errorf("verify with wrong secret: got %v, want ErrUnauthorized", err)
	}
}

func TestTokenGarbage(t *testing.T) {
	tokens := users.NewTokens("test-secret", time.Hour)

	if _, err := tokens.Verify("not.a.token"); !errors.Is(err, users.ErrUnauthorized) {
		t.Errorf("verify garbage: got %v, want ErrUnauthorized", err)
	}
}

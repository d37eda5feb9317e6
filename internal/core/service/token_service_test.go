package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fieldserve/jobs-system/internal/core/domain"
)

func TestTokenService_IssueValidate_Roundtrip(t *testing.T) {
	svc := NewTokenService("secret", time.Hour, 7*24*time.Hour)

	pair, err := svc.Issue("user_1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", pair)
	}

	for _, token := range []string{pair.AccessToken, pair.RefreshToken} {
		subject, err := svc.Validate(token)
		if err != nil {
			t.Fatalf("validate: %v", err)
		}
		if subject != "user_1" {
			t.Fatalf("expected subject user_1, got %s", subject)
		}
	}
}

func TestTokenService_Validate_TamperedSignature(t *testing.T) {
	svc := NewTokenService("secret", time.Hour, 7*24*time.Hour)

	pair, err := svc.Issue("user_1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Flip one byte of the signature segment.
	raw := []byte(pair.AccessToken)
	raw[len(raw)-1] ^= 0x01

	if _, err := svc.Validate(string(raw)); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestTokenService_Validate_WrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour, time.Hour)
	verifier := NewTokenService("secret-b", time.Hour, time.Hour)

	pair, err := issuer.Issue("user_1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Validate(pair.AccessToken); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestTokenService_Validate_Garbage(t *testing.T) {
	svc := NewTokenService("secret", time.Hour, time.Hour)
	if _, err := svc.Validate("not-a-token"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestTokenService_Validate_MissingSubject(t *testing.T) {
	svc := NewTokenService("secret", time.Hour, time.Hour)

	// Valid signature, no subject claim.
	claims := jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := svc.Validate(token); !errors.Is(err, domain.ErrMalformedToken) {
		t.Fatalf("expected ErrMalformedToken, got %v", err)
	}
}

func TestTokenService_RefreshOutlivesAccess(t *testing.T) {
	svc := NewTokenService("secret", time.Millisecond, time.Hour)

	pair, err := svc.Issue("user_1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	if _, err := svc.Validate(pair.AccessToken); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected expired access token to fail, got %v", err)
	}
	if subject, err := svc.Validate(pair.RefreshToken); err != nil || subject != "user_1" {
		t.Fatalf("refresh token should still validate: subject=%s err=%v", subject, err)
	}
}

func TestTokenService_ExpiredRefreshFails(t *testing.T) {
	svc := NewTokenService("secret", time.Millisecond, time.Millisecond)

	pair, err := svc.Issue("user_1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	if _, err := svc.Validate(pair.RefreshToken); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected expired refresh token to fail, got %v", err)
	}
}

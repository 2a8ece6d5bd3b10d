package service

import (
	"errors"
	"testing"
	"time"

	"github.com/kzkiosk/kiosk-control/internal/core/domain"
)

func TestUITokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewUITokenIssuer("test-secret")

	token, err := issuer.Issue("13540876", time.Now(), 15*time.Minute)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	id, err := issuer.Verify(token)
	if err != nil || id != "13540876" {
		t.Fatalf("expected master id back, got %q, %v", id, err)
	}
}

func TestUITokenIssuer_Rejects(t *testing.T) {
	issuer := NewUITokenIssuer("test-secret")

	expired, _ := issuer.Issue("13540876", time.Now().Add(-2*time.Hour), time.Minute)
	foreign, _ := NewUITokenIssuer("other-secret").Issue("13540876", time.Now(), time.Hour)
	anonymous, _ := issuer.Issue("", time.Now(), time.Hour)

	for name, token := range map[string]string{
		"expired":   expired,
		"foreign":   foreign,
		"no master": anonymous,
		"malformed": "not-a-jwt",
		"empty":     "",
	} {
		if _, err := issuer.Verify(token); !errors.Is(err, domain.ErrStaleToken) {
			t.Errorf("%s: expected ErrStaleToken, got %v", name, err)
		}
	}
}

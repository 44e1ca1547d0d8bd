package utils

import (
	"errors"
	"testing"
	"time"
)

func TestNewSessionID(t *testing.T) {
	a, err := NewSessionID()
	if err != nil {
		t.Fatalf("NewSessionID: %v", err)
	}
	if len(a) != 64 {
		t.Errorf("len = %d, want 64", len(a))
	}
	b, err := NewSessionID()
	if err != nil {
		t.Fatalf("NewSessionID: %v", err)
	}
	if a == b {
		t.Error("two session IDs collided")
	}
}

func TestSignAndParseSessionID(t *testing.T) {
	const secret = "test-secret"

	sid, err := NewSessionID()
	if err != nil {
		t.Fatalf("NewSessionID: %v", err)
	}
	tok, err := SignSessionID(secret, sid, time.Hour)
	if err != nil {
		t.Fatalf("SignSessionID: %v", err)
	}

	got, err := ParseSessionID(secret, tok)
	if err != nil {
		t.Fatalf("ParseSessionID: %v", err)
	}
	if got != sid {
		t.Errorf("parsed sid = %q, want %q", got, sid)
	}

	t.Run("wrong secret", func(t *testing.T) {
		if _, err := ParseSessionID("other-secret", tok); !errors.Is(err, ErrInvalidSessionToken) {
			t.Errorf("err = %v, want ErrInvalidSessionToken", err)
		}
	})

	t.Run("tampered token", func(t *testing.T) {
		if _, err := ParseSessionID(secret, tok+"x"); !errors.Is(err, ErrInvalidSessionToken) {
			t.Errorf("err = %v, want ErrInvalidSessionToken", err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		expired, err := SignSessionID(secret, sid, -time.Minute)
		if err != nil {
			t.Fatalf("SignSessionID: %v", err)
		}
		if _, err := ParseSessionID(secret, expired); !errors.Is(err, ErrInvalidSessionToken) {
			t.Errorf("err = %v, want ErrInvalidSessionToken", err)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := ParseSessionID(secret, "definitely-not-a-jwt"); !errors.Is(err, ErrInvalidSessionToken) {
			t.Errorf("err = %v, want ErrInvalidSessionToken", err)
		}
	})
}

package auth

import (
	"errors"
	"testing"
	"time"
)

func testCodec(ttl time.Duration) *SessionCodec {
	return NewSessionCodec(SessionConfig{SecretKey: "test-secret", TTL: ttl, Issuer: "studentportal"})
}

func TestSessionRoundTrip(t *testing.T) {
	codec := testCodec(time.Hour)
	in := User{
		ID:                "42",
		Name:              "Rahul Sharma",
		Email:             "rahul@example.com",
		ApplicationNumber: "ADM-2024-0042",
		Username:          "rahul",
	}

	value, err := codec.Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out, err := codec.Decode(value)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if *out != in {
		t.Fatalf("got %+v, want %+v", *out, in)
	}
}

func TestSessionRejectsForeignSignature(t *testing.T) {
	value, err := NewSessionCodec(SessionConfig{SecretKey: "other"}).Encode(User{ID: "1"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := testCodec(time.Hour).Decode(value); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

func TestSessionExpired(t *testing.T) {
	value, err := testCodec(-time.Minute).Encode(User{ID: "1"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	// negative TTL leaves no expiry claim
	if _, err := testCodec(time.Hour).Decode(value); err != nil {
		t.Fatalf("Decode: %v", err)
	}

	codec := testCodec(time.Nanosecond)
	value, err = codec.Encode(User{ID: "1"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	time.Sleep(1100 * time.Millisecond)
	if _, err := codec.Decode(value); !errors.Is(err, ErrExpiredSession) {
		t.Fatalf("expected ErrExpiredSession, got %v", err)
	}
}

func TestSessionEmptyValue(t *testing.T) {
	if _, err := testCodec(time.Hour).Decode(""); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPassword(hash, "secret1") {
		t.Fatal("expected password to match")
	}
	if CheckPassword(hash, "secret2") {
		t.Fatal("expected mismatch")
	}
}

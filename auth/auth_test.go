// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "correct horse" || !strings.HasPrefix(hash, "$2") {
		t.Errorf("HashPassword() did not return a bcrypt hash: %q", hash)
	}

	if err := CheckPassword(hash, "correct horse"); err != nil {
		t.Errorf("CheckPassword() rejected the right password: %v", err)
	}
	if err := CheckPassword(hash, "wrong horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("CheckPassword() error = %v, want ErrInvalidCredentials", err)
	}

	// Same password, different salt
	hash2, _ := HashPassword("correct horse")
	if hash == hash2 {
		t.Error("HashPassword() produced identical hashes")
	}
}

func TestHashPasswordTooShort(t *testing.T) {
	if _, err := HashPassword("short"); !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("HashPassword() error = %v, want ErrPasswordTooShort", err)
	}
}

func TestIssueAndParseToken(t *testing.T) {
	now := time.Now()
	token, err := IssueToken("user-1", "a@example.com", "secret", time.Hour, now)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	claims, err := ParseToken(token, "secret")
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.Subject != "user-1" {
		t.Errorf("Subject = %q, want user-1", claims.Subject)
	}
	if claims.Email != "a@example.com" {
		t.Errorf("Email = %q, want a@example.com", claims.Email)
	}
}

func TestParseTokenRejects(t *testing.T) {
	now := time.Now()
	valid, _ := IssueToken("user-1", "", "secret", time.Hour, now)
	expired, _ := IssueToken("user-1", "", "secret", time.Minute, now.Add(-time.Hour))
	noSubject, _ := IssueToken("", "", "secret", time.Hour, now)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"}})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{"wrong secret", valid, "other"},
		{"expired", expired, "secret"},
		{"missing subject", noSubject, "secret"},
		{"alg none", unsigned, "secret"},
		{"garbage", "not.a.token", "secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseToken(tt.token, tt.secret); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("ParseToken() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"Bearer ", "", false},
		{"Basic abc", "", false},
		{"abc", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := BearerToken(tt.header)
		if got != tt.want || ok != tt.ok {
			t.Errorf("BearerToken(%q) = %q, %v; want %q, %v", tt.header, got, ok, tt.want, tt.ok)
		}
	}
}

func TestUserIDContext(t *testing.T) {
	ctx := context.Background()
	if got := UserID(ctx); got != "" {
		t.Errorf("UserID() on empty context = %q", got)
	}
	if got := UserID(WithUserID(ctx, "user-9")); got != "user-9" {
		t.Errorf("UserID() = %q, want user-9", got)
	}
}

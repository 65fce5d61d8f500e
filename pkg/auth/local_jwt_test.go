package auth

import (
	"strings"
	"testing"
	"time"
)

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		want      string
		expectErr bool
	}{
		{"valid bearer", "Bearer abc123", "abc123", false},
		{"lowercase scheme", "bearer abc123", "abc123", false},
		{"empty header", "", "", true},
		{"missing token", "Bearer ", "", true},
		{"wrong scheme", "Basic abc123", "", true},
		{"no scheme", "abc123", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractToken(tt.header)
			if tt.expectErr {
				if err == nil {
					t.Errorf("expected error for %q, got token %q", tt.header, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ExtractToken(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}

func TestTokenRoundTrip(t *testing.T) {
	jwtAuth, err := NewLocalJWTAuth("test-secret-key", 15*time.Minute, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("failed to create auth: %v", err)
	}

	access, refresh, err := jwtAuth.GenerateTokens("user-1", "a@b.com", "user")
	if err != nil {
		t.Fatalf("failed to generate tokens: %v", err)
	}

	user, err := jwtAuth.VerifyAccessToken(access)
	if err != nil {
		t.Fatalf("failed to verify access token: %v", err)
	}
	if user.ID != "user-1" || user.Email != "a@b.com" || user.Role != "user" {
		t.Errorf("unexpected user from access token: %+v", user)
	}

	claims, err := jwtAuth.VerifyRefreshToken(refresh)
	if err != nil {
		t.Fatalf("failed to verify refresh token: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("refresh token user = %q, want user-1", claims.UserID)
	}
	if claims.TokenID == "" {
		t.Error("refresh token missing jti")
	}

	// An access token must not pass as a refresh token
	if _, err := jwtAuth.VerifyRefreshToken(access); err == nil {
		t.Error("access token accepted as refresh token")
	}
}

func TestVerifyAccessTokenRejectsWrongKey(t *testing.T) {
	issuer, _ := NewLocalJWTAuth("secret-one", 0, 0)
	verifier, _ := NewLocalJWTAuth("secret-two", 0, 0)

	access, _, err := issuer.GenerateTokens("user-1", "a@b.com", "user")
	if err != nil {
		t.Fatalf("failed to generate tokens: %v", err)
	}

	if _, err := verifier.VerifyAccessToken(access); err == nil {
		t.Error("token signed with a different key was accepted")
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("Sup3rSecret")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if !strings.HasPrefix(hash, "argon2id$") {
		t.Errorf("unexpected hash encoding: %q", hash)
	}

	ok, err := VerifyPassword(hash, "Sup3rSecret")
	if err != nil {
		t.Fatalf("failed to verify password: %v", err)
	}
	if !ok {
		t.Error("correct password rejected")
	}

	ok, err = VerifyPassword(hash, "WrongPassword1")
	if err != nil {
		t.Fatalf("failed to verify password: %v", err)
	}
	if ok {
		t.Error("wrong password accepted")
	}
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	h1, err := HashPassword("Sup3rSecret")
	if err != nil {
		t.Fatal(err)
	}
	h2, err := HashPassword("Sup3rSecret")
	if err != nil {
		t.Fatal(err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password are identical; salt is not random")
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password  string
		expectErr bool
	}{
		{"Sup3rSecret", false},
		{"short1A", true},
		{"alllowercase1", true},
		{"ALLUPPERCASE1", true},
		{"NoNumbersHere", true},
	}

	for _, tt := range tests {
		err := ValidatePassword(tt.password)
		if tt.expectErr && err == nil {
			t.Errorf("ValidatePassword(%q) = nil, want error", tt.password)
		}
		if !tt.expectErr && err != nil {
			t.Errorf("ValidatePassword(%q) = %v, want nil", tt.password, err)
		}
	}
}

package utils

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestFoldTurkish(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"27 Aralık  Cumartesi", "27 aralık cumartesi"},
		{"  İSTANBUL\tKIŞ ", "istanbul kış"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := FoldTurkish(tt.in); got != tt.want {
			t.Errorf("FoldTurkish(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestToken_RoundTrip(t *testing.T) {
	id := uuid.New()
	tok, err := GenerateToken("secret", id, "a.b@std.yildiz.edu.tr", "access", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := ValidateAndParseToken(tok, "secret")
	if err != nil {
		t.Fatalf("ValidateAndParseToken() error = %v", err)
	}
	if claims.UserID != id {
		t.Fatalf("UserID = %v, want %v", claims.UserID, id)
	}
}

func TestToken_Rejections(t *testing.T) {
	id := uuid.New()
	expired, _ := GenerateToken("secret", id, "", "access", -time.Minute)
	good, _ := GenerateToken("secret", id, "", "access", time.Hour)

	if _, err := ValidateAndParseToken(expired, "secret"); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expired token error = %v, want ErrExpiredToken", err)
	}
	if _, err := ValidateAndParseToken(good, "other"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("wrong secret error = %v, want ErrInvalidToken", err)
	}
	if _, err := ValidateAndParseToken("", "secret"); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("empty token error = %v, want ErrMissingToken", err)
	}
}

func TestGetTokenFromHeader(t *testing.T) {
	if got := GetTokenFromHeader("Bearer abc.def"); got != "abc.def" {
		t.Fatalf("got %q", got)
	}
	if got := GetTokenFromHeader("Basic xyz"); got != "" {
		t.Fatalf("got %q, want empty", got)
	}
}

func TestGenerateConfirmationCode(t *testing.T) {
	code, err := GenerateConfirmationCode()
	if err != nil {
		t.Fatalf("GenerateConfirmationCode() error = %v", err)
	}
	if !strings.HasPrefix(code, "YA-") || len(code) != 11 {
		t.Fatalf("code = %q", code)
	}
	if strings.ContainsAny(code[3:], "01IOL") {
		t.Fatalf("code %q contains ambiguous characters", code)
	}
}

func TestInitials(t *testing.T) {
	tests := []struct {
		first, last, want string
	}{
		{"ayşe", "demir", "A. D."},
		{"ilker", "ışık", "İ. I."},
		{"Mehmet Ali", "Öz", "M. Ö."},
		{"", "Kaya", "K."},
	}
	for _, tt := range tests {
		if got := Initials(tt.first, tt.last); got != tt.want {
			t.Errorf("Initials(%q, %q) = %q, want %q", tt.first, tt.last, got, tt.want)
		}
	}
}

func TestHashToken(t *testing.T) {
	a, b := HashToken("abc"), HashToken("abd")
	if len(a) != 64 || a == b || a != HashToken("abc") {
		t.Fatalf("hashes = %s %s", a, b)
	}
	if strings.Contains(a, "abc") {
		t.Fatal("hash contains the token")
	}
}

func TestUserUUID(t *testing.T) {
	id := uuid.New()
	if got := UserUUID(id.String()); got != id {
		t.Errorf("UserUUID(uuid) = %s, want %s", got, id)
	}
	if got := UserUUID("  "); got != uuid.Nil {
		t.Errorf("blank = %s", got)
	}
	a, b := UserUUID("u-42"), UserUUID("u-42")
	if a == uuid.Nil || a != b || a == UserUUID("u-43") {
		t.Errorf("derived ids = %s %s", a, b)
	}
}

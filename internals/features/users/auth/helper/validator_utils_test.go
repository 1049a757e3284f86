package helper

import (
	"testing"
)

func TestValidateRegisterInput(t *testing.T) {
	// input lengkap dan benar
	if err := ValidateRegisterInput("budi_123", "budi@example.com", "rahasia-kuat", "kucing"); err != nil {
		t.Errorf("Expected valid input to pass, got %v", err)
	}

	cases := []struct {
		name           string
		userName       string
		email          string
		password       string
		securityAnswer string
	}{
		{"kosong semua", "", "", "", ""},
		{"user_name terlalu pendek", "ab", "budi@example.com", "rahasia-kuat", "kucing"},
		{"user_name berisi simbol", "budi!", "budi@example.com", "rahasia-kuat", "kucing"},
		{"email tidak valid", "budi_123", "bukan-email", "rahasia-kuat", "kucing"},
		{"password pendek", "budi_123", "budi@example.com", "1234567", "kucing"},
		{"security answer kosong", "budi_123", "budi@example.com", "rahasia-kuat", "  "},
	}

	for _, c := range cases {
		if err := ValidateRegisterInput(c.userName, c.email, c.password, c.securityAnswer); err == nil {
			t.Errorf("Expected %s to fail validation", c.name)
		}
	}
}

func TestValidateLoginInput(t *testing.T) {
	if err := ValidateLoginInput("budi@example.com", "rahasia"); err != nil {
		t.Errorf("Expected valid login input to pass, got %v", err)
	}
	if err := ValidateLoginInput("budi_123", "rahasia"); err != nil {
		t.Errorf("Expected user_name identifier to pass, got %v", err)
	}
	if err := ValidateLoginInput("  ", "rahasia"); err == nil {
		t.Errorf("Expected empty identifier to fail")
	}
	if err := ValidateLoginInput("budi_123", ""); err == nil {
		t.Errorf("Expected empty password to fail")
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "budi.s@example.com", "x+tag@mail.example.id"}
	for _, e := range valid {
		if !isValidEmail(e) {
			t.Errorf("Expected %q to be valid", e)
		}
	}

	invalid := []string{"", "budi", "budi@", "@example.com", "budi@example", "a b@c.co"}
	for _, e := range invalid {
		if isValidEmail(e) {
			t.Errorf("Expected %q to be invalid", e)
		}
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("rahasia-kuat")
	if err != nil {
		t.Fatalf("Expected hash to succeed, got %v", err)
	}
	if hash == "rahasia-kuat" {
		t.Errorf("Expected hash to differ from plaintext")
	}

	if !CheckPasswordHash("rahasia-kuat", hash) {
		t.Errorf("Expected correct password to match hash")
	}
	if CheckPasswordHash("salah", hash) {
		t.Errorf("Expected wrong password to not match hash")
	}
}

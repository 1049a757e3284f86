package model

import (
	"strings"
	"testing"
)

func validUser() *UserModel {
	return &UserModel{
		UserName: "budi_123",
		Email:    "budi@example.com",
		Password: "rahasia-kuat",
	}
}

func TestUserValidate(t *testing.T) {
	u := validUser()
	if err := u.Validate(); err != nil {
		t.Errorf("Expected valid user to pass, got %v", err)
	}

	// Validate mengisi role default
	if u.Role != "user" {
		t.Errorf("Expected default role %q, got %q", "user", u.Role)
	}
}

func TestUserValidateRejectsBadInput(t *testing.T) {
	// user_name terlalu pendek
	u := validUser()
	u.UserName = "ab"
	err := u.Validate()
	if err == nil {
		t.Fatalf("Expected short user_name to fail")
	}
	if !strings.Contains(err.Error(), "minimal 3") {
		t.Errorf("Expected message about minimum length, got %q", err.Error())
	}

	// email salah format
	u = validUser()
	u.Email = "bukan-email"
	err = u.Validate()
	if err == nil {
		t.Fatalf("Expected bad email to fail")
	}
	if !strings.Contains(err.Error(), "Format email tidak valid") {
		t.Errorf("Expected email format message, got %q", err.Error())
	}

	// password terlalu pendek
	u = validUser()
	u.Password = "1234567"
	if err := u.Validate(); err == nil {
		t.Errorf("Expected short password to fail")
	}

	// field wajib kosong
	u = validUser()
	u.UserName = ""
	err = u.Validate()
	if err == nil {
		t.Fatalf("Expected empty user_name to fail")
	}
	if !strings.Contains(err.Error(), "wajib diisi") {
		t.Errorf("Expected required message, got %q", err.Error())
	}
}

func TestUserSetDefaultValuesKeepsExistingRole(t *testing.T) {
	u := validUser()
	u.Role = "admin"
	u.SetDefaultValues()
	if u.Role != "admin" {
		t.Errorf("Expected role to stay %q, got %q", "admin", u.Role)
	}
}

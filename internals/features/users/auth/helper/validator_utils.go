package helper

import (
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// isAlphaNumeric memeriksa apakah string hanya berisi huruf, angka, dan underscore
func isAlphaNumeric(s string) bool {
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_') {
			return false
		}
	}
	return len(s) > 0
}

// isValidEmail memeriksa format email secara sederhana
func isValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidateRegisterInput memvalidasi input register sebelum masuk service
func ValidateRegisterInput(userName, email, password, securityAnswer string) error {
	userName = strings.TrimSpace(userName)
	email = strings.TrimSpace(email)

	if userName == "" || email == "" || password == "" {
		return errors.New("user_name, email, dan password wajib diisi")
	}
	if len(userName) < 3 || len(userName) > 50 {
		return errors.New("user_name harus 3-50 karakter")
	}
	if !isAlphaNumeric(userName) {
		return errors.New("user_name hanya boleh huruf, angka, dan underscore")
	}
	if !isValidEmail(email) {
		return errors.New("format email tidak valid")
	}
	if len(password) < 8 {
		return errors.New("password minimal 8 karakter")
	}
	if strings.TrimSpace(securityAnswer) == "" {
		return errors.New("security_answer wajib diisi")
	}
	return nil
}

// ValidateLoginInput memvalidasi input login
func ValidateLoginInput(identifier, password string) error {
	if strings.TrimSpace(identifier) == "" {
		return errors.New("email atau user_name wajib diisi")
	}
	if password == "" {
		return errors.New("password wajib diisi")
	}
	return nil
}

// ValidateResetPassword memvalidasi input reset password
func ValidateResetPassword(email, newPassword string) error {
	if !isValidEmail(strings.TrimSpace(email)) {
		return errors.New("format email tidak valid")
	}
	if len(newPassword) < 8 {
		return errors.New("password baru minimal 8 karakter")
	}
	return nil
}

// ValidateSecurityAnswerInput memvalidasi input cek security answer
func ValidateSecurityAnswerInput(email, answer string) error {
	if !isValidEmail(strings.TrimSpace(email)) {
		return errors.New("format email tidak valid")
	}
	if strings.TrimSpace(answer) == "" {
		return errors.New("security_answer wajib diisi")
	}
	return nil
}

// HashPassword membuat hash bcrypt dari password mentah
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPasswordHash membandingkan password mentah dengan hash bcrypt
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

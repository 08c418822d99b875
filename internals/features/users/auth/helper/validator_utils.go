package helpers

import (
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func isValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// ValidateRegisterInput: cek cepat sebelum validator struct jalan
func ValidateRegisterInput(username, email, password string) error {
	if strings.TrimSpace(username) == "" {
		return errors.New("Username wajib diisi")
	}
	if !isValidEmail(strings.TrimSpace(email)) {
		return errors.New("Format email tidak valid")
	}
	if len(password) < 8 {
		return errors.New("Password minimal 8 karakter")
	}
	return nil
}

func ValidateLoginInput(identifier, password string) error {
	if strings.TrimSpace(identifier) == "" {
		return errors.New("Identifier wajib diisi")
	}
	if password == "" {
		return errors.New("Password wajib diisi")
	}
	return nil
}

func ValidateResetPassword(email, newPassword string) error {
	if !isValidEmail(strings.TrimSpace(email)) {
		return errors.New("Format email tidak valid")
	}
	if len(newPassword) < 8 {
		return errors.New("Password baru minimal 8 karakter")
	}
	return nil
}

// =============================
// 🔐 Password hashing (bcrypt)
// =============================
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPasswordHash(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}

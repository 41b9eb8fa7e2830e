package util

import (
	"crypto/sha256"
	"encoding/base64"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// Passwords are pre-hashed with SHA-256 before bcrypt so inputs longer
// than bcrypt's 72-byte limit still verify.
func HashPassword(password string) (string, error) {
	salt := os.Getenv("PASSWORD_SALT")

	hasher := sha256.New()
	hasher.Write([]byte(password + salt))
	hashedInput := base64.StdEncoding.EncodeToString(hasher.Sum(nil))

	hash, err := bcrypt.GenerateFromPassword([]byte(hashedInput), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

func VerifyPassword(hashedPassword, password string) error {
	salt := os.Getenv("PASSWORD_SALT")

	hasher := sha256.New()
	hasher.Write([]byte(password + salt))
	hashedInput := base64.StdEncoding.EncodeToString(hasher.Sum(nil))

	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(hashedInput))
}

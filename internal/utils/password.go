package utils

import (
	"golang.org/x/crypto/bcrypt" // Password hashing
)

// bcrypt only reads the first 72 bytes of the input
const maxPasswordBytes = 72

// truncatePassword cuts the password down to the bcrypt input limit.
// Hashing and verification must truncate identically or long passwords
// would never verify against their own hash.
func truncatePassword(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}

// HashPassword hashes a password with bcrypt after truncating it to 72 bytes
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(truncatePassword(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err // Hashing failed
	}
	return string(hash), nil
}

// CheckPassword reports whether the password matches the stored hash.
// A malformed hash yields false, never an error or a panic.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), truncatePassword(password)) == nil
}

package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the work factor applied to stored actor credentials.
const bcryptCost = bcrypt.DefaultCost

// HashPassword hashes an actor's plaintext password for storage on the
// actors row.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(hash), err
}

// CheckPasswordHash reports whether password matches the stored actor hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

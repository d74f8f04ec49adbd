package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the cost the service has always used; raising it only
// affects newly created hashes.
const bcryptCost = 10

// HashPassword returns a salted bcrypt digest of the plaintext password.
// The salt is generated per call, so hashing the same password twice yields
// different digests.
func HashPassword(password []byte) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(password, bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored digest.
// A mismatch is not an error; the comparison is constant-time inside bcrypt.
func CheckPassword(password []byte, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), password) == nil
}

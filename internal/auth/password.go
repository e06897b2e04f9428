package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the work factor used when the existing account base was
// hashed; changing it would not invalidate old digests but keeps new ones
// comparable in cost.
const bcryptCost = 10

// HashPassword hashes a plaintext password with a fresh salt. Two calls with
// the same input never produce the same digest.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(b), err
}

// CheckPassword reports whether plaintext matches the stored digest.
// Malformed digests read as a mismatch, not an error.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

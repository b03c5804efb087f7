package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/devlink-network/devlink/internal/errors"
)

// HashPassword derives a digest from a raw password. The digest is the only
// form ever persisted.
func HashPassword(raw string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Internal("hash password", err)
	}
	return string(digest), nil
}

// CheckPassword reports whether raw matches the stored digest.
func CheckPassword(digest, raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(raw)) == nil
}

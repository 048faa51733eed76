package security

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"

	domuser "example.com/tienda-online/internal/domain/user"
)

// BcryptService compares submitted passwords against stored credentials.
// Entries that look like bcrypt hashes are verified as such; anything else
// is treated as a legacy plaintext entry and compared in constant time.
type BcryptService struct {
	cost int
}

func NewBcryptService(cost int) *BcryptService {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptService{cost: cost}
}

func (s *BcryptService) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *BcryptService) Compare(stored string, password string) error {
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password))
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(password)) != 1 {
		return domuser.ErrInvalidCredential
	}
	return nil
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") ||
		strings.HasPrefix(s, "$2b$") ||
		strings.HasPrefix(s, "$2y$")
}

package security

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domuser "example.com/tienda-online/internal/domain/user"
)

// StaticTokenService mirrors the legacy shared-secret scheme: every login is
// handed the same opaque value and checkout accepts only that value.
type StaticTokenService struct {
	secret string
}

func NewStaticTokenService(secret string) *StaticTokenService {
	return &StaticTokenService{secret: secret}
}

func (s *StaticTokenService) Issue(username string) (string, error) {
	return s.secret, nil
}

func (s *StaticTokenService) Verify(token string) error {
	if subtle.ConstantTimeCompare([]byte(token), []byte(s.secret)) != 1 {
		return domuser.ErrUnauthorized
	}
	return nil
}

// JWTService issues HS256-signed session tokens, the drop-in replacement for
// the static scheme once per-user sessions matter.
type JWTService struct {
	secret     []byte
	expiration time.Duration
}

func NewJWTService(secret string, expiration time.Duration) *JWTService {
	return &JWTService{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

func (s *JWTService) Issue(username string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *JWTService) Verify(tokenStr string) error {
	parsed, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		return domuser.ErrUnauthorized
	}
	return nil
}

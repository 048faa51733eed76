package auth

import (
	"context"
	"errors"
	"strings"

	"example.com/tienda-online/internal/domain/catalog"
	domuser "example.com/tienda-online/internal/domain/user"
)

// PasswordComparer verifies a submitted password against the stored secret.
type PasswordComparer interface {
	Compare(stored string, password string) error
}

// TokenService issues session tokens at login and verifies the token a
// checkout request presents.
type TokenService interface {
	Issue(username string) (string, error)
	Verify(token string) error
}

type Service struct {
	users   domuser.Repository
	checker PasswordComparer
	tokens  TokenService
	store   catalog.Store
}

func NewService(
	users domuser.Repository,
	checker PasswordComparer,
	tokens TokenService,
	store catalog.Store,
) *Service {
	return &Service{
		users:   users,
		checker: checker,
		tokens:  tokens,
		store:   store,
	}
}

type LoginInput struct {
	Username string
	Password string
}

// LoginResult carries the session token plus the full catalog so the client
// can seed its local product cache in the same round trip.
type LoginResult struct {
	Token   string
	Catalog *catalog.Catalog
}

func (s *Service) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, domuser.ErrInvalidCredential
	}

	cred, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domuser.ErrUsersUnavailable) {
			return nil, err
		}
		return nil, domuser.ErrUnauthorized
	}

	if err := s.checker.Compare(cred.Password, in.Password); err != nil {
		return nil, domuser.ErrUnauthorized
	}

	token, err := s.tokens.Issue(cred.Username)
	if err != nil {
		return nil, err
	}

	cat, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:   token,
		Catalog: cat,
	}, nil
}

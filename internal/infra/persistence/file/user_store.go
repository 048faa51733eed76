package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	domuser "example.com/tienda-online/internal/domain/user"
)

// UserStore reads credentials from a JSON array of {user, pass} entries.
// The document is re-read on every lookup, matching its role as a tiny
// editable flat file rather than a real user database.
type UserStore struct {
	path string
}

func NewUserStore(path string) *UserStore {
	return &UserStore{path: path}
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*domuser.Credential, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domuser.ErrUsersUnavailable
	}
	if err != nil {
		return nil, err
	}

	var creds []domuser.Credential
	if err := json.Unmarshal(raw, &creds); err != nil {
		return nil, fmt.Errorf("%w: %v", domuser.ErrUsersUnavailable, err)
	}

	for i := range creds {
		if creds[i].Username == username {
			return &creds[i], nil
		}
	}
	return nil, domuser.ErrUserNotFound
}

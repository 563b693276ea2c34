package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
)

const tokenFileName = "token.json"

// Store persists the single cached credential between runs. Get returns
// (nil, nil) when no credential has been saved yet.
type Store interface {
	Get() (*oauth2.Token, error)
	Put(t *oauth2.Token) error
}

type fileStore struct {
	path string
}

// NewFileStore keeps the token as a JSON file inside dir, creating the
// directory if needed. The file is only readable by the current user.
func NewFileStore(dir string) (Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("error creating token directory: %w", err)
	}
	return &fileStore{path: filepath.Join(dir, tokenFileName)}, nil
}

func (s *fileStore) Get() (*oauth2.Token, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("error reading token file: %w", err)
	}

	var t oauth2.Token
	if err := json.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("error parsing token file: %w", err)
	}
	return &t, nil
}

func (s *fileStore) Put(t *oauth2.Token) error {
	b, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("error encoding token: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o600); err != nil {
		return fmt.Errorf("error writing token file: %w", err)
	}
	return nil
}

// Package credstore persists the session token between runs. It is the only
// code that reads or writes the token; everything else asks it.
package credstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/photoshare/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/photoshare/internal/common"
)

// ErrTokenNotFound means no session token is stored, i.e. the user is not
// authenticated.
var ErrTokenNotFound = errors.New("session token not found")

// Store saves and loads the opaque session token.
type Store interface {
	Save(ctx context.Context, token string) error
	Load(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

// MetadataStore keeps the token in the metadata table under common.TokenKey.
// The value is stored as-is: no expiry, no encryption.
type MetadataStore struct {
	repo metadata.Repository
}

func NewMetadataStore(repo metadata.Repository) *MetadataStore {
	return &MetadataStore{repo: repo}
}

func (s *MetadataStore) Save(ctx context.Context, token string) error {
	if token == "" {
		return errors.New("refusing to store an empty token")
	}
	if err := s.repo.Set(ctx, common.TokenKey, []byte(token)); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (s *MetadataStore) Load(ctx context.Context) (string, error) {
	v, err := s.repo.Get(ctx, common.TokenKey)
	if errors.Is(err, metadata.ErrNotFound) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	if len(v) == 0 {
		return "", ErrTokenNotFound
	}
	return string(v), nil
}

// Clear removes the token. Clearing an empty store is not an error.
func (s *MetadataStore) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, common.TokenKey); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

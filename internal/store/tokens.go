package store

import (
	"context"
	"database/sql"
)

// TokenKey is the settings key holding the persisted access token.
const TokenKey = "access_token"

// TokenStore persists the single bearer token between runs.
type TokenStore struct {
	DB *sql.DB
}

// Load returns the persisted token, or "" if none is stored.
func (s *TokenStore) Load(ctx context.Context) (string, error) {
	token, _, err := GetSetting(ctx, s.DB, TokenKey)
	return token, err
}

// Save persists token, replacing any previous one.
func (s *TokenStore) Save(ctx context.Context, token string) error {
	return SetSetting(ctx, s.DB, TokenKey, token)
}

// Clear removes the persisted token.
func (s *TokenStore) Clear(ctx context.Context) error {
	return DeleteSetting(ctx, s.DB, TokenKey)
}

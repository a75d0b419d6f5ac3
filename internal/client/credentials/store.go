// Package credentials persists the single bearer token of the client.
//
// The token lives in the local metadata table under common.TokenMetadataKey.
// Nothing else is kept between runs: Set removes every other key in the same
// transaction, so the table never holds more than the token.
package credentials

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/warrantyreminder/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/warrantyreminder/internal/common"
	"github.com/dmitrijs2005/warrantyreminder/internal/dbx"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) repo(tx dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(tx)
}

// Token returns the stored token or "" when none is stored. Presence does
// not imply validity.
func (s *Store) Token(ctx context.Context) (string, error) {
	token, ok, err := s.repo(s.db).Get(ctx, common.TokenMetadataKey)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	if !ok {
		return "", nil
	}
	return token, nil
}

func (s *Store) Set(ctx context.Context, token string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)

		keys, err := repo.Keys(ctx)
		if err != nil {
			return err
		}
		for _, k := range keys {
			if k == common.TokenMetadataKey {
				continue
			}
			if err := repo.Delete(ctx, k); err != nil {
				return err
			}
		}

		if err := repo.Set(ctx, common.TokenMetadataKey, token); err != nil {
			return fmt.Errorf("store token: %w", err)
		}
		return nil
	})
}

// Clear removes the token. Clearing an empty store is not an error.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.repo(s.db).Delete(ctx, common.TokenMetadataKey); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

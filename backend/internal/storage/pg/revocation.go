package pg

import (
	"context"
	"fmt"
	"time"

	sharedpg "github.com/localizer/dashboard/shared/storage/pg"
)

func (s *Storage) RevokeToken(ctx context.Context, tokenID string, expiresAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
	INSERT INTO revoked_tokens (token_id, expires_at) VALUES ($1, $2)
	ON CONFLICT (token_id) DO NOTHING`, tokenID, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// GetRevokedTokens returns ids of revoked tokens still valid at since and
// purges the rest in the same transaction.
func (s *Storage) GetRevokedTokens(ctx context.Context, since time.Time) ([]string, error) {
	var ids []string
	err := sharedpg.WithTx(ctx, s.db, func(tx sharedpg.Querier) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM revoked_tokens WHERE expires_at < $1", since); err != nil {
			return fmt.Errorf("failed to purge revoked tokens: %w", err)
		}
		rows, err := tx.QueryContext(ctx, "SELECT token_id FROM revoked_tokens ORDER BY token_id")
		if err != nil {
			return fmt.Errorf("failed to load revoked tokens: %w", err)
		}
		ids, err = collect(rows, func(s scanner) (string, error) {
			var id string
			err := s.Scan(&id)
			return id, err
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

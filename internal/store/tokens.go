package store

import (
	"context"
	"time"

	"github.com/lemanjenny/GoalSpark2.0/internal/domain"
)

func (s *Store) CreatePasswordResetToken(ctx context.Context, token, userID string, expiresAt time.Time) error {
	_, err := s.DB.Exec(ctx, `
		INSERT INTO password_reset_tokens (token, user_id, expires_at)
		VALUES ($1,$2,$3)`,
		token, userID, expiresAt,
	)
	return err
}

func (s *Store) GetPasswordResetToken(ctx context.Context, token string) (domain.PasswordResetToken, error) {
	var reset domain.PasswordResetToken
	row := s.DB.QueryRow(ctx, `
		SELECT token, user_id, expires_at, used, created_at
		FROM password_reset_tokens WHERE token=$1`, token)
	err := row.Scan(&reset.Token, &reset.UserID, &reset.ExpiresAt, &reset.Used, &reset.CreatedAt)
	return reset, err
}

func (s *Store) MarkResetTokenUsed(ctx context.Context, token string) error {
	_, err := s.DB.Exec(ctx, `UPDATE password_reset_tokens SET used=TRUE WHERE token=$1`, token)
	return err
}

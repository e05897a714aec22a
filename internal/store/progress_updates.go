package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/lemanjenny/GoalSpark2.0/internal/domain"
)

const progressColumns = `id, goal_id, user_id, previous_value, new_value, status, comment, created_at`

func scanProgressUpdate(row interface{ Scan(...any) error }) (domain.ProgressUpdate, error) {
	var update domain.ProgressUpdate
	err := row.Scan(&update.ID, &update.GoalID, &update.UserID, &update.PreviousValue,
		&update.NewValue, &update.Status, &update.Comment, &update.Timestamp)
	return update, err
}

func (s *Store) InsertProgressUpdate(ctx context.Context, input ProgressUpdateInput) (domain.ProgressUpdate, error) {
	row := s.DB.QueryRow(ctx, `
		INSERT INTO progress_updates (id, goal_id, user_id, previous_value, new_value, status, comment)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING `+progressColumns,
		uuid.NewString(), input.GoalID, input.UserID, input.PreviousValue, input.NewValue,
		input.Status, input.Comment,
	)
	return scanProgressUpdate(row)
}

func (s *Store) ListProgressByGoal(ctx context.Context, goalID string) ([]domain.ProgressUpdate, error) {
	return s.listProgress(ctx, `
		SELECT `+progressColumns+` FROM progress_updates
		WHERE goal_id=$1
		ORDER BY created_at DESC`, goalID)
}

func (s *Store) ListProgressForGoals(ctx context.Context, goalIDs []string) ([]domain.ProgressUpdate, error) {
	return s.listProgress(ctx, `
		SELECT `+progressColumns+` FROM progress_updates
		WHERE goal_id = ANY($1)
		ORDER BY created_at DESC`, goalIDs)
}

func (s *Store) listProgress(ctx context.Context, query string, args ...any) ([]domain.ProgressUpdate, error) {
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	updates := make([]domain.ProgressUpdate, 0)
	for rows.Next() {
		update, err := scanProgressUpdate(rows)
		if err != nil {
			return nil, err
		}
		updates = append(updates, update)
	}
	return updates, rows.Err()
}

package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/lemanjenny/GoalSpark2.0/internal/domain"
)

const goalColumns = `id, title, description, goal_type, comparison, target_value, current_value, unit,
	assigned_to, assigned_by, cycle_type, start_date, end_date, status, progress_percentage, is_active,
	created_at, updated_at`

func scanGoal(row interface{ Scan(...any) error }) (domain.Goal, error) {
	var goal domain.Goal
	err := row.Scan(&goal.ID, &goal.Title, &goal.Description, &goal.GoalType, &goal.Comparison,
		&goal.TargetValue, &goal.CurrentValue, &goal.Unit, &goal.AssignedTo, &goal.AssignedBy,
		&goal.CycleType, &goal.StartDate, &goal.EndDate, &goal.Status, &goal.ProgressPercentage,
		&goal.IsActive, &goal.CreatedAt, &goal.UpdatedAt)
	return goal, err
}

func (s *Store) CreateGoal(ctx context.Context, input GoalInput) (domain.Goal, error) {
	row := s.DB.QueryRow(ctx, `
		INSERT INTO goals (id, title, description, goal_type, comparison, target_value, unit,
			assigned_to, assigned_by, cycle_type, start_date, end_date, status, progress_percentage)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		RETURNING `+goalColumns,
		uuid.NewString(), input.Title, input.Description, input.GoalType, input.Comparison,
		input.TargetValue, input.Unit, input.AssignedTo, input.AssignedBy, input.CycleType,
		input.StartDate, input.EndDate, domain.StatusOnTrack, input.ProgressPercentage,
	)
	return scanGoal(row)
}

func (s *Store) GetGoal(ctx context.Context, id string) (domain.Goal, error) {
	row := s.DB.QueryRow(ctx, `SELECT `+goalColumns+` FROM goals WHERE id=$1`, id)
	return scanGoal(row)
}

// ListActiveGoalsForAssignee returns a single user's active goals.
func (s *Store) ListActiveGoalsForAssignee(ctx context.Context, userID string) ([]domain.Goal, error) {
	return s.listGoals(ctx, `
		SELECT `+goalColumns+` FROM goals
		WHERE $1 = ANY(assigned_to) AND is_active
		ORDER BY created_at DESC`, userID)
}

// ListActiveGoalsForAssignees returns the active goals assigned to any
// of the given users.
func (s *Store) ListActiveGoalsForAssignees(ctx context.Context, userIDs []string) ([]domain.Goal, error) {
	return s.listGoals(ctx, `
		SELECT `+goalColumns+` FROM goals
		WHERE assigned_to && $1 AND is_active
		ORDER BY created_at DESC`, userIDs)
}

// ListGoalsForAssignees includes inactive goals; analytics needs the
// full history to count completions.
func (s *Store) ListGoalsForAssignees(ctx context.Context, userIDs []string) ([]domain.Goal, error) {
	return s.listGoals(ctx, `
		SELECT `+goalColumns+` FROM goals
		WHERE assigned_to && $1
		ORDER BY created_at DESC`, userIDs)
}

func (s *Store) listGoals(ctx context.Context, query string, args ...any) ([]domain.Goal, error) {
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := make([]domain.Goal, 0)
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

func (s *Store) UpdateGoal(ctx context.Context, input GoalUpdateInput) (domain.Goal, error) {
	row := s.DB.QueryRow(ctx, `
		UPDATE goals
		SET title=$1, description=$2, goal_type=$3, comparison=$4, target_value=$5, unit=$6,
			assigned_to=$7, cycle_type=$8, start_date=$9, end_date=$10, progress_percentage=$11,
			updated_at=NOW()
		WHERE id=$12
		RETURNING `+goalColumns,
		input.Title, input.Description, input.GoalType, input.Comparison, input.TargetValue,
		input.Unit, input.AssignedTo, input.CycleType, input.StartDate, input.EndDate,
		input.ProgressPercentage, input.ID,
	)
	return scanGoal(row)
}

// ApplyProgress writes the goal's cached summary fields. Concurrent
// submissions are last-write-wins here; the progress_updates log keeps
// every report.
func (s *Store) ApplyProgress(ctx context.Context, goalID string, currentValue float64, status domain.GoalStatus, progressPercentage float64) error {
	_, err := s.DB.Exec(ctx, `
		UPDATE goals
		SET current_value=$1, status=$2, progress_percentage=$3, updated_at=NOW()
		WHERE id=$4`,
		currentValue, status, progressPercentage, goalID,
	)
	return err
}

// DeactivateGoal flips is_active; goals are never deleted.
func (s *Store) DeactivateGoal(ctx context.Context, id string) error {
	_, err := s.DB.Exec(ctx, `UPDATE goals SET is_active=FALSE, updated_at=NOW() WHERE id=$1`, id)
	return err
}

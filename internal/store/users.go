package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lemanjenny/GoalSpark2.0/internal/domain"
)

const userColumns = `id, email, password_hash, first_name, last_name, role, job_title, custom_role, manager_id, is_active, activity_seen_at, created_at`

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName,
		&user.Role, &user.JobTitle, &user.CustomRole, &user.ManagerID, &user.IsActive,
		&user.ActivitySeenAt, &user.CreatedAt)
	return user, err
}

func (s *Store) CreateUser(ctx context.Context, input UserInput) (domain.User, error) {
	row := s.DB.QueryRow(ctx, `
		INSERT INTO users (id, email, password_hash, first_name, last_name, role, job_title, custom_role, manager_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING `+userColumns,
		uuid.NewString(), input.Email, input.PasswordHash, input.FirstName, input.LastName,
		input.Role, input.JobTitle, input.CustomRole, input.ManagerID,
	)
	return scanUser(row)
}

func (s *Store) GetUser(ctx context.Context, id string) (domain.User, error) {
	row := s.DB.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
	return scanUser(row)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := s.DB.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email)
	return scanUser(row)
}

func (s *Store) ListManagers(ctx context.Context) ([]domain.User, error) {
	return s.listUsers(ctx, `SELECT `+userColumns+` FROM users WHERE role=$1 AND is_active ORDER BY first_name, last_name`, domain.RoleAdmin)
}

func (s *Store) ListTeamMembers(ctx context.Context, managerID string) ([]domain.User, error) {
	return s.listUsers(ctx, `SELECT `+userColumns+` FROM users WHERE manager_id=$1 AND is_active ORDER BY first_name, last_name`, managerID)
}

func (s *Store) listUsers(ctx context.Context, query string, args ...any) ([]domain.User, error) {
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (s *Store) UpdateUserPassword(ctx context.Context, userID, passwordHash string) error {
	_, err := s.DB.Exec(ctx, `UPDATE users SET password_hash=$1 WHERE id=$2`, passwordHash, userID)
	return err
}

func (s *Store) UpdateUserProfile(ctx context.Context, userID, jobTitle, customRole string) (domain.User, error) {
	row := s.DB.QueryRow(ctx, `
		UPDATE users SET job_title=$1, custom_role=$2 WHERE id=$3
		RETURNING `+userColumns,
		jobTitle, customRole, userID)
	return scanUser(row)
}

func (s *Store) MarkActivitiesSeen(ctx context.Context, userID string, seenAt time.Time) error {
	_, err := s.DB.Exec(ctx, `UPDATE users SET activity_seen_at=$1 WHERE id=$2`, seenAt, userID)
	return err
}

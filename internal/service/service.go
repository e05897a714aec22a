package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/lemanjenny/GoalSpark2.0/internal/activity"
	"github.com/lemanjenny/GoalSpark2.0/internal/auth"
	"github.com/lemanjenny/GoalSpark2.0/internal/domain"
	"github.com/lemanjenny/GoalSpark2.0/internal/store"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrNotAssignee        = errors.New("user is not assigned to this goal")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInvalidManager     = errors.New("invalid manager selected")
	ErrAssigneeNotFound   = errors.New("assigned user not found")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

const passwordResetTTL = time.Hour

type Store interface {
	CreateUser(ctx context.Context, input store.UserInput) (domain.User, error)
	GetUser(ctx context.Context, id string) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	ListManagers(ctx context.Context) ([]domain.User, error)
	ListTeamMembers(ctx context.Context, managerID string) ([]domain.User, error)
	UpdateUserPassword(ctx context.Context, userID, passwordHash string) error
	UpdateUserProfile(ctx context.Context, userID, jobTitle, customRole string) (domain.User, error)
	MarkActivitiesSeen(ctx context.Context, userID string, seenAt time.Time) error

	CreateGoal(ctx context.Context, input store.GoalInput) (domain.Goal, error)
	GetGoal(ctx context.Context, id string) (domain.Goal, error)
	ListActiveGoalsForAssignee(ctx context.Context, userID string) ([]domain.Goal, error)
	ListActiveGoalsForAssignees(ctx context.Context, userIDs []string) ([]domain.Goal, error)
	ListGoalsForAssignees(ctx context.Context, userIDs []string) ([]domain.Goal, error)
	UpdateGoal(ctx context.Context, input store.GoalUpdateInput) (domain.Goal, error)
	ApplyProgress(ctx context.Context, goalID string, currentValue float64, status domain.GoalStatus, progressPercentage float64) error
	DeactivateGoal(ctx context.Context, id string) error

	InsertProgressUpdate(ctx context.Context, input store.ProgressUpdateInput) (domain.ProgressUpdate, error)
	ListProgressByGoal(ctx context.Context, goalID string) ([]domain.ProgressUpdate, error)
	ListProgressForGoals(ctx context.Context, goalIDs []string) ([]domain.ProgressUpdate, error)

	InsertActivity(ctx context.Context, item domain.ActivityItem) error
	ListRecentActivities(ctx context.Context, activityType domain.ActivityType, limit int) ([]domain.ActivityItem, error)
	CountActivitiesSince(ctx context.Context, since time.Time) (int, error)

	CreatePasswordResetToken(ctx context.Context, token, userID string, expiresAt time.Time) error
	GetPasswordResetToken(ctx context.Context, token string) (domain.PasswordResetToken, error)
	MarkResetTokenUsed(ctx context.Context, token string) error
}

type EmailSender interface {
	SendWelcome(ctx context.Context, toEmail, name string) error
	SendPasswordReset(ctx context.Context, toEmail, token, name string) error
}

type Service struct {
	store    Store
	recorder *activity.Recorder
	email    EmailSender
	tokens   *auth.TokenIssuer
	logger   *slog.Logger
}

func New(store Store, recorder *activity.Recorder, email EmailSender, tokens *auth.TokenIssuer, logger *slog.Logger) *Service {
	return &Service{store: store, recorder: recorder, email: email, tokens: tokens, logger: logger}
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	JobTitle  string
	ManagerID *string
}

// Register creates a user. Supplying a manager makes the user an
// employee of that manager; otherwise the user is an admin (manager).
func (s *Service) Register(ctx context.Context, input RegisterInput) (domain.User, string, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))

	_, err := s.store.GetUserByEmail(ctx, email)
	if err == nil {
		return domain.User{}, "", ErrEmailTaken
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, "", err
	}

	role := domain.RoleAdmin
	if input.ManagerID != nil {
		manager, err := s.store.GetUser(ctx, *input.ManagerID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.User{}, "", ErrInvalidManager
			}
			return domain.User{}, "", err
		}
		if manager.Role != domain.RoleAdmin {
			return domain.User{}, "", ErrInvalidManager
		}
		role = domain.RoleEmployee
	}

	passwordHash, err := auth.HashPassword(input.Password)
	if err != nil {
		return domain.User{}, "", err
	}

	user, err := s.store.CreateUser(ctx, store.UserInput{
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         role,
		JobTitle:     input.JobTitle,
		ManagerID:    input.ManagerID,
	})
	if err != nil {
		return domain.User{}, "", err
	}

	token, err := s.tokens.Issue(user.ID, time.Now())
	if err != nil {
		return domain.User{}, "", err
	}

	if err := s.email.SendWelcome(ctx, user.Email, user.FullName()); err != nil {
		s.logger.Warn("welcome email failed", slog.String("user_id", user.ID), slog.String("error", err.Error()))
	}
	return user, token, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	user, err := s.store.GetUserByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, "", ErrInvalidCredentials
		}
		return domain.User{}, "", err
	}
	if err := auth.ComparePassword(password, user.PasswordHash); err != nil {
		return domain.User{}, "", ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(user.ID, time.Now())
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

// Authenticate resolves a bearer token to its user.
func (s *Service) Authenticate(ctx context.Context, token string) (domain.User, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return domain.User{}, err
	}
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, auth.ErrInvalidToken
		}
		return domain.User{}, err
	}
	return user, nil
}

// ForgotPassword never reveals whether the email exists.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.store.GetUserByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}
	token, err := auth.GenerateResetToken()
	if err != nil {
		return err
	}
	if err := s.store.CreatePasswordResetToken(ctx, token, user.ID, time.Now().Add(passwordResetTTL)); err != nil {
		return err
	}
	return s.email.SendPasswordReset(ctx, user.Email, token, user.FullName())
}

func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	reset, err := s.store.GetPasswordResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrInvalidResetToken
		}
		return err
	}
	if reset.Used || time.Now().After(reset.ExpiresAt) {
		return ErrInvalidResetToken
	}
	passwordHash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.store.UpdateUserPassword(ctx, reset.UserID, passwordHash); err != nil {
		return err
	}
	return s.store.MarkResetTokenUsed(ctx, token)
}

func (s *Service) Managers(ctx context.Context) ([]domain.User, error) {
	return s.store.ListManagers(ctx)
}

func (s *Service) TeamMembers(ctx context.Context, manager domain.User) ([]domain.User, error) {
	if manager.Role != domain.RoleAdmin {
		return nil, ErrForbidden
	}
	return s.store.ListTeamMembers(ctx, manager.ID)
}

type UpdateTeamMemberInput struct {
	JobTitle   string
	CustomRole string
}

// UpdateTeamMember lets a manager relabel one of their own reports. The
// access-control role is untouched; only the display fields change.
func (s *Service) UpdateTeamMember(ctx context.Context, memberID string, input UpdateTeamMemberInput, actor domain.User) (domain.User, error) {
	if actor.Role != domain.RoleAdmin {
		return domain.User{}, ErrForbidden
	}
	member, err := s.store.GetUser(ctx, memberID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, err
	}
	if member.ManagerID == nil || *member.ManagerID != actor.ID {
		return domain.User{}, ErrForbidden
	}
	return s.store.UpdateUserProfile(ctx, memberID, input.JobTitle, input.CustomRole)
}

type InviteInput struct {
	Email      string
	FirstName  string
	LastName   string
	JobTitle   string
	CustomRole string
}

// InviteTeamMember creates an employee account under the inviting
// manager with a generated temporary password, returned to the manager
// to hand over out of band.
func (s *Service) InviteTeamMember(ctx context.Context, input InviteInput, actor domain.User) (domain.User, string, error) {
	if actor.Role != domain.RoleAdmin {
		return domain.User{}, "", ErrForbidden
	}
	email := strings.TrimSpace(strings.ToLower(input.Email))

	_, err := s.store.GetUserByEmail(ctx, email)
	if err == nil {
		return domain.User{}, "", ErrEmailTaken
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, "", err
	}

	tempPassword, err := auth.GenerateTempPassword()
	if err != nil {
		return domain.User{}, "", err
	}
	passwordHash, err := auth.HashPassword(tempPassword)
	if err != nil {
		return domain.User{}, "", err
	}

	member, err := s.store.CreateUser(ctx, store.UserInput{
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         domain.RoleEmployee,
		JobTitle:     input.JobTitle,
		CustomRole:   input.CustomRole,
		ManagerID:    &actor.ID,
	})
	if err != nil {
		return domain.User{}, "", err
	}

	if err := s.email.SendWelcome(ctx, member.Email, member.FullName()); err != nil {
		s.logger.Warn("welcome email failed", slog.String("user_id", member.ID), slog.String("error", err.Error()))
	}
	return member, tempPassword, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/lemanjenny/GoalSpark2.0/internal/analytics"
	"github.com/lemanjenny/GoalSpark2.0/internal/domain"
	"github.com/lemanjenny/GoalSpark2.0/internal/progress"
	"github.com/lemanjenny/GoalSpark2.0/internal/store"
)

const (
	defaultActivityFeedLimit = 20
	maxActivityFeedLimit     = 100
)

type CreateGoalInput struct {
	Title       string
	Description string
	GoalType    domain.GoalType
	Comparison  domain.Comparison
	TargetValue float64
	Unit        string
	AssignedTo  []string
	CycleType   domain.GoalCycle
	StartDate   time.Time
	EndDate     time.Time
}

type UpdateGoalInput struct {
	Title       string
	Description string
	GoalType    domain.GoalType
	Comparison  domain.Comparison
	TargetValue float64
	Unit        string
	AssignedTo  []string
	CycleType   domain.GoalCycle
	StartDate   time.Time
	EndDate     time.Time
}

type SubmitProgressInput struct {
	NewValue float64
	Status   domain.GoalStatus
	Comment  *string
}

func (s *Service) CreateGoal(ctx context.Context, input CreateGoalInput, actor domain.User) (domain.Goal, error) {
	if actor.Role != domain.RoleAdmin {
		return domain.Goal{}, ErrForbidden
	}
	if err := s.validateAssignees(ctx, input.AssignedTo); err != nil {
		return domain.Goal{}, err
	}
	goal, err := s.store.CreateGoal(ctx, store.GoalInput{
		Title:              input.Title,
		Description:        input.Description,
		GoalType:           input.GoalType,
		Comparison:         input.Comparison,
		TargetValue:        input.TargetValue,
		Unit:               input.Unit,
		AssignedTo:         input.AssignedTo,
		AssignedBy:         actor.ID,
		CycleType:          input.CycleType,
		StartDate:          input.StartDate,
		EndDate:            input.EndDate,
		ProgressPercentage: progress.Percentage(0, input.TargetValue, input.Comparison),
	})
	if err != nil {
		return domain.Goal{}, err
	}
	s.recordActivities(ctx, s.recorder.GoalCreated(goal, actor))
	return goal, nil
}

// GoalsForUser lists active goals: admins see every goal assigned to
// someone on their team (themselves included), employees see only
// their own.
func (s *Service) GoalsForUser(ctx context.Context, user domain.User) ([]domain.Goal, error) {
	if user.Role != domain.RoleAdmin {
		return s.store.ListActiveGoalsForAssignee(ctx, user.ID)
	}
	memberIDs, err := s.teamScope(ctx, user)
	if err != nil {
		return nil, err
	}
	return s.store.ListActiveGoalsForAssignees(ctx, memberIDs)
}

func (s *Service) GetGoalForUser(ctx context.Context, goalID string, user domain.User) (domain.Goal, error) {
	goal, err := s.store.GetGoal(ctx, goalID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Goal{}, ErrNotFound
		}
		return domain.Goal{}, err
	}
	if user.Role == domain.RoleEmployee && !goal.IsAssignee(user.ID) {
		return domain.Goal{}, ErrForbidden
	}
	return goal, nil
}

// UpdateGoal edits goal fields and recomputes the cached percentage for
// the new target and comparison. The current value is untouched; only
// progress submissions move it.
func (s *Service) UpdateGoal(ctx context.Context, goalID string, input UpdateGoalInput, actor domain.User) (domain.Goal, error) {
	if actor.Role != domain.RoleAdmin {
		return domain.Goal{}, ErrForbidden
	}
	oldGoal, err := s.store.GetGoal(ctx, goalID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Goal{}, ErrNotFound
		}
		return domain.Goal{}, err
	}
	if err := s.validateAssignees(ctx, input.AssignedTo); err != nil {
		return domain.Goal{}, err
	}
	updated, err := s.store.UpdateGoal(ctx, store.GoalUpdateInput{
		ID:                 goalID,
		Title:              input.Title,
		Description:        input.Description,
		GoalType:           input.GoalType,
		Comparison:         input.Comparison,
		TargetValue:        input.TargetValue,
		Unit:               input.Unit,
		AssignedTo:         input.AssignedTo,
		CycleType:          input.CycleType,
		StartDate:          input.StartDate,
		EndDate:            input.EndDate,
		ProgressPercentage: progress.Percentage(oldGoal.CurrentValue, input.TargetValue, input.Comparison),
	})
	if err != nil {
		return domain.Goal{}, err
	}
	s.recordActivities(ctx, s.recorder.GoalEdited(oldGoal, updated, actor))
	return updated, nil
}

// DeactivateGoal flips is_active off; nothing is deleted and the
// progress log stays intact.
func (s *Service) DeactivateGoal(ctx context.Context, goalID string, actor domain.User) error {
	if actor.Role != domain.RoleAdmin {
		return ErrForbidden
	}
	if _, err := s.store.GetGoal(ctx, goalID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return s.store.DeactivateGoal(ctx, goalID)
}

// SubmitProgress appends a progress update, refreshes the goal's cached
// summary fields and emits one or two activity records. The reporter
// must be assigned to the goal. The asserted status is taken as-is; it
// is never validated against the computed percentage.
func (s *Service) SubmitProgress(ctx context.Context, goalID string, input SubmitProgressInput, actor domain.User) (domain.ProgressUpdate, error) {
	goal, err := s.store.GetGoal(ctx, goalID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ProgressUpdate{}, ErrNotFound
		}
		return domain.ProgressUpdate{}, err
	}
	if !goal.IsAssignee(actor.ID) {
		return domain.ProgressUpdate{}, ErrNotAssignee
	}

	update, err := s.store.InsertProgressUpdate(ctx, store.ProgressUpdateInput{
		GoalID:        goalID,
		UserID:        actor.ID,
		PreviousValue: goal.CurrentValue,
		NewValue:      input.NewValue,
		Status:        input.Status,
		Comment:       input.Comment,
	})
	if err != nil {
		return domain.ProgressUpdate{}, err
	}

	percentage := progress.Percentage(input.NewValue, goal.TargetValue, goal.Comparison)
	if err := s.store.ApplyProgress(ctx, goalID, input.NewValue, input.Status, percentage); err != nil {
		return domain.ProgressUpdate{}, err
	}

	previousStatus := goal.Status
	goal.CurrentValue = input.NewValue
	goal.Status = input.Status
	goal.ProgressPercentage = percentage
	s.recordActivities(ctx, s.recorder.ProgressUpdated(goal, update, previousStatus, actor)...)

	return update, nil
}

func (s *Service) ProgressHistory(ctx context.Context, goalID string, user domain.User) ([]domain.ProgressUpdate, error) {
	if _, err := s.GetGoalForUser(ctx, goalID, user); err != nil {
		return nil, err
	}
	return s.store.ListProgressByGoal(ctx, goalID)
}

// TeamAnalytics loads the manager's team scope and aggregates it in
// memory. Reads are not snapshot-isolated; the result is a best-effort
// view over concurrent writes.
func (s *Service) TeamAnalytics(ctx context.Context, manager domain.User, now time.Time) (analytics.Snapshot, error) {
	if manager.Role != domain.RoleAdmin {
		return analytics.Snapshot{}, ErrForbidden
	}
	members, err := s.store.ListTeamMembers(ctx, manager.ID)
	if err != nil {
		return analytics.Snapshot{}, err
	}
	// The manager belongs to the roster too: their own goals count and
	// their progress reports must resolve in the activity feed.
	roster := append([]domain.User{manager}, members...)
	memberIDs := make([]string, 0, len(roster))
	for _, member := range roster {
		memberIDs = append(memberIDs, member.ID)
	}

	goals, err := s.store.ListGoalsForAssignees(ctx, memberIDs)
	if err != nil {
		return analytics.Snapshot{}, err
	}
	goalIDs := make([]string, 0, len(goals))
	for _, goal := range goals {
		goalIDs = append(goalIDs, goal.ID)
	}
	updates := make([]domain.ProgressUpdate, 0)
	if len(goalIDs) > 0 {
		updates, err = s.store.ListProgressForGoals(ctx, goalIDs)
		if err != nil {
			return analytics.Snapshot{}, err
		}
	}
	return analytics.Aggregate(goals, updates, roster, now), nil
}

// RecentActivities returns the newest feed entries, optionally filtered
// by type, and advances the viewer's read marker. Reading the feed is
// what marks it read.
func (s *Service) RecentActivities(ctx context.Context, viewer domain.User, activityType domain.ActivityType, limit int) ([]domain.ActivityItem, error) {
	if limit <= 0 {
		limit = defaultActivityFeedLimit
	}
	if limit > maxActivityFeedLimit {
		limit = maxActivityFeedLimit
	}
	items, err := s.store.ListRecentActivities(ctx, activityType, limit)
	if err != nil {
		return nil, err
	}
	if err := s.store.MarkActivitiesSeen(ctx, viewer.ID, time.Now()); err != nil {
		s.logger.Warn("activity read marker update failed",
			slog.String("user_id", viewer.ID), slog.String("error", err.Error()))
	}
	return items, nil
}

// UnreadActivityCount counts feed entries newer than the viewer's read
// marker.
func (s *Service) UnreadActivityCount(ctx context.Context, viewer domain.User) (int, error) {
	return s.store.CountActivitiesSince(ctx, viewer.ActivitySeenAt)
}

func (s *Service) validateAssignees(ctx context.Context, userIDs []string) error {
	for _, userID := range userIDs {
		if _, err := s.store.GetUser(ctx, userID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: %s", ErrAssigneeNotFound, userID)
			}
			return err
		}
	}
	return nil
}

func (s *Service) teamScope(ctx context.Context, manager domain.User) ([]string, error) {
	members, err := s.store.ListTeamMembers(ctx, manager.ID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(members)+1)
	for _, member := range members {
		ids = append(ids, member.ID)
	}
	return append(ids, manager.ID), nil
}

// recordActivities persists feed entries best-effort: a failed insert
// must not fail the operation that produced it.
func (s *Service) recordActivities(ctx context.Context, items ...domain.ActivityItem) {
	for _, item := range items {
		if err := s.store.InsertActivity(ctx, item); err != nil {
			s.logger.Warn("activity insert failed",
				slog.String("type", string(item.Type)), slog.String("error", err.Error()))
		}
	}
}

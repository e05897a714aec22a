// Package activity derives human-readable records from goal-lifecycle
// events. Descriptions are free-text summaries for notification feeds,
// not a parseable format.
package activity

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lemanjenny/GoalSpark2.0/internal/domain"
	"github.com/lemanjenny/GoalSpark2.0/internal/progress"
)

type Recorder struct {
	now func() time.Time
}

func NewRecorder() *Recorder {
	return &Recorder{now: time.Now}
}

// NewRecorderWithClock pins the recording timestamp, for tests.
func NewRecorderWithClock(now func() time.Time) *Recorder {
	return &Recorder{now: now}
}

func ValidType(activityType domain.ActivityType) bool {
	switch activityType {
	case domain.ActivityGoalCreated, domain.ActivityGoalEdited,
		domain.ActivityProgressUpdated, domain.ActivityStatusChanged:
		return true
	}
	return false
}

func (r *Recorder) GoalCreated(goal domain.Goal, actor domain.User) domain.ActivityItem {
	return domain.ActivityItem{
		ID:          uuid.NewString(),
		Type:        domain.ActivityGoalCreated,
		Title:       "New goal created",
		Description: fmt.Sprintf("%s created goal %q for %d assignee(s)", actor.FullName(), goal.Title, len(goal.AssignedTo)),
		UserID:      actor.ID,
		UserName:    actor.FullName(),
		GoalID:      &goal.ID,
		GoalTitle:   &goal.Title,
		Metadata: map[string]any{
			"goal_type":    string(goal.GoalType),
			"target_value": goal.TargetValue,
			"unit":         goal.Unit,
			"cycle_type":   string(goal.CycleType),
		},
		Timestamp: r.now(),
	}
}

// GoalEdited describes the edit. Only target value and comparison mode
// are called out explicitly; every other change is summarized as
// "details updated".
func (r *Recorder) GoalEdited(oldGoal, newGoal domain.Goal, actor domain.User) domain.ActivityItem {
	changes := make([]string, 0, 2)
	if oldGoal.TargetValue != newGoal.TargetValue {
		changes = append(changes, fmt.Sprintf("target changed from %g to %g", oldGoal.TargetValue, newGoal.TargetValue))
	}
	if oldGoal.Comparison != newGoal.Comparison {
		changes = append(changes, fmt.Sprintf("comparison changed from %s to %s", oldGoal.Comparison, newGoal.Comparison))
	}
	summary := "details updated"
	if len(changes) > 0 {
		summary = changes[0]
		for _, change := range changes[1:] {
			summary += ", " + change
		}
	}
	return domain.ActivityItem{
		ID:          uuid.NewString(),
		Type:        domain.ActivityGoalEdited,
		Title:       "Goal edited",
		Description: fmt.Sprintf("%s edited goal %q: %s", actor.FullName(), newGoal.Title, summary),
		UserID:      actor.ID,
		UserName:    actor.FullName(),
		GoalID:      &newGoal.ID,
		GoalTitle:   &newGoal.Title,
		Metadata: map[string]any{
			"previous_target_value": oldGoal.TargetValue,
			"target_value":          newGoal.TargetValue,
			"previous_comparison":   string(oldGoal.Comparison),
			"comparison":            string(newGoal.Comparison),
		},
		Timestamp: r.now(),
	}
}

// ProgressUpdated always emits one progress_updated record. If the
// caller-asserted status differs from the goal's pre-update status it
// emits a second status_changed record carrying both statuses and the
// comment verbatim.
func (r *Recorder) ProgressUpdated(goal domain.Goal, update domain.ProgressUpdate, previousStatus domain.GoalStatus, actor domain.User) []domain.ActivityItem {
	recordedAt := r.now()
	items := []domain.ActivityItem{{
		ID:          uuid.NewString(),
		Type:        domain.ActivityProgressUpdated,
		Title:       "Progress updated",
		Description: fmt.Sprintf("%s reported %g %s on goal %q", actor.FullName(), update.NewValue, goal.Unit, goal.Title),
		UserID:      actor.ID,
		UserName:    actor.FullName(),
		GoalID:      &goal.ID,
		GoalTitle:   &goal.Title,
		Metadata: map[string]any{
			"progress_value":      update.NewValue,
			"target_value":        goal.TargetValue,
			"status":              string(update.Status),
			"previous_status":     string(previousStatus),
			"progress_percentage": goal.ProgressPercentage,
			"has_comment":         update.Comment != nil,
		},
		Timestamp: recordedAt,
	}}

	transition := progress.ClassifyTransition(previousStatus, update.Status)
	if transition.Changed {
		metadata := map[string]any{
			"previous_status": string(transition.From),
			"new_status":      string(transition.To),
		}
		if update.Comment != nil {
			metadata["comment"] = *update.Comment
		}
		items = append(items, domain.ActivityItem{
			ID:          uuid.NewString(),
			Type:        domain.ActivityStatusChanged,
			Title:       "Goal status changed",
			Description: fmt.Sprintf("%s moved goal %q from %s to %s", actor.FullName(), goal.Title, transition.From, transition.To),
			UserID:      actor.ID,
			UserName:    actor.FullName(),
			GoalID:      &goal.ID,
			GoalTitle:   &goal.Title,
			Metadata:    metadata,
			Timestamp:   recordedAt,
		})
	}
	return items
}

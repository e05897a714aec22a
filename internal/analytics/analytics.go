// Package analytics folds a team's goals, progress history and roster
// into a single snapshot: overview counts, 30-day trend buckets, status
// distribution, per-employee performance scores and a recent-activity
// feed. Everything is computed in memory from pre-loaded, pre-filtered
// slices; the caller owns scoping and persistence.
package analytics

import (
	"sort"
	"time"

	"github.com/lemanjenny/GoalSpark2.0/internal/domain"
)

const (
	// completedThreshold marks an inactive goal completed when its
	// current value reached 95% of the target.
	completedThreshold = 0.95

	trendBucketCount = 4
	trendBucketDays  = 30

	recentActivityLimit = 10
)

type Snapshot struct {
	TeamOverview        TeamOverview          `json:"team_overview"`
	PerformanceTrends   []TrendBucket         `json:"performance_trends"`
	GoalCompletionStats CompletionStats       `json:"goal_completion_stats"`
	EmployeePerformance []EmployeePerformance `json:"employee_performance"`
	StatusDistribution  StatusDistribution    `json:"status_distribution"`
	RecentActivities    []RecentActivity      `json:"recent_activities"`
}

type TeamOverview struct {
	TotalGoals     int     `json:"total_goals"`
	ActiveGoals    int     `json:"active_goals"`
	CompletedGoals int     `json:"completed_goals"`
	CompletionRate float64 `json:"completion_rate"`
	AvgProgress    float64 `json:"avg_progress"`
}

// TrendBucket covers a fixed 30-day window, not a true calendar month.
// The label names the month the window starts in.
type TrendBucket struct {
	Month          string    `json:"month"`
	PeriodStart    time.Time `json:"period_start"`
	PeriodEnd      time.Time `json:"period_end"`
	GoalsCreated   int       `json:"goals_created"`
	GoalsCompleted int       `json:"goals_completed"`
	AvgProgress    float64   `json:"avg_progress"`
}

type CompletionStats struct {
	OnTrack  StatusShare `json:"on_track"`
	AtRisk   StatusShare `json:"at_risk"`
	OffTrack StatusShare `json:"off_track"`
}

type StatusShare struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type StatusDistribution struct {
	OnTrack  int `json:"on_track"`
	AtRisk   int `json:"at_risk"`
	OffTrack int `json:"off_track"`
}

type EmployeePerformance struct {
	UserID           string  `json:"user_id"`
	Name             string  `json:"name"`
	JobTitle         string  `json:"job_title"`
	TotalGoals       int     `json:"total_goals"`
	CompletedGoals   int     `json:"completed_goals"`
	CompletionRate   float64 `json:"completion_rate"`
	AvgProgress      float64 `json:"avg_progress"`
	PerformanceScore float64 `json:"performance_score"`
}

type RecentActivity struct {
	GoalID             string    `json:"goal_id"`
	GoalTitle          string    `json:"goal_title"`
	UserID             string    `json:"user_id"`
	UserName           string    `json:"user_name"`
	PreviousValue      float64   `json:"previous_value"`
	NewValue           float64   `json:"new_value"`
	Status             string    `json:"status"`
	ProgressPercentage float64   `json:"progress_percentage"`
	Comment            *string   `json:"comment,omitempty"`
	Timestamp          time.Time `json:"timestamp"`
}

// Aggregate computes the full analytics snapshot for one team. Inputs
// are expected to be scoped to the team already. Empty inputs yield an
// all-zero snapshot with empty slices, never an error.
func Aggregate(goals []domain.Goal, updates []domain.ProgressUpdate, members []domain.User, now time.Time) Snapshot {
	return Snapshot{
		TeamOverview:        buildOverview(goals),
		PerformanceTrends:   buildTrends(goals, now),
		GoalCompletionStats: buildCompletionStats(goals),
		EmployeePerformance: buildEmployeePerformance(goals, members),
		StatusDistribution:  buildStatusDistribution(goals),
		RecentActivities:    buildRecentActivities(goals, updates, members),
	}
}

// isCompleted applies the 95%-of-target rule. Active goals are never
// completed, whatever their value.
func isCompleted(goal domain.Goal) bool {
	return !goal.IsActive && goal.CurrentValue >= goal.TargetValue*completedThreshold
}

// rawProgress is the unnormalized current/target ratio used by the
// averages. Goals with a zero target contribute 0. Unlike the cached
// ProgressPercentage it ignores the comparison mode and is not clamped.
func rawProgress(goal domain.Goal) float64 {
	if goal.TargetValue == 0 {
		return 0
	}
	return goal.CurrentValue / goal.TargetValue * 100
}

func meanRawProgress(goals []domain.Goal) float64 {
	if len(goals) == 0 {
		return 0
	}
	var sum float64
	for _, goal := range goals {
		sum += rawProgress(goal)
	}
	return sum / float64(len(goals))
}

func buildOverview(goals []domain.Goal) TeamOverview {
	overview := TeamOverview{TotalGoals: len(goals)}
	for _, goal := range goals {
		if goal.IsActive {
			overview.ActiveGoals++
		}
		if isCompleted(goal) {
			overview.CompletedGoals++
		}
	}
	total := overview.TotalGoals
	if total < 1 {
		total = 1
	}
	overview.CompletionRate = float64(overview.CompletedGoals) / float64(total) * 100
	overview.AvgProgress = meanRawProgress(goals)
	return overview
}

func buildTrends(goals []domain.Goal, now time.Time) []TrendBucket {
	buckets := make([]TrendBucket, 0, trendBucketCount)
	for k := trendBucketCount; k >= 1; k-- {
		start := now.AddDate(0, 0, -trendBucketDays*k)
		end := start.AddDate(0, 0, trendBucketDays)

		inBucket := make([]domain.Goal, 0)
		for _, goal := range goals {
			// Inclusive start, exclusive end.
			if !goal.StartDate.Before(start) && goal.StartDate.Before(end) {
				inBucket = append(inBucket, goal)
			}
		}
		completed := 0
		for _, goal := range inBucket {
			if isCompleted(goal) {
				completed++
			}
		}
		buckets = append(buckets, TrendBucket{
			Month:          start.Format("Jan 2006"),
			PeriodStart:    start,
			PeriodEnd:      end,
			GoalsCreated:   len(inBucket),
			GoalsCompleted: completed,
			AvgProgress:    meanRawProgress(inBucket),
		})
	}
	return buckets
}

func countByStatus(goals []domain.Goal) (onTrack, atRisk, offTrack int) {
	for _, goal := range goals {
		switch goal.Status {
		case domain.StatusOnTrack:
			onTrack++
		case domain.StatusAtRisk:
			atRisk++
		case domain.StatusOffTrack:
			offTrack++
		}
	}
	return onTrack, atRisk, offTrack
}

func buildCompletionStats(goals []domain.Goal) CompletionStats {
	onTrack, atRisk, offTrack := countByStatus(goals)
	total := len(goals)
	share := func(count int) StatusShare {
		s := StatusShare{Count: count}
		if total > 0 {
			s.Percentage = float64(count) / float64(total) * 100
		}
		return s
	}
	return CompletionStats{
		OnTrack:  share(onTrack),
		AtRisk:   share(atRisk),
		OffTrack: share(offTrack),
	}
}

func buildStatusDistribution(goals []domain.Goal) StatusDistribution {
	onTrack, atRisk, offTrack := countByStatus(goals)
	return StatusDistribution{OnTrack: onTrack, AtRisk: atRisk, OffTrack: offTrack}
}

func buildEmployeePerformance(goals []domain.Goal, members []domain.User) []EmployeePerformance {
	rows := make([]EmployeePerformance, 0, len(members))
	for _, member := range members {
		assigned := make([]domain.Goal, 0)
		for _, goal := range goals {
			if goal.IsAssignee(member.ID) {
				assigned = append(assigned, goal)
			}
		}
		row := EmployeePerformance{
			UserID:     member.ID,
			Name:       member.FullName(),
			JobTitle:   member.JobTitle,
			TotalGoals: len(assigned),
		}
		for _, goal := range assigned {
			if isCompleted(goal) {
				row.CompletedGoals++
			}
		}
		if len(assigned) > 0 {
			row.CompletionRate = float64(row.CompletedGoals) / float64(len(assigned)) * 100
			row.AvgProgress = meanRawProgress(assigned)
		}
		// Two equally weighted halves, each capped at 50 points.
		row.PerformanceScore = row.CompletionRate*0.5 + minFloat(row.AvgProgress, 100)*0.5
		rows = append(rows, row)
	}
	// Stable: ties keep roster order.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].PerformanceScore > rows[j].PerformanceScore
	})
	return rows
}

func buildRecentActivities(goals []domain.Goal, updates []domain.ProgressUpdate, members []domain.User) []RecentActivity {
	goalsByID := make(map[string]domain.Goal, len(goals))
	for _, goal := range goals {
		goalsByID[goal.ID] = goal
	}
	membersByID := make(map[string]domain.User, len(members))
	for _, member := range members {
		membersByID[member.ID] = member
	}

	ordered := make([]domain.ProgressUpdate, len(updates))
	copy(ordered, updates)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.After(ordered[j].Timestamp)
	})
	if len(ordered) > recentActivityLimit {
		ordered = ordered[:recentActivityLimit]
	}

	activities := make([]RecentActivity, 0, len(ordered))
	for _, update := range ordered {
		goal, okGoal := goalsByID[update.GoalID]
		member, okMember := membersByID[update.UserID]
		if !okGoal || !okMember {
			// Best-effort over possibly inconsistent history.
			continue
		}
		activities = append(activities, RecentActivity{
			GoalID:             goal.ID,
			GoalTitle:          goal.Title,
			UserID:             member.ID,
			UserName:           member.FullName(),
			PreviousValue:      update.PreviousValue,
			NewValue:           update.NewValue,
			Status:             string(update.Status),
			ProgressPercentage: goal.ProgressPercentage,
			Comment:            update.Comment,
			Timestamp:          update.Timestamp,
		})
	}
	return activities
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

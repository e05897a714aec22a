package domain

import "time"

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleEmployee UserRole = "employee"
)

type GoalStatus string

const (
	StatusOnTrack  GoalStatus = "on_track"
	StatusAtRisk   GoalStatus = "at_risk"
	StatusOffTrack GoalStatus = "off_track"
)

type GoalCycle string

const (
	CycleWeekly    GoalCycle = "weekly"
	CycleBiweekly  GoalCycle = "biweekly"
	CycleMonthly   GoalCycle = "monthly"
	CycleQuarterly GoalCycle = "quarterly"
)

type GoalType string

const (
	GoalTypeTarget     GoalType = "target"
	GoalTypePercentage GoalType = "percentage"
	GoalTypeRevenue    GoalType = "revenue"
	GoalTypeCustom     GoalType = "custom"
)

// Comparison selects the formula that turns (current, target) into a
// completion percentage. It is independent of GoalType, which is
// informational only.
type Comparison string

const (
	ComparisonGreaterThan Comparison = "greater_than"
	ComparisonLessThan    Comparison = "less_than"
	ComparisonEqualTo     Comparison = "equal_to"
)

type ActivityType string

const (
	ActivityGoalCreated     ActivityType = "goal_created"
	ActivityGoalEdited      ActivityType = "goal_edited"
	ActivityProgressUpdated ActivityType = "progress_updated"
	ActivityStatusChanged   ActivityType = "status_changed"
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         UserRole
	JobTitle     string
	// CustomRole is a manager-assigned display label ("Sales Rep"),
	// independent of the access-control Role.
	CustomRole string
	ManagerID  *string
	IsActive   bool
	// ActivitySeenAt marks how far into the activity feed the user has
	// read; everything newer counts as unread.
	ActivitySeenAt time.Time
	CreatedAt      time.Time
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

type Goal struct {
	ID          string
	Title       string
	Description string
	GoalType    GoalType
	Comparison  Comparison
	TargetValue float64
	// CurrentValue is mutated only through progress updates.
	CurrentValue float64
	Unit         string
	AssignedTo   []string
	AssignedBy   string
	CycleType    GoalCycle
	StartDate    time.Time
	EndDate      time.Time
	// Status is asserted by the reporting user, never derived from the
	// percentage.
	Status GoalStatus
	// ProgressPercentage is a cached value in [0,100], recomputed from
	// CurrentValue, TargetValue and Comparison on every mutation.
	ProgressPercentage float64
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (g Goal) IsAssignee(userID string) bool {
	for _, id := range g.AssignedTo {
		if id == userID {
			return true
		}
	}
	return false
}

// ProgressUpdate is an append-only log entry; it is never mutated after
// creation.
type ProgressUpdate struct {
	ID            string
	GoalID        string
	UserID        string
	PreviousValue float64
	NewValue      float64
	Status        GoalStatus
	Comment       *string
	Timestamp     time.Time
}

// ActivityItem is a human-readable record of a goal-lifecycle event.
// Metadata keys depend on Type.
type ActivityItem struct {
	ID          string
	Type        ActivityType
	Title       string
	Description string
	UserID      string
	UserName    string
	GoalID      *string
	GoalTitle   *string
	Metadata    map[string]any
	Timestamp   time.Time
}

type PasswordResetToken struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

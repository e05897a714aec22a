package store

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lemanjenny/GoalSpark2.0/internal/domain"
)

type Store struct {
	DB *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

type UserInput struct {
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         domain.UserRole
	JobTitle     string
	CustomRole   string
	ManagerID    *string
}

type GoalInput struct {
	Title       string
	Description string
	GoalType    domain.GoalType
	Comparison  domain.Comparison
	TargetValue float64
	Unit        string
	AssignedTo  []string
	AssignedBy  string
	CycleType   domain.GoalCycle
	StartDate   time.Time
	EndDate     time.Time
	// ProgressPercentage is the initial cached value for a zero
	// current value; LESS_THAN goals start at 100.
	ProgressPercentage float64
}

type GoalUpdateInput struct {
	ID          string
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
	// ProgressPercentage is the cached value recomputed by the caller
	// for the new target/comparison.
	ProgressPercentage float64
}

type ProgressUpdateInput struct {
	GoalID        string
	UserID        string
	PreviousValue float64
	NewValue      float64
	Status        domain.GoalStatus
	Comment       *string
}

package v1

import (
	"testing"
	"time"

	"github.com/lemanjenny/GoalSpark2.0/internal/domain"
)

func TestMapGoal(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	goal := domain.Goal{
		ID:                 "g1",
		Title:              "Close deals",
		GoalType:           domain.GoalTypeRevenue,
		Comparison:         domain.ComparisonGreaterThan,
		TargetValue:        100000,
		CurrentValue:       42000,
		Unit:               "USD",
		AssignedTo:         []string{"u1", "u2"},
		AssignedBy:         "u0",
		CycleType:          domain.CycleQuarterly,
		Status:             domain.StatusOnTrack,
		ProgressPercentage: 42,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	resp := mapGoal(goal)
	if resp.ID != "g1" || resp.Comparison != "greater_than" || resp.CycleType != "quarterly" {
		t.Fatalf("unexpected mapping: %+v", resp)
	}
	if resp.ProgressPercentage != 42 || len(resp.AssignedTo) != 2 {
		t.Fatalf("unexpected values: %+v", resp)
	}
}

func TestMapUserOmitsPasswordHash(t *testing.T) {
	user := domain.User{
		ID:           "u1",
		Email:        "a@example.com",
		PasswordHash: "bcrypt-secret",
		FirstName:    "Ada",
		LastName:     "Okafor",
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	resp := mapUser(user)
	if resp.Email != "a@example.com" || resp.Role != "admin" {
		t.Fatalf("unexpected mapping: %+v", resp)
	}
	// userResponse has no hash field at all; this guards against one
	// being added later and leaking through.
	if got := anyFieldContains(resp, "bcrypt-secret"); got {
		t.Fatalf("password hash leaked into response")
	}
}

func anyFieldContains(resp userResponse, needle string) bool {
	for _, v := range []string{resp.ID, resp.Email, resp.FirstName, resp.LastName, resp.Role, resp.JobTitle} {
		if v == needle {
			return true
		}
	}
	return false
}

func TestMapActivity(t *testing.T) {
	goalID := "g1"
	goalTitle := "Close deals"
	item := domain.ActivityItem{
		ID:        "a1",
		Type:      domain.ActivityProgressUpdated,
		Title:     "Progress Updated",
		UserID:    "u1",
		UserName:  "Ada Okafor",
		GoalID:    &goalID,
		GoalTitle: &goalTitle,
		Metadata:  map[string]any{"progress_value": 42.0},
		Timestamp: time.Now(),
	}
	resp := mapActivity(item)
	if resp.Type != "progress_updated" || resp.GoalID == nil || *resp.GoalTitle != "Close deals" {
		t.Fatalf("unexpected mapping: %+v", resp)
	}
	if resp.Metadata["progress_value"] != 42.0 {
		t.Fatalf("metadata not carried over: %+v", resp.Metadata)
	}
}

package v1

import (
	"time"

	"github.com/lemanjenny/GoalSpark2.0/internal/domain"
)

type authResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        userResponse `json:"user"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role       string    `json:"role"`
	JobTitle   string    `json:"job_title,omitempty"`
	CustomRole string    `json:"custom_role,omitempty"`
	ManagerID  *string   `json:"manager_id,omitempty"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

type goalResponse struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description,omitempty"`
	GoalType           string    `json:"goal_type"`
	Comparison         string    `json:"comparison"`
	TargetValue        float64   `json:"target_value"`
	CurrentValue       float64   `json:"current_value"`
	Unit               string    `json:"unit,omitempty"`
	AssignedTo         []string  `json:"assigned_to"`
	AssignedBy         string    `json:"assigned_by"`
	CycleType          string    `json:"cycle_type"`
	StartDate          time.Time `json:"start_date"`
	EndDate            time.Time `json:"end_date"`
	Status             string    `json:"status"`
	ProgressPercentage float64   `json:"progress_percentage"`
	IsActive           bool      `json:"is_active"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type progressUpdateResponse struct {
	ID            string    `json:"id"`
	GoalID        string    `json:"goal_id"`
	UserID        string    `json:"user_id"`
	PreviousValue float64   `json:"previous_value"`
	NewValue      float64   `json:"new_value"`
	Status        string    `json:"status"`
	Comment       *string   `json:"comment,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

type activityResponse struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	UserID      string         `json:"user_id"`
	UserName    string         `json:"user_name"`
	GoalID      *string        `json:"goal_id,omitempty"`
	GoalTitle   *string        `json:"goal_title,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	Timestamp   time.Time      `json:"timestamp"`
}

func mapUser(user domain.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:       string(user.Role),
		JobTitle:   user.JobTitle,
		CustomRole: user.CustomRole,
		ManagerID:  user.ManagerID,
		IsActive:   user.IsActive,
		CreatedAt:  user.CreatedAt,
	}
}

func mapUsers(users []domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, user := range users {
		out = append(out, mapUser(user))
	}
	return out
}

func mapGoal(goal domain.Goal) goalResponse {
	return goalResponse{
		ID:                 goal.ID,
		Title:              goal.Title,
		Description:        goal.Description,
		GoalType:           string(goal.GoalType),
		Comparison:         string(goal.Comparison),
		TargetValue:        goal.TargetValue,
		CurrentValue:       goal.CurrentValue,
		Unit:               goal.Unit,
		AssignedTo:         goal.AssignedTo,
		AssignedBy:         goal.AssignedBy,
		CycleType:          string(goal.CycleType),
		StartDate:          goal.StartDate,
		EndDate:            goal.EndDate,
		Status:             string(goal.Status),
		ProgressPercentage: goal.ProgressPercentage,
		IsActive:           goal.IsActive,
		CreatedAt:          goal.CreatedAt,
		UpdatedAt:          goal.UpdatedAt,
	}
}

func mapGoals(goals []domain.Goal) []goalResponse {
	out := make([]goalResponse, 0, len(goals))
	for _, goal := range goals {
		out = append(out, mapGoal(goal))
	}
	return out
}

func mapProgressUpdate(update domain.ProgressUpdate) progressUpdateResponse {
	return progressUpdateResponse{
		ID:            update.ID,
		GoalID:        update.GoalID,
		UserID:        update.UserID,
		PreviousValue: update.PreviousValue,
		NewValue:      update.NewValue,
		Status:        string(update.Status),
		Comment:       update.Comment,
		Timestamp:     update.Timestamp,
	}
}

func mapProgressUpdates(updates []domain.ProgressUpdate) []progressUpdateResponse {
	out := make([]progressUpdateResponse, 0, len(updates))
	for _, update := range updates {
		out = append(out, mapProgressUpdate(update))
	}
	return out
}

func mapActivity(item domain.ActivityItem) activityResponse {
	return activityResponse{
		ID:          item.ID,
		Type:        string(item.Type),
		Title:       item.Title,
		Description: item.Description,
		UserID:      item.UserID,
		UserName:    item.UserName,
		GoalID:      item.GoalID,
		GoalTitle:   item.GoalTitle,
		Metadata:    item.Metadata,
		Timestamp:   item.Timestamp,
	}
}

func mapActivities(items []domain.ActivityItem) []activityResponse {
	out := make([]activityResponse, 0, len(items))
	for _, item := range items {
		out = append(out, mapActivity(item))
	}
	return out
}

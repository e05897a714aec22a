package v1

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lemanjenny/GoalSpark2.0/internal/activity"
	"github.com/lemanjenny/GoalSpark2.0/internal/domain"
	"github.com/lemanjenny/GoalSpark2.0/internal/progress"
	"github.com/lemanjenny/GoalSpark2.0/internal/service"
)

type Handler struct {
	service *service.Service
}

func NewHandler(service *service.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/auth/register", h.handleRegister)
	r.Post("/auth/login", h.handleLogin)
	r.Post("/auth/forgot-password", h.handleForgotPassword)
	r.Post("/auth/reset-password", h.handleResetPassword)
	r.Get("/managers", h.handleManagers)

	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)

		r.Get("/auth/me", h.handleMe)
		r.Get("/users/team", h.handleTeamMembers)

		r.Get("/team", h.handleTeamMembers)
		r.Put("/team/{userID}", h.handleUpdateTeamMember)
		r.Post("/team/invite", h.handleInviteTeamMember)

		r.Post("/goals", h.handleCreateGoal)
		r.Get("/goals", h.handleListGoals)
		r.Get("/goals/{goalID}", h.handleGetGoal)
		r.Put("/goals/{goalID}", h.handleUpdateGoal)
		r.Delete("/goals/{goalID}", h.handleDeactivateGoal)

		r.Post("/goals/{goalID}/progress", h.handleSubmitProgress)
		r.Get("/goals/{goalID}/progress", h.handleProgressHistory)

		r.Get("/analytics/team", h.handleTeamAnalytics)
		r.Get("/activities", h.handleActivities)
		r.Get("/activities/unread-count", h.handleUnreadActivityCount)
	})

	return r
}

type registerRequest struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	JobTitle  string  `json:"job_title"`
	ManagerID *string `json:"manager_id"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid payload", nil)
		return
	}
	if fields := requiredFields(map[string]string{
		"email":      req.Email,
		"password":   req.Password,
		"first_name": req.FirstName,
		"last_name":  req.LastName,
	}); len(fields) > 0 {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "missing required fields", fields)
		return
	}
	user, token, err := h.service.Register(r.Context(), service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		JobTitle:  req.JobTitle,
		ManagerID: req.ManagerID,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, authResponse{AccessToken: token, TokenType: "bearer", User: mapUser(user)})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid payload", nil)
		return
	}
	user, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, authResponse{AccessToken: token, TokenType: "bearer", User: mapUser(user)})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, mapUser(currentUser(r)))
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (h *Handler) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid payload", nil)
		return
	}
	if err := h.service.ForgotPassword(r.Context(), req.Email); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "if the email exists, a reset link was sent"})
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

func (h *Handler) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid payload", nil)
		return
	}
	if fields := requiredFields(map[string]string{"token": req.Token, "new_password": req.NewPassword}); len(fields) > 0 {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "missing required fields", fields)
		return
	}
	if err := h.service.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}

func (h *Handler) handleManagers(w http.ResponseWriter, r *http.Request) {
	managers, err := h.service.Managers(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapUsers(managers))
}

func (h *Handler) handleTeamMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.TeamMembers(r.Context(), currentUser(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapUsers(members))
}

type updateTeamMemberRequest struct {
	JobTitle   string `json:"job_title"`
	CustomRole string `json:"custom_role"`
}

func (h *Handler) handleUpdateTeamMember(w http.ResponseWriter, r *http.Request) {
	var req updateTeamMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid payload", nil)
		return
	}
	member, err := h.service.UpdateTeamMember(r.Context(), chi.URLParam(r, "userID"), service.UpdateTeamMemberInput{
		JobTitle:   req.JobTitle,
		CustomRole: req.CustomRole,
	}, currentUser(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapUser(member))
}

type inviteRequest struct {
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	JobTitle   string `json:"job_title"`
	CustomRole string `json:"custom_role"`
}

type inviteResponse struct {
	Employee     userResponse `json:"employee"`
	TempPassword string       `json:"temp_password"`
	Instructions string       `json:"instructions"`
}

func (h *Handler) handleInviteTeamMember(w http.ResponseWriter, r *http.Request) {
	var req inviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid payload", nil)
		return
	}
	if fields := requiredFields(map[string]string{
		"email":      req.Email,
		"first_name": req.FirstName,
		"last_name":  req.LastName,
	}); len(fields) > 0 {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "missing required fields", fields)
		return
	}
	member, tempPassword, err := h.service.InviteTeamMember(r.Context(), service.InviteInput{
		Email:      req.Email,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		JobTitle:   req.JobTitle,
		CustomRole: req.CustomRole,
	}, currentUser(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, inviteResponse{
		Employee:     mapUser(member),
		TempPassword: tempPassword,
		Instructions: "Share the temporary password with the employee; they should change it after their first login.",
	})
}

type goalRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	GoalType    string   `json:"goal_type"`
	Comparison  string   `json:"comparison"`
	TargetValue float64  `json:"target_value"`
	Unit        string   `json:"unit"`
	AssignedTo  []string `json:"assigned_to"`
	CycleType   string   `json:"cycle_type"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
}

func (req goalRequest) validate() map[string]string {
	fields := make(map[string]string)
	if strings.TrimSpace(req.Title) == "" {
		fields["title"] = "required"
	}
	if len(req.AssignedTo) == 0 {
		fields["assigned_to"] = "required"
	}
	if req.Comparison != "" && !progress.ValidComparison(domain.Comparison(req.Comparison)) {
		fields["comparison"] = "invalid"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func (req goalRequest) toCreateInput() (service.CreateGoalInput, map[string]string) {
	startDate, endDate, fields := parseGoalDates(req.StartDate, req.EndDate)
	if fields != nil {
		return service.CreateGoalInput{}, fields
	}
	return service.CreateGoalInput{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		GoalType:    domain.GoalType(req.GoalType),
		Comparison:  defaultComparison(req.Comparison),
		TargetValue: req.TargetValue,
		Unit:        req.Unit,
		AssignedTo:  req.AssignedTo,
		CycleType:   domain.GoalCycle(req.CycleType),
		StartDate:   startDate,
		EndDate:     endDate,
	}, nil
}

func (h *Handler) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid payload", nil)
		return
	}
	if fields := req.validate(); fields != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid goal", fields)
		return
	}
	input, fields := req.toCreateInput()
	if fields != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid goal", fields)
		return
	}
	goal, err := h.service.CreateGoal(r.Context(), input, currentUser(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapGoal(goal))
}

func (h *Handler) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := h.service.GoalsForUser(r.Context(), currentUser(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapGoals(goals))
}

func (h *Handler) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	goal, err := h.service.GetGoalForUser(r.Context(), chi.URLParam(r, "goalID"), currentUser(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapGoal(goal))
}

func (h *Handler) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid payload", nil)
		return
	}
	if fields := req.validate(); fields != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid goal", fields)
		return
	}
	startDate, endDate, fields := parseGoalDates(req.StartDate, req.EndDate)
	if fields != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid goal", fields)
		return
	}
	goal, err := h.service.UpdateGoal(r.Context(), chi.URLParam(r, "goalID"), service.UpdateGoalInput{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		GoalType:    domain.GoalType(req.GoalType),
		Comparison:  defaultComparison(req.Comparison),
		TargetValue: req.TargetValue,
		Unit:        req.Unit,
		AssignedTo:  req.AssignedTo,
		CycleType:   domain.GoalCycle(req.CycleType),
		StartDate:   startDate,
		EndDate:     endDate,
	}, currentUser(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapGoal(goal))
}

func (h *Handler) handleDeactivateGoal(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeactivateGoal(r.Context(), chi.URLParam(r, "goalID"), currentUser(r)); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type submitProgressRequest struct {
	NewValue float64 `json:"new_value"`
	Status   string  `json:"status"`
	Comment  *string `json:"comment"`
}

func (h *Handler) handleSubmitProgress(w http.ResponseWriter, r *http.Request) {
	var req submitProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid payload", nil)
		return
	}
	if !progress.ValidStatus(domain.GoalStatus(req.Status)) {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid status", map[string]string{"status": "on_track|at_risk|off_track"})
		return
	}
	update, err := h.service.SubmitProgress(r.Context(), chi.URLParam(r, "goalID"), service.SubmitProgressInput{
		NewValue: req.NewValue,
		Status:   domain.GoalStatus(req.Status),
		Comment:  req.Comment,
	}, currentUser(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapProgressUpdate(update))
}

func (h *Handler) handleProgressHistory(w http.ResponseWriter, r *http.Request) {
	updates, err := h.service.ProgressHistory(r.Context(), chi.URLParam(r, "goalID"), currentUser(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapProgressUpdates(updates))
}

func (h *Handler) handleTeamAnalytics(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.service.TeamAnalytics(r.Context(), currentUser(r), time.Now().UTC())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (h *Handler) handleActivities(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid limit", map[string]string{"limit": "positive integer"})
			return
		}
		limit = parsed
	}
	activityType := domain.ActivityType(r.URL.Query().Get("activity_type"))
	if activityType != "" && !activity.ValidType(activityType) {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid activity_type", map[string]string{"activity_type": "invalid"})
		return
	}
	items, err := h.service.RecentActivities(r.Context(), currentUser(r), activityType, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapActivities(items))
}

func (h *Handler) handleUnreadActivityCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.UnreadActivityCount(r.Context(), currentUser(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"unread_count": count})
}

func requiredFields(values map[string]string) map[string]string {
	fields := make(map[string]string)
	for name, value := range values {
		if strings.TrimSpace(value) == "" {
			fields[name] = "required"
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func defaultComparison(raw string) domain.Comparison {
	if raw == "" {
		return domain.ComparisonGreaterThan
	}
	return domain.Comparison(raw)
}

func parseGoalDates(start, end string) (time.Time, time.Time, map[string]string) {
	startDate, err := parseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, map[string]string{"start_date": "invalid"}
	}
	endDate, err := parseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, map[string]string{"end_date": "invalid"}
	}
	return startDate, endDate, nil
}

// parseDate accepts RFC 3339 timestamps or bare dates; empty values are
// allowed and come back as the zero time.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts, nil
	}
	return time.Parse("2006-01-02", value)
}

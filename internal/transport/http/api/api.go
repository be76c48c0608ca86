// Package api holds the JSON request and response bodies of the HTTP API.
package api

import "time"

// ErrorCode classifies an error response.
type ErrorCode string

const (
	INVALIDARGUMENT    ErrorCode = "INVALID_ARGUMENT"
	UNAUTHENTICATED    ErrorCode = "UNAUTHENTICATED"
	INVALIDCREDENTIALS ErrorCode = "INVALID_CREDENTIALS"
	NOTFOUND           ErrorCode = "NOT_FOUND"
	CONFLICT           ErrorCode = "CONFLICT"
	UNKNOWNCOLUMN      ErrorCode = "UNKNOWN_COLUMN"
	NODRAG             ErrorCode = "NO_DRAG"
	DRAGEXPIRED        ErrorCode = "DRAG_EXPIRED"
	TIMEOUT            ErrorCode = "TIMEOUT"
	INTERNAL           ErrorCode = "INTERNAL"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody describes the failure. Redirect, when set, is the page the client should go to.
type ErrorBody struct {
	Code     ErrorCode `json:"code"`
	Message  string    `json:"message"`
	Redirect string    `json:"redirect,omitempty"`
}

// NewError builds an ErrorResponse.
func NewError(code ErrorCode, message, redirect string) ErrorResponse {
	return ErrorResponse{Error: ErrorBody{Code: code, Message: message, Redirect: redirect}}
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session describes a signed-in session.
type Session struct {
	Token     string    `json:"token,omitempty"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TeamMember is a roster entry.
type TeamMember struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

// TeamMemberInput is the body of roster writes.
type TeamMemberInput struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// Project is a project with its team snapshot. Dates use YYYY-MM-DD.
type Project struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	StartDate   string       `json:"start_date"`
	EndDate     string       `json:"end_date"`
	Team        []TeamMember `json:"team"`
}

// ProjectInput is the body of project writes. The team is given by member ids.
type ProjectInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	TeamIDs     []string `json:"team_ids"`
}

// ProjectList is the project list with the store's state.
type ProjectList struct {
	Projects []Project `json:"projects"`
	Loading  bool      `json:"loading"`
	Error    string    `json:"error,omitempty"`
}

// Task is a board task.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      string       `json:"status"`
	DueDate     string       `json:"due_date,omitempty"`
	Priority    string       `json:"priority"`
	Team        []TeamMember `json:"team"`
	ProjectID   string       `json:"project_id,omitempty"`
}

// TaskInput is the body of task writes. Empty status and priority select todo and medium.
type TaskInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	DueDate     string   `json:"due_date"`
	Priority    string   `json:"priority"`
	TeamIDs     []string `json:"team_ids"`
}

// Column is one board column.
type Column struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Tasks []Task `json:"tasks"`
}

// Drag is the board's drag slot while a drag is in progress.
type Drag struct {
	TaskID    string    `json:"task_id"`
	From      string    `json:"from"`
	StartedAt time.Time `json:"started_at"`
}

// Board is a board snapshot.
type Board struct {
	ProjectID *string  `json:"project_id"`
	Columns   []Column `json:"columns"`
	Dropped   int      `json:"dropped"`
	Drag      *Drag    `json:"drag"`
}

// DragRequest is the body of POST /api/board/drag.
type DragRequest struct {
	TaskID string `json:"task_id"`
	From   string `json:"from"`
}

// Dashboard is the landing page summary.
type Dashboard struct {
	TotalProjects        int       `json:"total_projects"`
	ActiveProjects       int       `json:"active_projects"`
	CompletedProjects    int       `json:"completed_projects"`
	CompletionPercentage int       `json:"completion_percentage"`
	TotalTeamMembers     int       `json:"total_team_members"`
	ActiveTeamMembers    int       `json:"active_team_members"`
	RecentProjects       []Project `json:"recent_projects"`
}

// MemberWorkload is one member's task counts.
type MemberWorkload struct {
	TeamMember
	TasksCount      int    `json:"tasks_count"`
	TodoTasks       int    `json:"todo_tasks"`
	InProgressTasks int    `json:"in_progress_tasks"`
	DoneTasks       int    `json:"done_tasks"`
	PrimaryTask     string `json:"primary_task"`
}

// Notification is a queued user-visible message.
type Notification struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Variant     string    `json:"variant"`
	CreatedAt   time.Time `json:"created_at"`
}

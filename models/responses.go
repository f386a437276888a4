package models

import "time"

// TaskResponse is the wire shape of a task. Timestamps are rendered in the
// reference timezone so every client sees the same local instants.
type TaskResponse struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Status      Status  `json:"status"`
	Code        string  `json:"code"`
	DueDate     *string `json:"due_date"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// ErrorResponse is the failure envelope. Kind distinguishes policy rejections
// from infrastructure errors so the UI can render them differently.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// MessageResponse is the success envelope for operations with no entity body.
type MessageResponse struct {
	Message string `json:"message"`
}

// NewTaskResponse renders t in loc.
func NewTaskResponse(t *Task, loc *time.Location) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Code:        t.Code,
		CreatedAt:   t.CreatedAt.In(loc).Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.In(loc).Format(time.RFC3339),
	}
	if t.DueDate != nil {
		due := t.DueDate.In(loc).Format(time.RFC3339)
		resp.DueDate = &due
	}
	return resp
}

// NewTaskListResponse renders tasks in loc, preserving order.
func NewTaskListResponse(tasks []Task, loc *time.Location) []TaskResponse {
	responses := make([]TaskResponse, len(tasks))
	for i := range tasks {
		responses[i] = NewTaskResponse(&tasks[i], loc)
	}
	return responses
}

package models

// CreateTaskRequest carries the fields accepted by POST /api/tasks. DueDate is
// a raw string; the service normalizes it into the reference timezone before
// storage.
type CreateTaskRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Status      *Status `json:"status"`
	Code        string  `json:"code" binding:"required"`
	DueDate     *string `json:"due_date"`
}

// UpdateTaskRequest carries a partial update for PUT /api/tasks/:id. A nil
// field means "leave unchanged".
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *Status `json:"status"`
	Code        *string `json:"code"`
	DueDate     *string `json:"due_date"`
}

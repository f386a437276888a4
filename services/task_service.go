package services

import (
	"context"
	"errors"
	"regexp"
	"time"
	"unicode/utf8"

	"taskboard/models"
	"taskboard/utils"

	"gorm.io/gorm"
)

var codePattern = regexp.MustCompile(`^[A-Za-z0-9]{5}$`)

// TaskService owns every read and write against the tasks table. It validates
// at the boundary, normalizes due dates into the reference timezone, and
// translates gorm errors into the tagged error type.
type TaskService struct {
	db  *gorm.DB
	loc *time.Location
}

func NewTaskService(db *gorm.DB, loc *time.Location) *TaskService {
	return &TaskService{db: db, loc: loc}
}

// Location returns the reference timezone the service normalizes into.
func (s *TaskService) Location() *time.Location {
	return s.loc
}

// List returns all tasks, optionally restricted to one status, ordered by id.
func (s *TaskService) List(ctx context.Context, status *models.Status) ([]models.Task, error) {
	query := s.db.WithContext(ctx).Order("id")
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	var tasks []models.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, models.NewTransportError("failed to load tasks", err)
	}
	return tasks, nil
}

// Get returns the task with the given id.
func (s *TaskService) Get(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	if err := s.db.WithContext(ctx).First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("task not found")
		}
		return nil, models.NewTransportError("failed to load task", err)
	}
	return &task, nil
}

// Create validates and inserts a new task. Status defaults to pending.
func (s *TaskService) Create(ctx context.Context, req *models.CreateTaskRequest) (*models.Task, error) {
	if err := s.validateTitle(req.Title); err != nil {
		return nil, err
	}
	if err := s.validateCode(ctx, req.Code, 0); err != nil {
		return nil, err
	}

	task := models.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      models.StatusPending,
		Code:        req.Code,
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, models.NewValidationError("invalid status value")
		}
		task.Status = *req.Status
	}
	if req.DueDate != nil {
		due, err := utils.NormalizeDueDate(*req.DueDate, s.loc)
		if err != nil {
			return nil, models.NewValidationError("due_date is not a valid timestamp")
		}
		task.DueDate = &due
	}

	if err := s.db.WithContext(ctx).Create(&task).Error; err != nil {
		return nil, models.NewTransportError("failed to create task", err)
	}
	return &task, nil
}

// Update applies a partial update; nil request fields are left unchanged.
// Status changes arrive here already vetted by the transition guard.
func (s *TaskService) Update(ctx context.Context, id uint, req *models.UpdateTaskRequest) (*models.Task, error) {
	task, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if err := s.validateTitle(*req.Title); err != nil {
			return nil, err
		}
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Code != nil {
		if err := s.validateCode(ctx, *req.Code, task.ID); err != nil {
			return nil, err
		}
		task.Code = *req.Code
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, models.NewValidationError("invalid status value")
		}
		task.Status = *req.Status
	}
	if req.DueDate != nil {
		due, err := utils.NormalizeDueDate(*req.DueDate, s.loc)
		if err != nil {
			return nil, models.NewValidationError("due_date is not a valid timestamp")
		}
		task.DueDate = &due
	}

	if err := s.db.WithContext(ctx).Save(task).Error; err != nil {
		return nil, models.NewTransportError("failed to update task", err)
	}
	return task, nil
}

// UpdateStatus persists a status-only correction for the reconciler.
func (s *TaskService) UpdateStatus(ctx context.Context, id uint, status models.Status) (*models.Task, error) {
	task, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(task).Update("status", status).Error; err != nil {
		return nil, models.NewTransportError("failed to update task status", err)
	}
	return task, nil
}

// Delete removes the task with the given id.
func (s *TaskService) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Task{}, id)
	if result.Error != nil {
		return models.NewTransportError("failed to delete task", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("task not found")
	}
	return nil
}

func (s *TaskService) validateTitle(title string) error {
	if title == "" {
		return models.NewValidationError("title is required")
	}
	if utf8.RuneCountInString(title) > 100 {
		return models.NewValidationError("title must be at most 100 characters")
	}
	return nil
}

// validateCode checks format and uniqueness. excludeID skips the task being
// updated so a task may keep its own code.
func (s *TaskService) validateCode(ctx context.Context, code string, excludeID uint) error {
	if !codePattern.MatchString(code) {
		return models.NewValidationError("code must be exactly 5 alphanumeric characters")
	}
	var count int64
	query := s.db.WithContext(ctx).Model(&models.Task{}).Where("code = ?", code)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return models.NewTransportError("failed to check code uniqueness", err)
	}
	if count > 0 {
		return models.NewValidationError("code is already in use by another task")
	}
	return nil
}

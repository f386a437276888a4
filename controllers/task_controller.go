package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"taskboard/config"
	"taskboard/models"
	"taskboard/services"

	"github.com/gin-gonic/gin"
)

// TaskController serves the five REST operations under /api/tasks. Listings
// run a reconciliation pass first so clients always see corrected statuses.
type TaskController struct {
	tasks      *services.TaskService
	reconciler *services.Reconciler
	loc        *time.Location
}

func NewTaskController(tasks *services.TaskService, reconciler *services.Reconciler, loc *time.Location) *TaskController {
	return &TaskController{tasks: tasks, reconciler: reconciler, loc: loc}
}

// ListTasks handles GET /api/tasks. An optional ?status= query restricts the
// result for the board columns and table filters.
func (tc *TaskController) ListTasks(c *gin.Context) {
	var filter *models.Status
	if raw := c.Query("status"); raw != "" {
		status := models.Status(raw)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "invalid status value",
				Kind:  string(models.ErrKindValidation),
			})
			return
		}
		filter = &status
	}

	ctx := c.Request.Context()
	tasks, ok := services.CachedTaskList(ctx)
	if !ok {
		var err error
		tasks, err = tc.reconciler.Pass(ctx)
		if err != nil {
			tc.respondError(c, err)
			return
		}
		services.StoreTaskList(ctx, tasks)
	}

	if filter != nil {
		filtered := tasks[:0:0]
		for _, t := range tasks {
			if t.Status == *filter {
				filtered = append(filtered, t)
			}
		}
		tasks = filtered
	}

	c.JSON(http.StatusOK, models.NewTaskListResponse(tasks, tc.loc))
}

// GetTask handles GET /api/tasks/:id.
func (tc *TaskController) GetTask(c *gin.Context) {
	id, ok := tc.taskID(c)
	if !ok {
		return
	}
	task, err := tc.tasks.Get(c.Request.Context(), id)
	if err != nil {
		tc.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewTaskResponse(task, tc.loc))
}

// CreateTask handles POST /api/tasks.
func (tc *TaskController) CreateTask(c *gin.Context) {
	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: err.Error(),
			Kind:  string(models.ErrKindValidation),
		})
		return
	}

	task, err := tc.tasks.Create(c.Request.Context(), &req)
	if err != nil {
		tc.respondError(c, err)
		return
	}
	services.InvalidateTaskListCache(c.Request.Context())
	c.JSON(http.StatusCreated, models.NewTaskResponse(task, tc.loc))
}

// UpdateTask handles PUT /api/tasks/:id. A request that changes status is a
// user-initiated transition and must clear the transition guard first; a
// rejection returns 409 with the reason and issues no write.
func (tc *TaskController) UpdateTask(c *gin.Context) {
	id, ok := tc.taskID(c)
	if !ok {
		return
	}
	var req models.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: err.Error(),
			Kind:  string(models.ErrKindValidation),
		})
		return
	}

	ctx := c.Request.Context()
	task, err := tc.tasks.Get(ctx, id)
	if err != nil {
		tc.respondError(c, err)
		return
	}

	if req.Status != nil && *req.Status != task.Status {
		if !req.Status.Valid() {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "invalid status value",
				Kind:  string(models.ErrKindValidation),
			})
			return
		}
		decision := services.CheckTransition(task, *req.Status, time.Now().In(tc.loc))
		if !decision.Allowed {
			c.JSON(http.StatusConflict, models.ErrorResponse{
				Error: decision.Reason,
				Kind:  "policy_rejection",
			})
			return
		}
	}

	updated, err := tc.tasks.Update(ctx, id, &req)
	if err != nil {
		tc.respondError(c, err)
		return
	}
	services.InvalidateTaskListCache(ctx)
	c.JSON(http.StatusOK, models.NewTaskResponse(updated, tc.loc))
}

// DeleteTask handles DELETE /api/tasks/:id.
func (tc *TaskController) DeleteTask(c *gin.Context) {
	id, ok := tc.taskID(c)
	if !ok {
		return
	}
	if err := tc.tasks.Delete(c.Request.Context(), id); err != nil {
		tc.respondError(c, err)
		return
	}
	services.InvalidateTaskListCache(c.Request.Context())
	c.JSON(http.StatusOK, models.MessageResponse{Message: "task deleted"})
}

// taskID parses the :id parameter. A non-numeric id is a validation error,
// distinct from a well-formed id with no matching row.
func (tc *TaskController) taskID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "invalid task id",
			Kind:  string(models.ErrKindValidation),
		})
		return 0, false
	}
	return uint(id), true
}

// respondError maps tagged service errors onto HTTP statuses. Transport
// details are logged, never returned to the caller.
func (tc *TaskController) respondError(c *gin.Context, err error) {
	var apiErr *models.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Kind {
		case models.ErrKindValidation:
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: apiErr.Message,
				Kind:  string(apiErr.Kind),
			})
			return
		case models.ErrKindNotFound:
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: apiErr.Message,
				Kind:  string(apiErr.Kind),
			})
			return
		default:
			config.Logger.Errorw("task store failure",
				"path", c.Request.URL.Path,
				"error", apiErr.Err,
			)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error: apiErr.Message,
				Kind:  string(apiErr.Kind),
			})
			return
		}
	}

	config.Logger.Errorw("unexpected failure", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error: "internal server error",
		Kind:  string(models.ErrKindUnknown),
	})
}

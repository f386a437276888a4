package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"taskboard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection so concurrent reconciler writes share the same
	// in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Task{}))
	return db
}

func strPtr(s string) *string {
	return &s
}

func statusPtr(s models.Status) *models.Status {
	return &s
}

func TestCreateDefaultsAndRoundTrip(t *testing.T) {
	svc := NewTaskService(setupTestDB(t), time.UTC)
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.CreateTaskRequest{
		Title:       "Write spec",
		Description: "first draft",
		Code:        "AB123",
		DueDate:     strPtr("2030-01-02T15:04:05"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, created.Status)
	assert.NotZero(t, created.ID)
	assert.False(t, created.UpdatedAt.Before(created.CreatedAt))

	fetched, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, fetched.Title)
	assert.Equal(t, created.Description, fetched.Description)
	assert.Equal(t, created.Code, fetched.Code)
	assert.Equal(t, created.Status, fetched.Status)
	require.NotNil(t, fetched.DueDate)
	assert.True(t, fetched.DueDate.Equal(time.Date(2030, 1, 2, 15, 4, 5, 0, time.UTC)),
		"offset-less due date must be read as reference-zone local time")
}

func TestCreateValidation(t *testing.T) {
	svc := NewTaskService(setupTestDB(t), time.UTC)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     models.CreateTaskRequest
		wantMsg string
	}{
		{"empty title", models.CreateTaskRequest{Code: "AB123"}, "title is required"},
		{"title too long", models.CreateTaskRequest{Title: strings.Repeat("x", 101), Code: "AB123"}, "title must be at most 100 characters"},
		{"code too short", models.CreateTaskRequest{Title: "t", Code: "AB12"}, "code must be exactly 5 alphanumeric characters"},
		{"code too long", models.CreateTaskRequest{Title: "t", Code: "AB1234"}, "code must be exactly 5 alphanumeric characters"},
		{"code not alphanumeric", models.CreateTaskRequest{Title: "t", Code: "AB-12"}, "code must be exactly 5 alphanumeric characters"},
		{"bad status", models.CreateTaskRequest{Title: "t", Code: "AB123", Status: statusPtr("done")}, "invalid status value"},
		{"bad due date", models.CreateTaskRequest{Title: "t", Code: "AB123", DueDate: strPtr("next tuesday")}, "due_date is not a valid timestamp"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, &tt.req)
			require.Error(t, err)
			var apiErr *models.Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, models.ErrKindValidation, apiErr.Kind)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
		})
	}
}

func TestCodeUniqueness(t *testing.T) {
	svc := NewTaskService(setupTestDB(t), time.UTC)
	ctx := context.Background()

	first, err := svc.Create(ctx, &models.CreateTaskRequest{Title: "first", Code: "AB123"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, &models.CreateTaskRequest{Title: "second", Code: "CD456"})
	require.NoError(t, err)

	// Duplicate on create is rejected before the write.
	_, err = svc.Create(ctx, &models.CreateTaskRequest{Title: "third", Code: "AB123"})
	var apiErr *models.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, models.ErrKindValidation, apiErr.Kind)
	assert.Equal(t, "code is already in use by another task", apiErr.Message)

	// Updating to another task's code is rejected.
	_, err = svc.Update(ctx, second.ID, &models.UpdateTaskRequest{Code: strPtr("AB123")})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, models.ErrKindValidation, apiErr.Kind)

	// Updating a task to its own code is fine.
	updated, err := svc.Update(ctx, first.ID, &models.UpdateTaskRequest{Code: strPtr("AB123"), Title: strPtr("renamed")})
	require.NoError(t, err)
	assert.Equal(t, "AB123", updated.Code)
	assert.Equal(t, "renamed", updated.Title)
}

func TestUpdatePartial(t *testing.T) {
	svc := NewTaskService(setupTestDB(t), time.UTC)
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.CreateTaskRequest{
		Title: "original", Description: "keep me", Code: "AB123",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, &models.UpdateTaskRequest{
		DueDate: strPtr("2030-06-01T09:00:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "original", updated.Title)
	assert.Equal(t, "keep me", updated.Description)
	require.NotNil(t, updated.DueDate)
	assert.True(t, updated.DueDate.Equal(time.Date(2030, 6, 1, 9, 0, 0, 0, time.UTC)))
}

func TestGetAndDeleteMissing(t *testing.T) {
	svc := NewTaskService(setupTestDB(t), time.UTC)
	ctx := context.Background()

	var apiErr *models.Error

	_, err := svc.Get(ctx, 9999)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, models.ErrKindNotFound, apiErr.Kind)

	err = svc.Delete(ctx, 9999)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, models.ErrKindNotFound, apiErr.Kind)
}

func TestDelete(t *testing.T) {
	svc := NewTaskService(setupTestDB(t), time.UTC)
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.CreateTaskRequest{Title: "doomed", Code: "AB123"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	var apiErr *models.Error
	_, err = svc.Get(ctx, created.ID)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, models.ErrKindNotFound, apiErr.Kind)
}

func TestListStatusFilter(t *testing.T) {
	svc := NewTaskService(setupTestDB(t), time.UTC)
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.CreateTaskRequest{Title: "a", Code: "AA111"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &models.CreateTaskRequest{Title: "b", Code: "BB222", Status: statusPtr(models.StatusCompleted)})
	require.NoError(t, err)

	all, err := svc.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	completed, err := svc.List(ctx, statusPtr(models.StatusCompleted))
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, "b", completed[0].Title)
}

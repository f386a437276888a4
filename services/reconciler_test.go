package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"taskboard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestReconciler(t *testing.T) (*Reconciler, *TaskService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	svc := NewTaskService(db, time.UTC)
	return NewReconciler(svc, 0, zap.NewNop().Sugar()), svc, db
}

func seedTask(t *testing.T, db *gorm.DB, title, code string, status models.Status, due *time.Time) models.Task {
	t.Helper()
	task := models.Task{Title: title, Code: code, Status: status, DueDate: due}
	require.NoError(t, db.Create(&task).Error)
	return task
}

func TestPassFlipsStaleActiveTasksToOverdue(t *testing.T) {
	rec, _, db := newTestReconciler(t)
	past := timePtr(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	future := timePtr(time.Now().UTC().Add(24 * time.Hour))

	stale := seedTask(t, db, "Write spec", "AB123", models.StatusPending, past)
	seedTask(t, db, "not due yet", "CD456", models.StatusInProgress, future)
	seedTask(t, db, "already done", "EF789", models.StatusCompleted, past)
	seedTask(t, db, "no due date", "GH012", models.StatusPending, nil)

	tasks, err := rec.Pass(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 4)

	byCode := map[string]models.Status{}
	for _, task := range tasks {
		byCode[task.Code] = task.Status
	}
	assert.Equal(t, models.StatusOverdue, byCode["AB123"])
	assert.Equal(t, models.StatusInProgress, byCode["CD456"])
	assert.Equal(t, models.StatusCompleted, byCode["EF789"])
	assert.Equal(t, models.StatusPending, byCode["GH012"])

	// The correction was persisted, not just reported.
	var persisted models.Task
	require.NoError(t, db.First(&persisted, stale.ID).Error)
	assert.Equal(t, models.StatusOverdue, persisted.Status)
}

func TestPassRollsBackOverdueWithFutureDue(t *testing.T) {
	rec, _, db := newTestReconciler(t)
	future := timePtr(time.Now().UTC().Add(24 * time.Hour))

	task := seedTask(t, db, "due date pushed out", "AB123", models.StatusOverdue, future)

	tasks, err := rec.Pass(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, models.StatusPending, tasks[0].Status)

	var persisted models.Task
	require.NoError(t, db.First(&persisted, task.ID).Error)
	assert.Equal(t, models.StatusPending, persisted.Status)
}

func TestPassIsIdempotent(t *testing.T) {
	rec, _, db := newTestReconciler(t)
	past := timePtr(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))

	seedTask(t, db, "stale one", "AB123", models.StatusPending, past)
	seedTask(t, db, "stale two", "CD456", models.StatusInProgress, past)

	var updates atomic.Int64
	require.NoError(t, db.Callback().Update().After("gorm:update").Register("test_count_updates", func(tx *gorm.DB) {
		updates.Add(1)
	}))

	_, err := rec.Pass(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, updates.Load())

	// No time has advanced and no due date changed: the second pass must not
	// issue any write.
	_, err = rec.Pass(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, updates.Load())
}

func TestPassFallsBackLocallyWhenWriteFails(t *testing.T) {
	rec, _, db := newTestReconciler(t)
	past := timePtr(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))

	task := seedTask(t, db, "stale", "AB123", models.StatusPending, past)

	require.NoError(t, db.Callback().Update().Before("gorm:update").Register("test_fail_updates", func(tx *gorm.DB) {
		_ = tx.AddError(errors.New("injected write failure"))
	}))

	tasks, err := rec.Pass(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	// The returned list reflects the policy verdict even though the write
	// failed; the stored row is untouched.
	assert.Equal(t, models.StatusOverdue, tasks[0].Status)

	require.NoError(t, db.Callback().Update().Remove("test_fail_updates"))
	var persisted models.Task
	require.NoError(t, db.First(&persisted, task.ID).Error)
	assert.Equal(t, models.StatusPending, persisted.Status)
}

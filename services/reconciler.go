package services

import (
	"context"
	"sync"
	"time"

	"taskboard/models"

	"go.uber.org/zap"
)

// Reconciler sweeps the task list and corrects drifted statuses: active tasks
// whose due date has passed become Overdue, and Overdue tasks whose due date
// was pushed into the future roll back to Pending. The sweep is best-effort
// and idempotent; a second pass with no intervening edits writes nothing.
type Reconciler struct {
	tasks    *TaskService
	interval time.Duration
	logger   *zap.SugaredLogger
}

func NewReconciler(tasks *TaskService, interval time.Duration, logger *zap.SugaredLogger) *Reconciler {
	return &Reconciler{tasks: tasks, interval: interval, logger: logger}
}

// Pass loads every task and reconciles the lot. The returned list reflects all
// corrections, including local fallbacks for writes that failed.
func (r *Reconciler) Pass(ctx context.Context) ([]models.Task, error) {
	tasks, err := r.tasks.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	return r.reconcile(ctx, tasks), nil
}

func (r *Reconciler) reconcile(ctx context.Context, tasks []models.Task) []models.Task {
	// One instant for the whole pass so every task is judged against the
	// same reference time.
	now := time.Now().In(r.tasks.Location())

	type change struct {
		idx    int
		target models.Status
	}
	var changes []change
	for i := range tasks {
		switch {
		case ShouldBecomeOverdue(&tasks[i], now):
			changes = append(changes, change{idx: i, target: models.StatusOverdue})
		case ShouldLeaveOverdue(&tasks[i], now):
			changes = append(changes, change{idx: i, target: models.StatusPending})
		}
	}
	if len(changes) == 0 {
		return tasks
	}

	// Each change touches a distinct task, so the writes are independent and
	// may land in any order. The pass completes only once all have settled.
	var wg sync.WaitGroup
	for _, ch := range changes {
		wg.Add(1)
		go func(ch change) {
			defer wg.Done()
			updated, err := r.tasks.UpdateStatus(ctx, tasks[ch.idx].ID, ch.target)
			if err != nil {
				// Best-effort: keep the policy's verdict locally so the
				// rendered list is consistent even though persistence lagged.
				r.logger.Warnw("status reconciliation write failed",
					"taskID", tasks[ch.idx].ID,
					"target", ch.target,
					"error", err,
				)
				tasks[ch.idx].Status = ch.target
				return
			}
			tasks[ch.idx] = *updated
		}(ch)
	}
	wg.Wait()

	InvalidateTaskListCache(ctx)
	return tasks
}

// Run executes the sweep on a timer until ctx is cancelled. A non-positive
// interval disables the loop; listings still reconcile synchronously.
func (r *Reconciler) Run(ctx context.Context) {
	if r.interval <= 0 {
		return
	}
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := r.Pass(ctx); err != nil {
				r.logger.Errorw("reconciliation pass failed", "error", err)
			}
		}
	}
}

package services

import (
	"context"
	"encoding/json"
	"time"

	"taskboard/config"
	"taskboard/models"
)

const (
	taskListCacheKey = "taskboard:tasks"
	taskListCacheTTL = 30 * time.Second
)

// The list cache is optional: every function here is a no-op when redis was
// not configured. The TTL bounds how stale a cached listing can get between
// reconciliation passes.

// CachedTaskList returns the cached full task list, if present.
func CachedTaskList(ctx context.Context) ([]models.Task, bool) {
	if config.RedisClient == nil {
		return nil, false
	}
	payload, err := config.RedisClient.Get(ctx, taskListCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var tasks []models.Task
	if err := json.Unmarshal(payload, &tasks); err != nil {
		return nil, false
	}
	return tasks, true
}

// StoreTaskList caches the full task list.
func StoreTaskList(ctx context.Context, tasks []models.Task) {
	if config.RedisClient == nil {
		return
	}
	payload, err := json.Marshal(tasks)
	if err != nil {
		return
	}
	config.RedisClient.Set(ctx, taskListCacheKey, payload, taskListCacheTTL)
}

// InvalidateTaskListCache drops the cached list after any mutation.
func InvalidateTaskListCache(ctx context.Context) {
	if config.RedisClient == nil {
		return
	}
	config.RedisClient.Del(ctx, taskListCacheKey)
}

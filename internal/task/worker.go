package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const progressKeyFmt = "task:progress:%s"

// ProgressKey is the redis key holding a task's live progress percentage.
func ProgressKey(taskID string) string {
	return fmt.Sprintf(progressKeyFmt, taskID)
}

// Handler runs one task. report publishes progress in [0,100]; the returned
// map is stored as the task result.
type Handler func(ctx context.Context, t *ProcessingTask, report func(percent int)) (map[string]interface{}, error)

// Worker runs queued processing tasks in the background, one at a time.
type Worker struct {
	db       *gorm.DB
	rdb      *redis.Client
	handlers map[Type]Handler
	queue    chan string
	stop     chan struct{}
}

func NewWorker(db *gorm.DB, rdb *redis.Client) *Worker {
	return &Worker{
		db:       db,
		rdb:      rdb,
		handlers: make(map[Type]Handler),
		queue:    make(chan string, 64),
		stop:     make(chan struct{}),
	}
}

// Register installs the handler for a task type. Must happen before Start.
func (w *Worker) Register(tp Type, h Handler) {
	w.handlers[tp] = h
}

// Enqueue persists a pending task row and schedules it for execution.
func (w *Worker) Enqueue(t *ProcessingTask) error {
	t.Status = StatusPending
	t.Progress = 0
	if err := w.db.Create(t).Error; err != nil {
		return fmt.Errorf("persist task: %w", err)
	}
	select {
	case w.queue <- t.TaskID:
		return nil
	default:
		return errors.New("task queue full")
	}
}

// Start begins the processing loop
func (w *Worker) Start() {
	log.Printf("[TaskWorker] Starting task worker")
	for {
		select {
		case taskID := <-w.queue:
			w.run(taskID)
		case <-w.stop:
			log.Printf("[TaskWorker] Stopping task worker")
			return
		}
	}
}

// Stop gracefully stops the worker
func (w *Worker) Stop() {
	close(w.stop)
}

func (w *Worker) run(taskID string) {
	var t ProcessingTask
	if err := w.db.Where("task_id = ?", taskID).First(&t).Error; err != nil {
		log.Printf("[TaskWorker] ERROR loading task %s: %v", taskID, err)
		return
	}
	handler, ok := w.handlers[t.Type]
	if !ok {
		w.fail(&t, fmt.Sprintf("no handler for task type %s", t.Type))
		return
	}

	now := time.Now().UTC()
	t.Status = StatusRunning
	t.StartedAt = &now
	if err := w.db.Save(&t).Error; err != nil {
		log.Printf("[TaskWorker] ERROR marking task %s running: %v", taskID, err)
		return
	}

	log.Printf("[TaskWorker] Running %s task %s", t.Type, t.TaskID)
	start := time.Now()
	result, err := handler(context.Background(), &t, func(percent int) {
		w.publishProgress(&t, percent)
	})
	if err != nil {
		log.Printf("[TaskWorker] Task %s failed after %s: %v", t.TaskID, time.Since(start).Round(time.Millisecond), err)
		w.fail(&t, err.Error())
		return
	}

	done := time.Now().UTC()
	t.Status = StatusCompleted
	t.Progress = 100
	t.CompletedAt = &done
	if result != nil {
		if raw, err := json.Marshal(result); err == nil {
			t.Result = raw
		}
	}
	if err := w.db.Save(&t).Error; err != nil {
		log.Printf("[TaskWorker] ERROR saving completed task %s: %v", t.TaskID, err)
		return
	}
	w.publishProgress(&t, 100)
	log.Printf("[TaskWorker] Task %s complete (took %s)", t.TaskID, time.Since(start).Round(time.Millisecond))
}

func (w *Worker) fail(t *ProcessingTask, msg string) {
	now := time.Now().UTC()
	t.Status = StatusFailed
	t.ErrorMessage = msg
	t.CompletedAt = &now
	if err := w.db.Save(t).Error; err != nil {
		log.Printf("[TaskWorker] ERROR saving failed task %s: %v", t.TaskID, err)
	}
}

// publishProgress mirrors progress into the task row and a short-lived redis
// key consumed by the progress websocket.
func (w *Worker) publishProgress(t *ProcessingTask, percent int) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	t.Progress = percent
	if err := w.db.Model(&ProcessingTask{}).
		Where("task_id = ?", t.TaskID).
		Update("progress", percent).Error; err != nil {
		log.Printf("[TaskWorker] ERROR updating progress for %s: %v", t.TaskID, err)
	}
	if w.rdb != nil {
		ctx := context.Background()
		_ = w.rdb.Set(ctx, ProgressKey(t.TaskID), percent, time.Hour).Err()
	}
}

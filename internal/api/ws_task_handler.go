package api

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	redislib "github.com/redis/go-redis/v9"

	"smart-vocab/internal/auth"
	"smart-vocab/internal/config"
	"smart-vocab/internal/db"
	"smart-vocab/internal/task"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const wsProgressPoll = 500 * time.Millisecond

type wsProgressFrame struct {
	TaskID   string `json:"task_id"`
	Status   string `json:"status"`
	Progress int    `json:"progress"`
	Error    string `json:"error,omitempty"`
}

// GET /ws/tasks/:taskId
// Streams task progress over a websocket until the task completes or fails.
// Browsers cannot set headers on websocket dials, so the JWT may arrive as a
// token query parameter instead of an Authorization header.
func WSTaskProgressHandler(cfg *config.Config, rdb *redislib.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			token = c.Query("token")
		}
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "missing JWT"}})
			return
		}
		token = strings.TrimPrefix(token, "Bearer ")
		if _, err := auth.ParseJWT(cfg.Server.JWTSecret, token); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "invalid JWT"}})
			return
		}

		taskID := c.Param("taskId")
		var t task.ProcessingTask
		if err := db.DB.Where("task_id = ?", taskID).First(&t).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "Task not found"}})
			return
		}

		conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Println("WebSocket upgrade failed:", err)
			return
		}
		defer conn.Close()

		ctx := c.Request.Context()
		ticker := time.NewTicker(wsProgressPoll)
		defer ticker.Stop()

		for {
			frame := wsProgressFrame{
				TaskID:   t.TaskID,
				Status:   string(t.Status),
				Progress: liveProgress(ctx, rdb, &t),
				Error:    t.ErrorMessage,
			}
			if err := conn.WriteJSON(frame); err != nil {
				return
			}
			if t.Status == task.StatusCompleted || t.Status == task.StatusFailed {
				return
			}

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			if err := db.DB.Where("task_id = ?", taskID).First(&t).Error; err != nil {
				log.Printf("[TaskWS] ERROR reloading task %s: %v", taskID, err)
				return
			}
		}
	}
}

// liveProgress prefers the redis progress key, which the worker updates more
// often than the task row, and falls back to the row value.
func liveProgress(ctx context.Context, rdb *redislib.Client, t *task.ProcessingTask) int {
	if rdb != nil {
		if raw, err := rdb.Get(ctx, task.ProgressKey(t.TaskID)).Result(); err == nil {
			if n, err := strconv.Atoi(raw); err == nil {
				return n
			}
		}
	}
	return t.Progress
}

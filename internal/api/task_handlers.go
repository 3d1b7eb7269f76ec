package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smart-vocab/internal/db"
	"smart-vocab/internal/task"
)

// GET /admin/tasks/:taskId
func GetTaskHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var t task.ProcessingTask
		if err := db.DB.Where("task_id = ?", c.Param("taskId")).First(&t).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "Task not found"}})
			return
		}
		c.JSON(http.StatusOK, t)
	}
}

package api

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"smart-vocab/internal/book"
	"smart-vocab/internal/db"
	"smart-vocab/internal/task"
)

type EnrichRequest struct {
	WordIDs []uint `json:"word_ids"`
}

// POST /admin/enrich
// Queues an AI enrichment task for the given word ids.
func EnrichWordsHandler(worker *task.Worker) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := c.Get("userId")

		var req EnrichRequest
		if err := c.ShouldBindJSON(&req); err != nil || len(req.WordIDs) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "word_ids required"}})
			return
		}

		var count int64
		if err := db.DB.Model(&book.Word{}).Where("id IN ?", req.WordIDs).Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "DB error"}})
			return
		}
		if count == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "No matching words"}})
			return
		}

		payload, _ := json.Marshal(map[string]interface{}{
			"word_ids": req.WordIDs,
		})
		t := task.ProcessingTask{
			TaskID:    uuid.NewString(),
			Type:      task.TypeAIEnrich,
			Payload:   payload,
			CreatedBy: userId.(uint),
		}
		if err := worker.Enqueue(&t); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": gin.H{"message": "Processing queue full, try again later"}})
			return
		}
		c.JSON(http.StatusAccepted, gin.H{
			"task_id":    t.TaskID,
			"word_count": count,
		})
	}
}

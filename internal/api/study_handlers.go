package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"smart-vocab/internal/config"
	"smart-vocab/internal/db"
	"smart-vocab/internal/feedback"
	"smart-vocab/internal/study"
)

// GET /study/session?limit=20&include_new=true
func StudySessionHandler(cfg *config.Config, sched *study.Scheduler) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := c.Get("userId")

		limit := cfg.Study.DefaultLimit
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 || n > cfg.Study.MaxLimit {
				c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid limit"}})
				return
			}
			limit = n
		}
		includeNew := true
		if raw := c.Query("include_new"); raw != "" {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid include_new"}})
				return
			}
			includeNew = v
		}

		session, err := sched.ComposeSession(userId.(uint), limit, includeNew)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Failed to compose session"}})
			return
		}
		c.JSON(http.StatusOK, session)
	}
}

type SubmitRequest struct {
	WordID    uint `json:"word_id"`
	Quality   *int `json:"quality"`
	TimeSpent int  `json:"time_spent"`
}

// POST /study/submit
func StudySubmitHandler(sched *study.Scheduler) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := c.Get("userId")

		var req SubmitRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.WordID == 0 || req.Quality == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "word_id and quality required"}})
			return
		}

		snap, err := sched.Submit(userId.(uint), req.WordID, *req.Quality, req.TimeSpent)
		if err != nil {
			switch {
			case errors.Is(err, study.ErrInvalidArgument):
				c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": err.Error()}})
			case errors.Is(err, study.ErrWordNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "Word not found"}})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Failed to record review"}})
			}
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}

// GET /study/stats?period=all
func StudyStatsHandler(sched *study.Scheduler) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := c.Get("userId")

		period := c.DefaultQuery("period", "all")
		switch period {
		case "day", "week", "month", "all":
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid period"}})
			return
		}

		stats, err := sched.Stats(userId.(uint))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Failed to load stats"}})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"period": period,
			"stats":  stats,
		})
	}
}

type FeedbackRequest struct {
	WordID      uint   `json:"word_id"`
	Type        string `json:"feedback_type"`
	ContentType string `json:"content_type"`
	Comment     string `json:"comment"`
}

// POST /study/feedback
func CreateFeedbackHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := c.Get("userId")

		var req FeedbackRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.WordID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "word_id required"}})
			return
		}
		fb := feedback.Feedback{
			UserID:      userId.(uint),
			WordID:      req.WordID,
			Type:        feedback.Type(req.Type),
			ContentType: feedback.ContentType(req.ContentType),
			Comment:     req.Comment,
		}
		if !fb.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid feedback or content type"}})
			return
		}
		if err := db.DB.Create(&fb).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Failed to save feedback"}})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": fb.ID, "createdAt": fb.CreatedAt})
	}
}

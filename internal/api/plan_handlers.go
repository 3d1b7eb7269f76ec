package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"smart-vocab/internal/book"
	"smart-vocab/internal/db"
	"smart-vocab/internal/study"
)

// GET /study/plans
func ListPlansHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := c.Get("userId")
		var plans []study.StudyPlan
		if err := db.DB.Where("user_id = ?", userId.(uint)).Order("id ASC").Find(&plans).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "List error"}})
			return
		}
		c.JSON(http.StatusOK, plans)
	}
}

type CreatePlanRequest struct {
	BookID      uint       `json:"book_id"`
	Name        string     `json:"name"`
	DailyNew    int        `json:"daily_new"`
	DailyReview int        `json:"daily_review"`
	TargetDate  *time.Time `json:"target_date"`
}

// POST /study/plans
// A new plan becomes the active one; any previous active plan is deactivated.
func CreatePlanHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := c.Get("userId")

		var req CreatePlanRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.BookID == 0 || req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "book_id and name required"}})
			return
		}
		var b book.Book
		if err := db.DB.First(&b, req.BookID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "Book not found"}})
			return
		}
		if req.DailyNew <= 0 {
			req.DailyNew = 20
		}
		if req.DailyReview <= 0 {
			req.DailyReview = 100
		}

		plan := study.StudyPlan{
			UserID:      userId.(uint),
			BookID:      req.BookID,
			Name:        req.Name,
			DailyNew:    req.DailyNew,
			DailyReview: req.DailyReview,
			StartDate:   time.Now().UTC(),
			TargetDate:  req.TargetDate,
			IsActive:    true,
		}

		err := db.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&study.StudyPlan{}).
				Where("user_id = ? AND is_active = ?", userId.(uint), true).
				Update("is_active", false).Error; err != nil {
				return err
			}
			return tx.Create(&plan).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Create error"}})
			return
		}
		c.JSON(http.StatusCreated, plan)
	}
}

// PUT /study/plans/:id/activate
func ActivatePlanHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := c.Get("userId")
		id := c.Param("id")

		var plan study.StudyPlan
		if err := db.DB.Where("id = ? AND user_id = ?", id, userId.(uint)).First(&plan).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "Plan not found"}})
			return
		}

		err := db.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&study.StudyPlan{}).
				Where("user_id = ? AND is_active = ?", userId.(uint), true).
				Update("is_active", false).Error; err != nil {
				return err
			}
			return tx.Model(&plan).Update("is_active", true).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Activate error"}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Plan activated"})
	}
}

// DELETE /study/plans/:id
func DeletePlanHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := c.Get("userId")
		id := c.Param("id")

		res := db.DB.Where("id = ? AND user_id = ?", id, userId.(uint)).Delete(&study.StudyPlan{})
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Delete error"}})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "Plan not found"}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Plan deleted"})
	}
}

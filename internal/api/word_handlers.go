package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"smart-vocab/internal/book"
	"smart-vocab/internal/db"
)

// GET /admin/words?book_id=1&search=...&skip=0&limit=50
func ListWordsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		if skip < 0 {
			skip = 0
		}
		if limit < 1 || limit > 200 {
			limit = 50
		}

		q := db.DB.Model(&book.Word{})
		if bookID := c.Query("book_id"); bookID != "" {
			q = q.Where("book_id = ?", bookID)
		}
		if search := c.Query("search"); search != "" {
			q = q.Where("LOWER(spelling) LIKE ?", "%"+strings.ToLower(search)+"%")
		}

		var total int64
		if err := q.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "List error"}})
			return
		}
		var words []book.Word
		if err := q.Order("id ASC").Offset(skip).Limit(limit).Find(&words).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "List error"}})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"total": total,
			"words": words,
		})
	}
}

type WordRequest struct {
	BookID      uint            `json:"book_id"`
	Spelling    string          `json:"spelling"`
	Phonetic    string          `json:"phonetic"`
	Definitions datatypes.JSON  `json:"definitions"`
	Sentences   datatypes.JSON  `json:"sentences"`
	Mnemonic    string          `json:"mnemonic"`
	Difficulty  *int            `json:"difficulty"`
	Tags        datatypes.JSON  `json:"tags"`
	AudioURL    string          `json:"audio_url"`
	ImageURL    string          `json:"image_url"`
}

// POST /admin/words
func CreateWordHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req WordRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.BookID == 0 || req.Spelling == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "book_id and spelling required"}})
			return
		}
		var b book.Book
		if err := db.DB.First(&b, req.BookID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "Book not found"}})
			return
		}
		w := book.Word{
			BookID:      req.BookID,
			Spelling:    strings.ToLower(strings.TrimSpace(req.Spelling)),
			Phonetic:    req.Phonetic,
			Definitions: req.Definitions,
			Sentences:   req.Sentences,
			Mnemonic:    req.Mnemonic,
			Tags:        req.Tags,
			AudioURL:    req.AudioURL,
			ImageURL:    req.ImageURL,
		}
		if len(w.Definitions) == 0 {
			w.Definitions = datatypes.JSON("[]")
		}
		if req.Difficulty != nil {
			w.Difficulty = *req.Difficulty
		}
		if err := db.DB.Create(&w).Error; err != nil {
			if strings.Contains(err.Error(), "unique") {
				c.JSON(http.StatusConflict, gin.H{"error": gin.H{"message": "Word already exists"}})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Create error"}})
			return
		}
		c.JSON(http.StatusCreated, w)
	}
}

// PUT /admin/words/:id
func UpdateWordHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req WordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid request"}})
			return
		}
		var w book.Word
		if err := db.DB.First(&w, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "Word not found"}})
			return
		}
		if req.Phonetic != "" {
			w.Phonetic = req.Phonetic
		}
		if len(req.Definitions) > 0 {
			w.Definitions = req.Definitions
		}
		if len(req.Sentences) > 0 {
			w.Sentences = req.Sentences
		}
		if req.Mnemonic != "" {
			w.Mnemonic = req.Mnemonic
		}
		if req.Difficulty != nil {
			w.Difficulty = *req.Difficulty
		}
		if len(req.Tags) > 0 {
			w.Tags = req.Tags
		}
		if req.AudioURL != "" {
			w.AudioURL = req.AudioURL
		}
		if req.ImageURL != "" {
			w.ImageURL = req.ImageURL
		}
		if err := db.DB.Save(&w).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Update error"}})
			return
		}
		c.JSON(http.StatusOK, w)
	}
}

// DELETE /admin/words/:id
func DeleteWordHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		res := db.DB.Delete(&book.Word{}, "id = ?", c.Param("id"))
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Delete error"}})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "Word not found"}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Word deleted"})
	}
}

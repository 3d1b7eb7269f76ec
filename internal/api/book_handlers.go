package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"smart-vocab/internal/book"
	"smart-vocab/internal/config"
	"smart-vocab/internal/db"
	"smart-vocab/internal/storage"
	"smart-vocab/internal/task"
)

// POST /admin/books/upload  (multipart: file + title/description/author/publisher)
func UploadBookHandler(cfg *config.Config, files storage.FileStore, worker *task.Worker) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := c.Get("userId")

		fh, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Missing file"}})
			return
		}
		if !strings.EqualFold(filepath.Ext(fh.Filename), ".pdf") {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Only PDF files are accepted"}})
			return
		}
		title := c.PostForm("title")
		if title == "" {
			title = strings.TrimSuffix(filepath.Base(fh.Filename), filepath.Ext(fh.Filename))
		}

		src, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Failed to read upload"}})
			return
		}
		defer src.Close()

		maxBytes := int64(cfg.Uploads.MaxMB) << 20
		name := fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(fh.Filename))
		path, size, err := files.Save(name, src, maxBytes)
		if err != nil {
			if errors.Is(err, storage.ErrTooLarge) {
				c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": gin.H{"message": "File too large"}})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Failed to store file"}})
			return
		}

		b := book.Book{
			Title:       title,
			Description: c.PostForm("description"),
			Author:      c.PostForm("author"),
			Publisher:   c.PostForm("publisher"),
			FileURL:     path,
			FileSize:    size,
			Status:      book.StatusProcessing,
			CreatedBy:   userId.(uint),
		}
		if err := db.DB.Create(&b).Error; err != nil {
			_ = files.Remove(path)
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Failed to create book"}})
			return
		}

		payload, _ := json.Marshal(map[string]interface{}{
			"book_id":   b.ID,
			"file_path": path,
		})
		t := task.ProcessingTask{
			TaskID:    uuid.NewString(),
			Type:      task.TypePDFParse,
			Payload:   payload,
			CreatedBy: userId.(uint),
		}
		if err := worker.Enqueue(&t); err != nil {
			log.Printf("[Books] ERROR enqueueing parse task for book %d: %v", b.ID, err)
			db.DB.Model(&b).Updates(map[string]interface{}{
				"status":        book.StatusFailed,
				"error_message": "failed to queue processing task",
			})
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": gin.H{"message": "Processing queue full, try again later"}})
			return
		}

		c.JSON(http.StatusAccepted, gin.H{
			"book_id": b.ID,
			"task_id": t.TaskID,
			"status":  b.Status,
		})
	}
}

// GET /admin/books?skip=0&limit=20&status=ready&search=...
func ListBooksHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		if skip < 0 {
			skip = 0
		}
		if limit < 1 || limit > 100 {
			limit = 20
		}

		q := db.DB.Model(&book.Book{})
		if status := c.Query("status"); status != "" {
			q = q.Where("status = ?", status)
		}
		if search := c.Query("search"); search != "" {
			pattern := "%" + strings.ToLower(search) + "%"
			q = q.Where("LOWER(title) LIKE ? OR LOWER(author) LIKE ?", pattern, pattern)
		}

		var total int64
		if err := q.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "List error"}})
			return
		}
		var books []book.Book
		if err := q.Order("id DESC").Offset(skip).Limit(limit).Find(&books).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "List error"}})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"total": total,
			"books": books,
		})
	}
}

// GET /admin/books/:id
func GetBookHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var b book.Book
		if err := db.DB.First(&b, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "Book not found"}})
			return
		}
		c.JSON(http.StatusOK, b)
	}
}

type UpdateBookRequest struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Author      string `json:"author,omitempty"`
	Publisher   string `json:"publisher,omitempty"`
}

// PUT /admin/books/:id
func UpdateBookHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateBookRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid request"}})
			return
		}
		var b book.Book
		if err := db.DB.First(&b, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "Book not found"}})
			return
		}
		if req.Title != "" {
			b.Title = req.Title
		}
		if req.Description != "" {
			b.Description = req.Description
		}
		if req.Author != "" {
			b.Author = req.Author
		}
		if req.Publisher != "" {
			b.Publisher = req.Publisher
		}
		if err := db.DB.Save(&b).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Update error"}})
			return
		}
		c.JSON(http.StatusOK, b)
	}
}

// DELETE /admin/books/:id
// Removes the book row, its words, and the stored file.
func DeleteBookHandler(files storage.FileStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var b book.Book
		if err := db.DB.First(&b, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "Book not found"}})
			return
		}
		if err := db.DB.Where("book_id = ?", b.ID).Delete(&book.Word{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Delete error"}})
			return
		}
		if err := db.DB.Delete(&b).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Delete error"}})
			return
		}
		if b.FileURL != "" {
			if err := files.Remove(b.FileURL); err != nil {
				log.Printf("[Books] WARNING: failed to remove file %s: %v", b.FileURL, err)
			}
		}
		c.JSON(http.StatusOK, gin.H{"message": "Book deleted"})
	}
}

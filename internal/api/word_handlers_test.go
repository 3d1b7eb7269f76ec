package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"smart-vocab/internal/book"
	"smart-vocab/internal/db"
)

func wordTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", uint(1))
		c.Set("userRole", "admin")
		c.Next()
	})
	r.GET("/admin/words", ListWordsHandler())
	r.POST("/admin/words", CreateWordHandler())
	r.PUT("/admin/words/:id", UpdateWordHandler())
	r.DELETE("/admin/words/:id", DeleteWordHandler())
	return r
}

func TestCreateWordHandler_NormalizesSpelling(t *testing.T) {
	setupAPIDB(t)
	resetAPITables(t)
	b := seedReadyBook(t, "book1")
	r := wordTestRouter()

	payload := WordRequest{BookID: b.ID, Spelling: "  Apple  "}
	body, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/admin/words", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}
	var created book.Word
	if err := db.DB.Where("book_id = ?", b.ID).First(&created).Error; err != nil {
		t.Fatalf("failed to load word: %v", err)
	}
	if created.Spelling != "apple" {
		t.Errorf("expected lowercased trimmed spelling, got %q", created.Spelling)
	}
}

func TestCreateWordHandler_DuplicateSpelling(t *testing.T) {
	setupAPIDB(t)
	resetAPITables(t)
	b := seedReadyBook(t, "book1")
	seedAPIWord(t, b.ID, "apple")
	r := wordTestRouter()

	payload := WordRequest{BookID: b.ID, Spelling: "apple"}
	body, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/admin/words", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 Conflict, got %d: %s", w.Code, w.Body.String())
	}
}

func TestListWordsHandler_FiltersAndPaginates(t *testing.T) {
	setupAPIDB(t)
	resetAPITables(t)
	b1 := seedReadyBook(t, "book1")
	b2 := seedReadyBook(t, "book2")
	seedAPIWord(t, b1.ID, "apple")
	seedAPIWord(t, b1.ID, "apricot")
	seedAPIWord(t, b2.ID, "banana")
	r := wordTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin/words?book_id="+toStrUint(b1.ID), nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Total int64       `json:"total"`
		Words []book.Word `json:"words"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if resp.Total != 2 || len(resp.Words) != 2 {
		t.Fatalf("expected 2 words for book1, got total=%d len=%d", resp.Total, len(resp.Words))
	}

	// Search narrows further
	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/admin/words?search=apri", nil)
	r.ServeHTTP(w, req)
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if resp.Total != 1 || resp.Words[0].Spelling != "apricot" {
		t.Errorf("search should match apricot only, got %+v", resp.Words)
	}
}

func TestUpdateWordHandler(t *testing.T) {
	setupAPIDB(t)
	resetAPITables(t)
	b := seedReadyBook(t, "book1")
	word := seedAPIWord(t, b.ID, "apple")
	r := wordTestRouter()

	diff := 5
	payload := WordRequest{Mnemonic: "a is for apple", Difficulty: &diff}
	body, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/admin/words/"+toStrUint(word.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var updated book.Word
	db.DB.First(&updated, word.ID)
	if updated.Mnemonic != "a is for apple" || updated.Difficulty != 5 {
		t.Errorf("update not applied: %+v", updated)
	}
}

func TestDeleteWordHandler_NotFound(t *testing.T) {
	setupAPIDB(t)
	resetAPITables(t)
	r := wordTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/admin/words/12345", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 Not Found, got %d: %s", w.Code, w.Body.String())
	}
}

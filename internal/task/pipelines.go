package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"smart-vocab/internal/book"
	"smart-vocab/internal/enrich"
	"smart-vocab/internal/ocr"
	"smart-vocab/internal/pdf"
)

type pdfParsePayload struct {
	BookID   uint   `json:"book_id"`
	FilePath string `json:"file_path"`
}

type enrichPayload struct {
	WordIDs []uint `json:"word_ids"`
}

// PDFParseHandler imports a word book: extract embedded page text, fall back
// to OCR for image-only pages, clean the raw lines, insert the words and mark
// the book ready. Any failure marks the book failed with the error message.
func PDFParseHandler(db *gorm.DB, extractor pdf.Extractor, recognizer ocr.Recognizer, enricher enrich.Enricher) Handler {
	return func(ctx context.Context, t *ProcessingTask, report func(int)) (map[string]interface{}, error) {
		var payload pdfParsePayload
		if err := json.Unmarshal(t.Payload, &payload); err != nil {
			return nil, fmt.Errorf("decode payload: %w", err)
		}

		var b book.Book
		if err := db.First(&b, payload.BookID).Error; err != nil {
			return nil, fmt.Errorf("load book %d: %w", payload.BookID, err)
		}

		result, err := importBook(ctx, db, &b, payload.FilePath, extractor, recognizer, enricher, report)
		if err != nil {
			db.Model(&b).Updates(map[string]interface{}{
				"status":        book.StatusFailed,
				"error_message": err.Error(),
			})
			return nil, err
		}
		return result, nil
	}
}

func importBook(ctx context.Context, db *gorm.DB, b *book.Book, filePath string, extractor pdf.Extractor, recognizer ocr.Recognizer, enricher enrich.Enricher, report func(int)) (map[string]interface{}, error) {
	pages, err := extractor.PageCount(filePath)
	if err != nil {
		return nil, fmt.Errorf("page count: %w", err)
	}

	var lines []string
	for page := 1; page <= pages; page++ {
		text, err := extractor.PageText(filePath, page)
		if err != nil {
			return nil, fmt.Errorf("page %d text: %w", page, err)
		}
		if strings.TrimSpace(text) == "" && recognizer != nil {
			ocrLines, err := recognizer.RecognizePage(ctx, filePath, page)
			if err != nil {
				return nil, fmt.Errorf("page %d ocr: %w", page, err)
			}
			lines = append(lines, ocrLines...)
		} else {
			for _, line := range strings.Split(text, "\n") {
				if strings.TrimSpace(line) != "" {
					lines = append(lines, line)
				}
			}
		}
		report(page * 70 / pages)
	}

	words, err := enricher.CleanOCRWords(ctx, lines)
	if err != nil {
		return nil, fmt.Errorf("clean ocr words: %w", err)
	}
	report(85)

	inserted := 0
	for _, spelling := range words {
		w := book.Word{
			BookID:      b.ID,
			Spelling:    spelling,
			Definitions: []byte("[]"),
		}
		// Spelling is globally unique; duplicates across books are skipped.
		res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&w)
		if res.Error != nil {
			return nil, fmt.Errorf("insert word %q: %w", spelling, res.Error)
		}
		inserted += int(res.RowsAffected)
	}

	if err := db.Model(b).Updates(map[string]interface{}{
		"status":      book.StatusReady,
		"total_pages": pages,
		"total_words": inserted,
	}).Error; err != nil {
		return nil, fmt.Errorf("finalize book: %w", err)
	}
	report(100)

	return map[string]interface{}{
		"book_id":     b.ID,
		"total_pages": pages,
		"total_words": inserted,
	}, nil
}

// EnrichHandler generates definitions, sentences and mnemonics for a batch
// of words. Individual word failures are logged and skipped so one bad word
// does not sink the batch.
func EnrichHandler(db *gorm.DB, enricher enrich.Enricher) Handler {
	return func(ctx context.Context, t *ProcessingTask, report func(int)) (map[string]interface{}, error) {
		var payload enrichPayload
		if err := json.Unmarshal(t.Payload, &payload); err != nil {
			return nil, fmt.Errorf("decode payload: %w", err)
		}

		var words []book.Word
		if err := db.Where("id IN ?", payload.WordIDs).Find(&words).Error; err != nil {
			return nil, fmt.Errorf("load words: %w", err)
		}

		enriched, failed := 0, 0
		for i := range words {
			w := &words[i]
			content, err := enricher.EnrichWord(ctx, w.Spelling)
			if err != nil {
				log.Printf("[TaskWorker] Enrich %q failed: %v", w.Spelling, err)
				failed++
				continue
			}
			defs, _ := json.Marshal(content.Definitions)
			sents, _ := json.Marshal(content.Sentences)
			updates := map[string]interface{}{
				"definitions":  defs,
				"sentences":    sents,
				"mnemonic":     content.Mnemonic,
				"ai_generated": true,
			}
			if content.Phonetic != "" {
				updates["phonetic"] = content.Phonetic
			}
			if err := db.Model(w).Updates(updates).Error; err != nil {
				return nil, fmt.Errorf("update word %q: %w", w.Spelling, err)
			}
			enriched++
			report((i + 1) * 100 / len(words))
		}

		return map[string]interface{}{
			"enriched": enriched,
			"failed":   failed,
		}, nil
	}
}

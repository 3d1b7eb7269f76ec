package enrich

import (
	"context"
)

// Definition is one sense of a word.
type Definition struct {
	Pos     string `json:"pos"`
	Meaning string `json:"meaning"`
}

// Sentence is one usage example with translation.
type Sentence struct {
	Text        string `json:"text"`
	Translation string `json:"translation"`
}

// WordContent is the generated learning material for one word.
type WordContent struct {
	Phonetic    string       `json:"phonetic"`
	Definitions []Definition `json:"definitions"`
	Sentences   []Sentence   `json:"sentences"`
	Mnemonic    string       `json:"mnemonic"`
}

// Enricher generates learning content and cleans raw OCR output. The model
// behind it is an external service; the scheduling core never depends on it.
type Enricher interface {
	EnrichWord(ctx context.Context, spelling string) (*WordContent, error)
	CleanOCRWords(ctx context.Context, raw []string) ([]string, error)
}

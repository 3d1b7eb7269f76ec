package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Recognizer turns an image-only PDF page into raw text lines. The actual
// recognition runs in an external service.
type Recognizer interface {
	RecognizePage(ctx context.Context, filePath string, page int) ([]string, error)
}

// Client talks to the remote OCR service over HTTP.
type Client struct {
	url  string
	http *http.Client
}

func NewClient(url string) *Client {
	return &Client{
		url:  url,
		http: &http.Client{Timeout: 120 * time.Second},
	}
}

func (c *Client) RecognizePage(ctx context.Context, filePath string, page int) ([]string, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"file_path": filePath,
		"page":      page,
	})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, "POST", c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ocr request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ocr service returned status %d", resp.StatusCode)
	}

	var out struct {
		Lines []string `json:"lines"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode ocr response: %w", err)
	}
	return out.Lines, nil
}

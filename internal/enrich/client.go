package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	enrichPrompt = `You are a vocabulary tutor. For the English word %q return a JSON object with keys: "phonetic" (IPA), "definitions" (array of {"pos","meaning"}), "sentences" (array of {"text","translation"}, 2 items), "mnemonic" (one short memory aid). Return only JSON.`
	cleanPrompt  = `The following lines were extracted from a scanned vocabulary book by OCR. Return a JSON array containing only the valid English headwords, lowercased, deduplicated, in their original order. Return only JSON. Lines: %s`
)

// Client calls an OpenAI-compatible chat completions endpoint.
type Client struct {
	url    string
	model  string
	apiKey string
	http   *http.Client
}

func NewClient(url, model, apiKey string) *Client {
	return &Client{
		url:    url,
		model:  model,
		apiKey: apiKey,
		http:   &http.Client{Timeout: 90 * time.Second},
	}
}

func (c *Client) EnrichWord(ctx context.Context, spelling string) (*WordContent, error) {
	raw, err := c.complete(ctx, fmt.Sprintf(enrichPrompt, spelling))
	if err != nil {
		return nil, err
	}
	var content WordContent
	if err := json.Unmarshal([]byte(raw), &content); err != nil {
		return nil, fmt.Errorf("decode enrichment for %q: %w", spelling, err)
	}
	return &content, nil
}

func (c *Client) CleanOCRWords(ctx context.Context, lines []string) ([]string, error) {
	joined, err := json.Marshal(lines)
	if err != nil {
		return nil, err
	}
	raw, err := c.complete(ctx, fmt.Sprintf(cleanPrompt, joined))
	if err != nil {
		return nil, err
	}
	var words []string
	if err := json.Unmarshal([]byte(raw), &words); err != nil {
		return nil, fmt.Errorf("decode cleaned words: %w", err)
	}
	return words, nil
}

// complete sends one non-streaming chat request and returns the reply text,
// with any markdown code fence stripped.
func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"temperature": 0.3,
	})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, "POST", c.url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("enrichment request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("enrichment service returned status %d", resp.StatusCode)
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode completion: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("empty completion")
	}
	return stripFence(out.Choices[0].Message.Content), nil
}

func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}

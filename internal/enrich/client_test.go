package enrich

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func chatReply(content string) string {
	body, _ := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	})
	return string(body)
}

func TestEnrichWord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(chatReply("```json\n{\"phonetic\":\"əˈbændən\",\"definitions\":[{\"pos\":\"v\",\"meaning\":\"to give up\"}],\"sentences\":[{\"text\":\"He abandoned the plan.\",\"translation\":\"他放弃了计划。\"}],\"mnemonic\":\"a-band-on: the band left\"}\n```")))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-model", "")
	content, err := c.EnrichWord(context.Background(), "abandon")
	if err != nil {
		t.Fatalf("enrich: %v", err)
	}
	if content.Phonetic != "əˈbændən" {
		t.Errorf("phonetic = %q", content.Phonetic)
	}
	if len(content.Definitions) != 1 || content.Definitions[0].Meaning != "to give up" {
		t.Errorf("definitions = %+v", content.Definitions)
	}
	if len(content.Sentences) != 1 {
		t.Errorf("sentences = %+v", content.Sentences)
	}
}

func TestCleanOCRWords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(chatReply(`["abandon","benefit"]`)))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-model", "")
	words, err := c.CleanOCRWords(context.Background(), []string{"abandon  v.", "ben3fit", "---"})
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	if len(words) != 2 || words[0] != "abandon" || words[1] != "benefit" {
		t.Errorf("words = %v", words)
	}
}

func TestEnrichWord_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-model", "")
	if _, err := c.EnrichWord(context.Background(), "abandon"); err == nil {
		t.Errorf("expected error on non-200 response")
	}
}

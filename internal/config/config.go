package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

type OpenAIConfig struct {
	URL    string `json:"url"`
	Model  string `json:"model"`
	APIKey string `json:"api_key"`
}

type OCRConfig struct {
	URL string `json:"url"`
}

type UploadsConfig struct {
	Dir   string `json:"dir"`
	MaxMB int    `json:"max_mb"`
}

type StudyConfig struct {
	DefaultLimit int `json:"default_limit"`
	MaxLimit     int `json:"max_limit"`
}

type Config struct {
	Server struct {
		Host      string `json:"host"`
		Port      int    `json:"port"`
		JWTSecret string `json:"jwtSecret"`
	} `json:"server"`
	Postgres struct {
		DSN string `json:"dsn"`
	} `json:"postgres"`
	Redis struct {
		Addr     string `json:"addr"`
		Password string `json:"password"`
		DB       int    `json:"db"`
	} `json:"redis"`
	OpenAI  OpenAIConfig  `json:"openai"`
	OCR     OCRConfig     `json:"ocr"`
	Uploads UploadsConfig `json:"uploads"`
	Study   StudyConfig   `json:"study"`
}

var (
	once   sync.Once
	cfg    *Config
	cfgErr error
)

// LoadConfig reads config.json from disk (singleton)
func LoadConfig(path string) (*Config, error) {
	once.Do(func() {
		raw, err := os.ReadFile(path)
		if err != nil {
			cfgErr = fmt.Errorf("failed to read config file: %w", err)
			return
		}
		var c Config
		if err := json.Unmarshal(raw, &c); err != nil {
			cfgErr = fmt.Errorf("invalid config format: %w", err)
			return
		}
		// Minimal validation
		if c.Server.JWTSecret == "" {
			cfgErr = errors.New("jwtSecret must be set in config")
			return
		}
		if c.Uploads.Dir == "" {
			c.Uploads.Dir = "uploads"
		}
		if c.Uploads.MaxMB <= 0 {
			c.Uploads.MaxMB = 50
		}
		if c.Study.DefaultLimit <= 0 {
			c.Study.DefaultLimit = 20
		}
		if c.Study.MaxLimit <= 0 {
			c.Study.MaxLimit = 100
		}
		cfg = &c
	})
	return cfg, cfgErr
}

// GetConfig returns the loaded config (must call LoadConfig first)
func GetConfig() *Config {
	return cfg
}

// ResetConfigForTest resets the singleton state (for testing only)
func ResetConfigForTest() {
	once = sync.Once{}
	cfg = nil
	cfgErr = nil
}

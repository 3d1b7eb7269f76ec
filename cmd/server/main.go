package main

import (
	"fmt"
	"log"
	"os"

	"smart-vocab/internal/api"
	"smart-vocab/internal/config"
	"smart-vocab/internal/db"
	"smart-vocab/internal/enrich"
	"smart-vocab/internal/ocr"
	"smart-vocab/internal/pdf"
	redisdb "smart-vocab/internal/redis"
	"smart-vocab/internal/storage"
	"smart-vocab/internal/study"
	"smart-vocab/internal/task"
)

func main() {
	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := db.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	rdb := redisdb.NewClient(cfg)

	files := storage.NewLocalStore(cfg.Uploads.Dir)
	extractor := pdf.NewUniExtractor()
	recognizer := ocr.NewClient(cfg.OCR.URL)
	enricher := enrich.NewClient(cfg.OpenAI.URL, cfg.OpenAI.Model, cfg.OpenAI.APIKey)

	worker := task.NewWorker(db.DB, rdb)
	worker.Register(task.TypePDFParse, task.PDFParseHandler(db.DB, extractor, recognizer, enricher))
	worker.Register(task.TypeAIEnrich, task.EnrichHandler(db.DB, enricher))
	go worker.Start()
	defer worker.Stop()
	log.Printf("[Main] Task worker started")

	sched := study.NewScheduler(db.DB, nil)

	r := api.SetupRouter(cfg, rdb, sched, worker, files)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("Starting server on %s\n", addr)
	if err := r.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

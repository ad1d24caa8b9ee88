package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"docqa/internal/config"
	"docqa/internal/domain"
	genai "docqa/internal/embedding/gemini"
	"docqa/internal/extract"
	gengemini "docqa/internal/generation/gemini"
	"docqa/internal/server"
	"docqa/internal/service"
	"docqa/internal/vectorstore/memory"
	"docqa/internal/vectorstore/qdrant"
)

func main() {
	_ = godotenv.Load()

	cfgPath := flag.String("config", "config.yaml", "Path to config YAML")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	// Assemble components via interfaces
	embedder, err := genai.NewClient(genai.Config{
		BaseURL:   cfg.Embedding.BaseURL,
		APIKey:    os.Getenv(cfg.Embedding.APIKeyEnv),
		Model:     cfg.Embedding.Model,
		Dimension: cfg.Embedding.Dimension,
		Timeout:   time.Duration(cfg.Embedding.TimeoutSecs) * time.Second,
	})
	if err != nil {
		logger.Error("embedding client init failed", "err", err)
		os.Exit(1)
	}

	generator, err := gengemini.NewClient(gengemini.Config{
		BaseURL: cfg.Generation.BaseURL,
		APIKey:  os.Getenv(cfg.Generation.APIKeyEnv),
		Model:   cfg.Generation.Model,
		Timeout: time.Duration(cfg.Generation.TimeoutSecs) * time.Second,
	})
	if err != nil {
		logger.Error("generation client init failed", "err", err)
		os.Exit(1)
	}

	var store domain.VectorStore
	switch cfg.VectorStore.Type {
	case "qdrant", "":
		if cfg.VectorStore.URL == "" {
			logger.Error("vector store URL missing (set QDRANT_URL or vector_store.url)")
			os.Exit(1)
		}
		store = qdrant.NewStore(qdrant.Config{
			URL:    cfg.VectorStore.URL,
			APIKey: os.Getenv(cfg.VectorStore.APIKeyEnv),
		})
	case "memory":
		store = memory.NewStore()
	default:
		logger.Error("unknown vector store", "type", cfg.VectorStore.Type)
		os.Exit(1)
	}

	svc := service.New(embedder, store, extract.NewPDF(), generator, service.Options{
		Collection:      cfg.VectorStore.Collection,
		ChunkSize:       cfg.Ingest.ChunkSize,
		TopK:            cfg.Answer.TopK,
		MaxContextChars: cfg.Answer.MaxContextChars,
	})

	srv := server.New(svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := srv.Start(ctx, cfg.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

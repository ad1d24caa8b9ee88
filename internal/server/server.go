package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"docqa/internal/domain"
)

// DocQA is the handler-facing subset of the application core.
type DocQA interface {
	IngestText(ctx context.Context, content string) (string, error)
	IngestFiles(ctx context.Context, files []domain.UploadedFile) []domain.FileReport
	Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error)
	Answer(ctx context.Context, question string) (domain.Answer, error)
}

// Server exposes the question-answering core over HTTP.
type Server struct {
	router *gin.Engine
	server *http.Server
	svc    DocQA
	logger *slog.Logger
}

func New(svc DocQA, logger *slog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		router: gin.New(),
		svc:    svc,
		logger: logger,
	}
	s.router.Use(gin.Recovery())
	s.router.Use(corsMiddleware())
	s.router.Use(requestLogger(logger))
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.POST("/add_document", s.handleAddDocument)
	s.router.GET("/search_document", s.handleSearchDocument)
	s.router.POST("/upload_pdfs", s.handleUploadPDFs)
	s.router.POST("/ask_question", s.handleAskQuestion)
}

// Handler returns the underlying HTTP handler, mostly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Start runs the HTTP server until the context is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	s.server = &http.Server{Addr: addr, Handler: s.router}
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe()
	}()
	s.logger.Info("server listening", "addr", addr)
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	}
}

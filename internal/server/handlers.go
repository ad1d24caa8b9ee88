package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"docqa/internal/domain"
)

const (
	defaultSearchLimit = 5
	maxSearchLimit     = 50
)

type documentInput struct {
	Content string `json:"content" binding:"required"`
}

type userQuery struct {
	Question string `json:"question" binding:"required"`
}

type searchResultJSON struct {
	ID      string  `json:"id"`
	Score   float64 `json:"score"`
	Content string  `json:"content"`
}

type chunkRefJSON struct {
	ChunkIndex int    `json:"chunk_index"`
	ChunkID    string `json:"chunk_id"`
}

type fileReportJSON struct {
	Filename       string         `json:"filename"`
	Status         string         `json:"status,omitempty"`
	ChunksUploaded int            `json:"chunks_uploaded,omitempty"`
	Chunks         []chunkRefJSON `json:"chunks,omitempty"`
	Error          string         `json:"error,omitempty"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleAddDocument(c *gin.Context) {
	var doc documentInput
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "content is required"})
		return
	}
	id, err := s.svc.IngestText(c.Request.Context(), doc.Content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": fmt.Sprintf("Error adding document: %v", err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "id": id})
}

func (s *Server) handleSearchDocument(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "query is required"})
		return
	}
	limit := defaultSearchLimit
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > maxSearchLimit {
			c.JSON(http.StatusBadRequest, gin.H{"detail": fmt.Sprintf("limit must be an integer between 1 and %d", maxSearchLimit)})
			return
		}
		limit = v
	}
	results, err := s.svc.Search(c.Request.Context(), query, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": fmt.Sprintf("Search failed: %v", err)})
		return
	}
	out := make([]searchResultJSON, 0, len(results))
	for _, r := range results {
		out = append(out, searchResultJSON{ID: r.ID, Score: r.Score, Content: r.Content})
	}
	c.JSON(http.StatusOK, gin.H{"results": out})
}

func (s *Server) handleUploadPDFs(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "multipart form expected"})
		return
	}
	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "no files provided"})
		return
	}
	files := make([]domain.UploadedFile, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			files = append(files, domain.UploadedFile{Filename: fh.Filename})
			continue
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			data = nil
		}
		files = append(files, domain.UploadedFile{Filename: fh.Filename, Data: data})
	}
	reports := s.svc.IngestFiles(c.Request.Context(), files)
	out := make([]fileReportJSON, 0, len(reports))
	for _, r := range reports {
		entry := fileReportJSON{Filename: r.Filename}
		if r.Error != "" {
			entry.Error = r.Error
		} else {
			entry.Status = "success"
			entry.ChunksUploaded = r.ChunksUploaded
			for _, ch := range r.Chunks {
				entry.Chunks = append(entry.Chunks, chunkRefJSON{ChunkIndex: ch.Index, ChunkID: ch.ID})
			}
		}
		out = append(out, entry)
	}
	c.JSON(http.StatusOK, gin.H{"results": out})
}

func (s *Server) handleAskQuestion(c *gin.Context) {
	var q userQuery
	if err := c.ShouldBindJSON(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "question is required"})
		return
	}
	answer, err := s.svc.Answer(c.Request.Context(), q.Question)
	if err != nil {
		if errors.Is(err, domain.ErrNoRelevantContent) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "No relevant documents found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": fmt.Sprintf("Answering failed: %v", err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"question": answer.Question, "answer": answer.Answer})
}

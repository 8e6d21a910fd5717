// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes loaded concepts over a read-only JSON API.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/vocab-browser/internal/pipeline"
	"github.com/pdiddy/vocab-browser/pkg/types"
)

// LoadFunc runs the load pipeline. The server calls it on reload.
type LoadFunc func(ctx context.Context) (*pipeline.Result, error)

// Server holds the state for the REST API server.
type Server struct {
	mu     sync.RWMutex
	result *pipeline.Result
	load   LoadFunc
	router *gin.Engine
}

// New creates a Server serving initial. load may be nil, which disables
// the reload endpoint.
func New(initial *pipeline.Result, load LoadFunc) *Server {
	s := &Server{
		result: initial,
		load:   load,
		router: gin.Default(),
	}
	s.setupRoutes()
	return s
}

// Handler returns the underlying HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthCheck)
	s.router.GET("/v1/metadata", s.handleMetadata)
	s.router.GET("/v1/concepts", s.handleConcepts)
	s.router.GET("/v1/concepts/:id", s.handleConcept)
	s.router.POST("/v1/reload", s.handleReload)
}

func (s *Server) current() *pipeline.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result
}

// Health check
func (s *Server) healthCheck(c *gin.Context) {
	c.Status(http.StatusOK)
}

func (s *Server) handleMetadata(c *gin.Context) {
	res := s.current()
	if res == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "vocabulary not loaded"})
		return
	}
	c.JSON(http.StatusOK, res.Metadata)
}

// handleConcepts lists concepts; ?lang= keeps those with a label in that language.
func (s *Server) handleConcepts(c *gin.Context) {
	res := s.current()
	if res == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "vocabulary not loaded"})
		return
	}

	concepts := res.Concepts
	if lang := c.Query("lang"); lang != "" {
		concepts = filterByLanguage(concepts, lang)
	}
	c.JSON(http.StatusOK, gin.H{"concepts": concepts, "count": len(concepts)})
}

func (s *Server) handleConcept(c *gin.Context) {
	res := s.current()
	if res == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "vocabulary not loaded"})
		return
	}

	id := c.Param("id")
	for _, concept := range res.Concepts {
		if concept.ID == id {
			c.JSON(http.StatusOK, concept)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "concept not found: " + id})
}

func (s *Server) handleReload(c *gin.Context) {
	if s.load == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "reload not configured"})
		return
	}

	res, err := s.load(c.Request.Context())
	if err != nil {
		slog.Warn("reload failed", "err", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load vocabulary.", "detail": err.Error()})
		return
	}

	s.mu.Lock()
	s.result = res
	s.mu.Unlock()

	c.JSON(http.StatusOK, res.Metadata)
}

func filterByLanguage(concepts []types.Concept, lang string) []types.Concept {
	out := []types.Concept{}
	for _, c := range concepts {
		for _, l := range c.Languages {
			if strings.EqualFold(l, lang) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

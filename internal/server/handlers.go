package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/repolens-dev/repolens/internal/analysis"
	"github.com/repolens-dev/repolens/internal/apperr"
	"github.com/repolens-dev/repolens/internal/engine"
	"github.com/repolens-dev/repolens/internal/layers"
)

type scanRequest struct {
	Root string `json:"root" binding:"required"`
}

type focusRequest struct {
	Unit  string `json:"unit"`
	Layer int    `json:"layer"`
}

type layerRequest struct {
	Layer int `json:"layer" binding:"required"`
}

type expandRequest struct {
	Unit string `json:"unit" binding:"required"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// layerConfig describes one of the four disclosure layers.
func (s *Server) layerConfig(c *gin.Context) {
	n, err := strconv.Atoi(c.Param("n"))
	if err != nil {
		s.fail(c, fmt.Errorf("%w: layer %q is not a number", apperr.ErrInvalidInput, c.Param("n")))
		return
	}

	cfg, err := layers.LayerConfiguration(n)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// scan runs the full pipeline and opens a session over the result.
func (s *Server) scan(c *gin.Context) {
	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, fmt.Errorf("%w: %v", apperr.ErrInvalidInput, err))
		return
	}

	started := time.Now()
	a, err := s.engine.Analyze(c.Request.Context(), req.Root)
	if err != nil {
		s.fail(c, err)
		return
	}
	scanDuration.Observe(time.Since(started).Seconds())

	sess := s.engine.NewSession(a)
	sessionsLive.Inc()

	c.JSON(http.StatusCreated, gin.H{
		"session":   sess.ID,
		"root":      a.Root,
		"files":     a.FileCount,
		"category":  a.Category,
		"nodes":     len(a.Snapshot.Nodes),
		"edges":     len(a.Snapshot.Edges),
		"externals": len(a.Snapshot.External),
		"cycles":    len(a.Cycles),
		"issues":    a.Issues,
	})
}

func (s *Server) session(c *gin.Context) (*engine.Session, bool) {
	sess, err := s.engine.Session(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return nil, false
	}
	return sess, true
}

func (s *Server) graph(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"snapshot": sess.Analysis.Snapshot,
		"stats":    sess.Analysis.Snapshot.Stats(),
	})
}

func (s *Server) cycles(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"cycles": sess.Analysis.Cycles})
}

func (s *Server) path(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	from, to := c.Query("from"), c.Query("to")
	if from == "" || to == "" {
		s.fail(c, fmt.Errorf("%w: from and to are required", apperr.ErrInvalidInput))
		return
	}

	path, err := analysis.ShortestPath(sess.Analysis.Snapshot, from, to)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": path, "length": len(path) - 1})
}

func (s *Server) impact(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	node := c.Query("node")
	if node == "" {
		s.fail(c, fmt.Errorf("%w: node is required", apperr.ErrInvalidInput))
		return
	}

	result, err := analysis.Impact(sess.Analysis.Snapshot, node)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) centrality(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"centrality": analysis.Centrality(sess.Analysis.Snapshot)})
}

func (s *Server) complexity(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sess.Analysis.Complexity)
}

func (s *Server) units(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sess.View())
}

func (s *Server) state(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": sess.State(), "layer": sess.LayerConfig()})
}

func (s *Server) setLayer(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	var req layerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, fmt.Errorf("%w: %v", apperr.ErrInvalidInput, err))
		return
	}

	state, err := sess.SetLayer(req.Layer)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": state})
}

func (s *Server) unlock(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": sess.Unlock()})
}

func (s *Server) focus(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	var req focusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, fmt.Errorf("%w: %v", apperr.ErrInvalidInput, err))
		return
	}

	state, err := sess.Focus(req.Unit, req.Layer)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": state})
}

func (s *Server) expand(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	var req expandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, fmt.Errorf("%w: %v", apperr.ErrInvalidInput, err))
		return
	}

	view, err := sess.Expand(req.Unit)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"view": view, "state": sess.State()})
}

func (s *Server) undo(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": sess.Undo()})
}

func (s *Server) closeSession(c *gin.Context) {
	if err := s.engine.CloseSession(c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	sessionsLive.Dec()
	c.Status(http.StatusNoContent)
}

package sandbox

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/raizdigital/especies/pkg/logging"
	"github.com/raizdigital/especies/pkg/species"
)

// CollectionPath is where the sandbox serves the species collection.
const CollectionPath = "/api/especies"

// DefaultAddr is the default listen address of the sandbox.
const DefaultAddr = "localhost:8080"

var setGinMode sync.Once

// Server serves a Store over the species HTTP contract.
type Server struct {
	store  *Store
	logger *slog.Logger
	engine *gin.Engine
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a Server backed by store.
func NewServer(store *Store, opts ...Option) *Server {
	s := &Server{
		store:  store,
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	setGinMode.Do(func() { gin.SetMode(gin.ReleaseMode) })
	r := gin.New()
	r.Use(gin.Recovery(), corsMiddleware(), s.requestLogger())

	api := r.Group(CollectionPath)
	api.GET("", s.listSpecies)
	api.POST("", s.createSpecies)
	api.GET("/:id", s.getSpecies)
	api.PUT("/:id", s.replaceSpecies)
	api.DELETE("/:id", s.deleteSpecies)
	api.OPTIONS("", optionsHandler)
	api.OPTIONS("/:id", optionsHandler)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "count": s.store.Count()})
	})

	s.engine = r
	return s
}

// Handler returns the HTTP handler of the sandbox.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// NewHTTPServer returns an http.Server for addr serving the sandbox.
func (s *Server) NewHTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (s *Server) listSpecies(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.List())
}

func (s *Server) getSpecies(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, found := s.store.Get(id)
	if !found {
		writeError(c, http.StatusNotFound, "not_found", "species not found")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) createSpecies(c *gin.Context) {
	var p species.Payload
	if err := c.ShouldBindJSON(&p); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	c.JSON(http.StatusCreated, s.store.Create(p))
}

func (s *Server) replaceSpecies(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var p species.Payload
	if err := c.ShouldBindJSON(&p); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}

	item, err := s.store.Replace(id, p)
	if errors.Is(err, ErrNotFound) {
		writeError(c, http.StatusNotFound, "not_found", "species not found")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) deleteSpecies(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if !s.store.Delete(id) {
		writeError(c, http.StatusNotFound, "not_found", "species not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func optionsHandler(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// pathID parses the :id parameter, writing a 400 response when it is not a
// positive integer.
func pathID(c *gin.Context) (int64, bool) {
	id, err := species.ParseID(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid_id", "id must be a positive number")
		return 0, false
	}
	return id, true
}

func writeError(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": code, "message": msg})
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Accept, "+species.RequestIDHeader)
		h.Set("Access-Control-Max-Age", "86400")
		c.Next()
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("sandbox request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"request_id", c.GetHeader(species.RequestIDHeader),
		)
	}
}

// Package httpapi serves the record and search API over HTTP.
package httpapi

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/rustyrag/rustyrag/internal/core/ports/driving"
	"github.com/rustyrag/rustyrag/internal/logger"
)

// shutdownTimeout bounds how long Stop waits for in-flight requests.
const shutdownTimeout = 5 * time.Second

// Server exposes record management and search over HTTP.
type Server struct {
	records driving.RecordService
	search  driving.SearchService

	port     int
	engine   *gin.Engine
	server   *http.Server
	listener net.Listener
	errChan  chan error
}

// NewServer wires the API around the given services.
// If port is 0, a random available port will be chosen at Start.
func NewServer(records driving.RecordService, search driving.SearchService, port int) *Server {
	s := &Server{
		records: records,
		search:  search,
		port:    port,
		errChan: make(chan error, 1),
	}
	s.engine = s.router()
	s.server = &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// router assembles the gin engine: open CORS, then the API routes.
func (s *Server) router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(accessLog())
	r.Use(cors.Default())

	r.GET("/", s.handleRoot)
	r.GET("/health", s.handleHealth)
	r.GET("/hello/:name", s.handleHello)

	r.POST("/records", s.handleCreateRecord)
	r.POST("/records/batch", s.handleCreateBatch)
	r.GET("/records", s.handleListRecords)
	r.GET("/records/:id", s.handleGetRecord)

	r.GET("/search", s.handleSearchGet)
	r.POST("/search", s.handleSearchPost)

	return r
}

// accessLog routes request logs through the verbose-gated logger instead
// of gin's own writer.
func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("%s %s -> %d (%s)",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// ServeHTTP dispatches a request through the router, making the server
// usable as a plain http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}

// Start begins serving in the background.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	s.listener = listener

	// Store the actual port (important when port was 0)
	if tcpAddr, ok := listener.Addr().(*net.TCPAddr); ok {
		s.port = tcpAddr.Port
	}

	logger.Info("HTTP API listening on port %d", s.port)

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			select {
			case s.errChan <- err:
			default:
			}
		}
	}()

	return nil
}

// Run serves until the context is cancelled, then drains in-flight
// requests before returning.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return s.Stop()
	case err := <-s.errChan:
		return fmt.Errorf("serve: %w", err)
	}
}

// Stop shuts the server down, draining in-flight requests for up to
// shutdownTimeout.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Port returns the port the server is listening on.
func (s *Server) Port() int {
	return s.port
}

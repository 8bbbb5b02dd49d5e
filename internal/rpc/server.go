// Package rpc provides the HTTP RPC server used to manage a running Tessera
// node. The server binds to loopback by default; operators widen the bind
// address deliberately when remote management is wanted.
package rpc

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tessera-network/tesserad/internal/logging"
	"github.com/tessera-network/tesserad/internal/membership"
	"github.com/tessera-network/tesserad/internal/version"
)

// Config holds the RPC server configuration
type Config struct {
	BindAddr   string
	BindPort   int
	Membership *membership.Manager
}

// Server serves the node management RPC endpoints
type Server struct {
	membership *membership.Manager
	httpServer *http.Server
	bindAddr   string
	bindPort   int
	startTime  time.Time
}

// NewServer creates a new RPC server instance
func NewServer(cfg *Config) *Server {
	gin.SetMode(gin.ReleaseMode)

	return &Server{
		membership: cfg.Membership,
		bindAddr:   cfg.BindAddr,
		bindPort:   cfg.BindPort,
	}
}

// Start binds and serves the RPC endpoints. Binding is tested synchronously
// so a port conflict fails startup instead of surfacing later from the serve
// goroutine.
func (s *Server) Start() error {
	s.startTime = time.Now()
	logging.Info("Starting RPC server on %s:%d", s.bindAddr, s.bindPort)

	router := gin.New()

	gin.DefaultWriter = logging.NewLevelWriter("INFO", "rpc")
	gin.DefaultErrorWriter = logging.NewLevelWriter("ERROR", "rpc")

	router.Use(s.loggingMiddleware())
	router.Use(gin.Recovery())

	s.setupRoutes(router)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.bindAddr, s.bindPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to bind to %s: %w", s.httpServer.Addr, err)
	}
	listener.Close()

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Error("RPC server failed: %v", err)
		}
	}()

	logging.Success("RPC server started successfully")
	return nil
}

// Shutdown gracefully shuts down the RPC server
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down RPC server...")

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}

	return nil
}

func (s *Server) setupRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	{
		v1.GET("/status", s.handleStatus)
		v1.GET("/version", s.handleVersion)
		v1.GET("/peers", s.handlePeers)
	}
}

func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logging.Debug("RPC %s %s -> %d (%s)",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

func (s *Server) handleStatus(c *gin.Context) {
	status := gin.H{
		"status": "running",
		"uptime": time.Since(s.startTime).String(),
	}

	if s.membership != nil {
		local := s.membership.LocalPeer()
		if local != nil {
			status["node_id"] = local.ID
			status["node_name"] = local.Name
		}
		status["peer_count"] = s.membership.PeerCount()
	}

	c.JSON(http.StatusOK, status)
}

func (s *Server) handleVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":        version.Version,
		"schema_version": version.SchemaVersion,
	})
}

func (s *Server) handlePeers(c *gin.Context) {
	if s.membership == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "membership layer not running"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"peers": s.membership.Peers()})
}

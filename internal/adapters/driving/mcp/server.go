package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/pdfshelf/internal/logger"
)

// Version is reported to clients in the initialize handshake.
const Version = "0.1.0"

// shutdownGrace bounds how long in-flight tool calls may run after the
// context is cancelled.
const shutdownGrace = 5 * time.Second

// Server exposes the PDF library to MCP clients. It offers the list_pdfs,
// prepare_pdf and delete_pdf tools plus the pdfshelf://library resource and
// one pdfshelf://documents/{name} resource per discovered PDF.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer registers the PDF tools and resources against ports.
// Library and Presenter are required.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports:  ports,
		server: mcp.NewServer(&mcp.Implementation{Name: "pdfshelf", Version: Version}, nil),
	}
	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run serves the library over stdin and stdout until ctx is done or the
// client disconnects.
func (s *Server) Run(ctx context.Context) error {
	logger.Debug("mcp: serving library over stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Handler returns the streamable HTTP handler for the library tools.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)
}

// RunHTTP serves the library on addr until ctx is done. A cancelled
// context is a clean exit and returns nil.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	served := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		select {
		case <-served:
			return
		case <-ctx.Done():
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("mcp: shutdown of %s: %v", addr, err)
		}
	}()

	logger.Info("mcp: serving library on %s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		<-stopped
		return nil
	}
	close(served)
	<-stopped
	return fmt.Errorf("serving mcp on %s: %w", addr, err)
}

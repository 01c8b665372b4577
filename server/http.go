package server

import (
	"context"
	"net/http"
	"time"

	"github.com/viant/jsonrpc/transport/server/http/sse"
	"github.com/viant/jsonrpc/transport/server/http/streamable"
)

const (
	// DefaultAddr binds to localhost only
	DefaultAddr          = "127.0.0.1:5000"
	defaultSSEURI        = "/sse"
	defaultSSEMessageURI = "/message"
	defaultStreamableURI = "/dyopen"
)

type httpServer struct {
	sseHandler         *sse.Handler
	streamingHandler   *streamable.Handler
	addr               string
	customHTTPHandlers map[string]http.Handler
	sseURI             string
	sseMessageURI      string
	streamableURI      string
	cors               *Cors
}

// HTTP creates an HTTP server mounting the SSE and streamable transports plus custom handlers.
func (s *Server) HTTP(_ context.Context, addr string) *http.Server {
	if addr == "" {
		addr = s.addr
	}
	if addr == "" {
		addr = DefaultAddr
	}
	if s.sseURI == "" {
		s.sseURI = defaultSSEURI
	}
	if s.sseMessageURI == "" {
		s.sseMessageURI = defaultSSEMessageURI
	}
	if s.streamableURI == "" {
		s.streamableURI = defaultStreamableURI
	}
	s.sseHandler = sse.New(s.NewHandler,
		sse.WithURI(s.sseURI),
		sse.WithMessageURI(s.sseMessageURI),
	)
	s.streamingHandler = streamable.New(s.NewHandler,
		streamable.WithURI(s.streamableURI),
	)
	mux := http.NewServeMux()
	for path, handler := range s.customHTTPHandlers {
		mux.Handle(path, handler)
	}
	cors := s.cors
	if cors == nil {
		cors = DefaultCors()
	}
	middlewares := []Middleware{
		loggingMiddleware(s.logger),
		originValidationMiddleware(cors),
		cors.Middleware,
	}
	sseChain := ChainMiddlewareHandlers(s.sseHandler, middlewares...)
	streamChain := ChainMiddlewareHandlers(s.streamingHandler, middlewares...)
	mux.Handle(s.sseURI, sseChain)
	mux.Handle(s.sseMessageURI, sseChain)
	mux.Handle(s.streamableURI, streamChain)
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

package server

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/viant/dyopen/sdk/host"
	"github.com/viant/jsonrpc/transport/server/stdio"
	"go.uber.org/zap"
)

// Option is a function that configures the server.
type Option func(s *Server) error

// WithCORS sets the CORS configuration of the HTTP transports.
func WithCORS(cors *Cors) Option {
	return func(s *Server) error {
		s.cors = cors
		return nil
	}
}

// WithHost binds the forwarding SDK to the connection sending callback/attach.
func WithHost(aHost *host.Host) Option {
	return func(s *Server) error {
		s.host = aHost
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) error {
		if logger != nil {
			s.logger = logger.Named("server")
		}
		return nil
	}
}

// WithStdioOptions sets the stdio server options.
func WithStdioOptions(options ...stdio.Option) Option {
	return func(s *Server) error {
		s.stdioServerOption = append(s.stdioServerOption, options...)
		return nil
	}
}

// WithHTTPHandler mounts a custom handler on the HTTP server.
func WithHTTPHandler(path string, handler http.Handler) Option {
	return func(s *Server) error {
		if path == "" || handler == nil {
			return errors.Newf("invalid http handler for path %q", path)
		}
		if s.customHTTPHandlers == nil {
			s.customHTTPHandlers = map[string]http.Handler{}
		}
		s.customHTTPHandlers[path] = handler
		return nil
	}
}

// WithAddr sets the HTTP listen address.
func WithAddr(addr string) Option {
	return func(s *Server) error {
		s.addr = addr
		return nil
	}
}

// WithSSEURIs sets the SSE stream and message paths.
func WithSSEURIs(uri, messageURI string) Option {
	return func(s *Server) error {
		s.sseURI = uri
		s.sseMessageURI = messageURI
		return nil
	}
}

// WithStreamableURI sets the streamable HTTP path.
func WithStreamableURI(uri string) Option {
	return func(s *Server) error {
		s.streamableURI = uri
		return nil
	}
}

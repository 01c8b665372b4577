package server

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/viant/dyopen/bridge"
	"github.com/viant/dyopen/internal/collection"
	"github.com/viant/dyopen/sdk/host"
	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
	"go.uber.org/zap"
)

// Server exposes the bridge over JSON-RPC transports
type Server struct {
	bridge   *bridge.Bridge
	host     *host.Host
	handlers *collection.SyncMap[*Handler, bool]
	logger   *zap.Logger

	stdioServer
	httpServer
}

// Bridge returns the served bridge
func (s *Server) Bridge() *bridge.Bridge {
	return s.bridge
}

// NewHandler creates a new handler instance
func (s *Server) NewHandler(ctx context.Context, transport transport.Transport) transport.Handler {
	handler := s.newHandler(ctx, transport)
	return handler
}

func (s *Server) newHandler(_ context.Context, transport transport.Transport) *Handler {
	ret := &Handler{
		Server:         s,
		Notifier:       transport,
		transport:      transport,
		activeContexts: collection.NewSyncMap[string, *activeContext](),
	}
	s.handlers.Put(ret, true)
	return ret
}

// Publish notifies every connected handler; handlers whose transport fails are dropped.
func (s *Server) Publish(ctx context.Context, method string, params any) error {
	notification, err := jsonrpc.NewNotification(method, params)
	if err != nil {
		return errors.Wrapf(err, "failed to encode %v", method)
	}
	var errs error
	s.handlers.Range(func(handler *Handler, _ bool) bool {
		if notifyErr := handler.Notify(ctx, notification); notifyErr != nil {
			s.handlers.Delete(handler)
			s.detach(handler)
			errs = errors.CombineErrors(errs, notifyErr)
		}
		return true
	})
	return errs
}

func (s *Server) detach(handler *Handler) {
	if s.host != nil {
		s.host.Detach(handler.transport)
	}
}

// New creates a server for the bridge and registers itself as the bridge event publisher.
func New(aBridge *bridge.Bridge, options ...Option) (*Server, error) {
	if aBridge == nil {
		return nil, errors.New("server: bridge was nil")
	}
	s := &Server{
		bridge:   aBridge,
		handlers: collection.NewSyncMap[*Handler, bool](),
		logger:   zap.NewNop(),
	}
	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}
	aBridge.SetPublisher(s)
	return s, nil
}

var _ bridge.Publisher = (*Server)(nil)

// Package host implements the vendor SDK by forwarding calls to the native host over
// the JSON-RPC connection the host opened; outcomes return as callback notifications.
package host

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/viant/dyopen/locator"
	"github.com/viant/dyopen/schema"
	"github.com/viant/dyopen/sdk"
	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
	"go.uber.org/zap"
)

// ErrDetached is returned while no host connection is attached.
var ErrDetached = sdk.ErrDetached

// Host forwards vendor calls to the native host
type Host struct {
	mu        sync.RWMutex
	transport transport.Transport
	surface   bool
	version   string
	timeout   time.Duration
	logger    *zap.Logger
}

// Attach binds the host connection; the UI surface is assumed present until detached.
func (h *Host) Attach(aTransport transport.Transport) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.transport = aTransport
	h.surface = aTransport != nil
}

// SetSurface records host UI surface attach and detach events.
func (h *Host) SetSurface(attached bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.surface = attached
}

// Detach drops the connection if it is still aTransport.
func (h *Host) Detach(aTransport transport.Transport) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.transport == aTransport {
		h.transport = nil
		h.surface = false
	}
}

func (h *Host) Init(ctx context.Context, clientKey string, debug bool) error {
	return h.call(ctx, schema.MethodSDKInit, &schema.InitializeParams{ClientKey: clientKey, Debug: debug}, nil)
}

func (h *Host) Version() string {
	h.mu.RLock()
	version := h.version
	h.mu.RUnlock()
	if version != "" {
		return version
	}
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()
	if err := h.call(ctx, schema.MethodSDKVersion, struct{}{}, &version); err != nil {
		return ""
	}
	h.mu.Lock()
	h.version = version
	h.mu.Unlock()
	return version
}

func (h *Host) Installed(ctx context.Context) bool {
	installed := false
	if err := h.call(ctx, schema.MethodSDKInstalled, struct{}{}, &installed); err != nil {
		h.logger.Debug("installed check failed", zap.Error(err))
		return false
	}
	return installed
}

func (h *Host) Supports(ctx context.Context, capability sdk.Capability) bool {
	supported := false
	params := map[string]string{"capability": string(capability)}
	if err := h.call(ctx, schema.MethodSDKSupports, params, &supported); err != nil {
		h.logger.Debug("capability check failed", zap.String("capability", string(capability)), zap.Error(err))
		return false
	}
	return supported
}

func (h *Host) Attached() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.transport != nil && h.surface
}

func (h *Host) Authorize(ctx context.Context, request *sdk.AuthorizeRequest) error {
	return h.call(ctx, schema.MethodSDKAuthorize, request, nil)
}

func (h *Host) Share(ctx context.Context, request *sdk.ShareRequest) error {
	return h.call(ctx, schema.MethodSDKShare, request, nil)
}

func (h *Host) ShareToContact(ctx context.Context, request *sdk.ContactRequest) error {
	return h.call(ctx, schema.MethodSDKShareToContact, request, nil)
}

func (h *Host) OpenRecord(ctx context.Context, request *sdk.RecordRequest) error {
	return h.call(ctx, schema.MethodSDKOpenRecord, request, nil)
}

// Grant asks the host to grant read access on the provider reference to packages.
func (h *Host) Grant(ctx context.Context, reference string, packages ...string) error {
	if reference == "" {
		return errors.New("empty reference")
	}
	return h.call(ctx, schema.MethodSDKGrant, &sdk.GrantRequest{Reference: reference, Packages: packages}, nil)
}

// call sends the request and decodes the result into result when not nil.
func (h *Host) call(ctx context.Context, method string, params any, result any) error {
	h.mu.RLock()
	aTransport := h.transport
	h.mu.RUnlock()
	if aTransport == nil {
		return errors.Wrapf(ErrDetached, "%v", method)
	}
	request, err := jsonrpc.NewRequest(method, params)
	if err != nil {
		return errors.Wrapf(err, "failed to create %v request", method)
	}
	request.Jsonrpc = jsonrpc.Version
	if sequencer, ok := aTransport.(transport.Sequencer); ok {
		id, _ := jsonrpc.AsRequestIntId(sequencer.NextRequestID())
		request.Id = uint64(id)
	}
	response, err := aTransport.Send(ctx, request)
	if err != nil {
		return errors.Wrapf(err, "failed to send %v", method)
	}
	if response == nil {
		return errors.Newf("no response for %v", method)
	}
	if response.Error != nil {
		return errors.Wrapf(response.Error, "%v", method)
	}
	if result == nil || len(response.Result) == 0 {
		return nil
	}
	if err = json.Unmarshal(response.Result, result); err != nil {
		return errors.Wrapf(err, "invalid %v result", method)
	}
	return nil
}

// New creates a detached host SDK
func New(options ...Option) *Host {
	ret := &Host{timeout: 5 * time.Second, logger: zap.NewNop()}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// Option configures a host SDK
type Option func(h *Host)

// WithTimeout sets the timeout of calls made without a caller context.
func WithTimeout(timeout time.Duration) Option {
	return func(h *Host) {
		if timeout > 0 {
			h.timeout = timeout
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(h *Host) {
		if logger != nil {
			h.logger = logger.Named("host")
		}
	}
}

var _ sdk.SDK = (*Host)(nil)
var _ sdk.Surface = (*Host)(nil)
var _ locator.Granter = (*Host)(nil)

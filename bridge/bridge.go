package bridge

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/viant/dyopen/config"
	"github.com/viant/dyopen/correlator"
	"github.com/viant/dyopen/failure"
	"github.com/viant/dyopen/locator"
	"github.com/viant/dyopen/schema"
	"github.com/viant/dyopen/sdk"
	"go.uber.org/zap"
)

// Platform is the host platform the bridge serves
type Platform string

const (
	Android Platform = "android"
	IOS     Platform = "ios"
)

// ParsePlatform parses a platform name
func ParsePlatform(name string) (Platform, error) {
	switch Platform(name) {
	case Android, IOS:
		return Platform(name), nil
	case "":
		return Android, nil
	}
	return "", errors.Newf("unsupported platform: %q", name)
}

// Publisher sends events to the application layer.
type Publisher interface {
	Publish(ctx context.Context, method string, params any) error
}

// Bridge owns the correlator and routes calls to the vendor SDK.
type Bridge struct {
	platform         Platform
	osVersion        string
	callerLocalEntry string
	policy           correlator.Policy
	sdk              sdk.SDK
	store            config.Store
	normalizer       *locator.Normalizer
	correlator       *correlator.Correlator
	logger           *zap.Logger

	mux         sync.RWMutex
	publisher   Publisher
	initialized bool
	clientKey   string
}

// Platform returns the host platform
func (b *Bridge) Platform() Platform {
	return b.platform
}

// SDK returns the vendor SDK
func (b *Bridge) SDK() sdk.SDK {
	return b.sdk
}

// Correlator returns the request correlator
func (b *Bridge) Correlator() *correlator.Correlator {
	return b.correlator
}

// SetPublisher replaces the application event publisher
func (b *Bridge) SetPublisher(publisher Publisher) {
	b.mux.Lock()
	defer b.mux.Unlock()
	b.publisher = publisher
}

// Initialized reports whether the vendor SDK was initialized in this process.
func (b *Bridge) Initialized() bool {
	b.mux.RLock()
	defer b.mux.RUnlock()
	return b.initialized
}

// Restore initializes the vendor SDK from the persisted record, if one was saved.
func (b *Bridge) Restore(ctx context.Context) error {
	if b.Initialized() {
		return nil
	}
	record, err := b.store.Load(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}
	if !record.Initialized || record.ClientKey == "" {
		return nil
	}
	if err = b.sdk.Init(ctx, record.ClientKey, record.DebugMode); err != nil {
		return errors.Wrap(err, "failed to restore sdk")
	}
	b.setInitialized(record.ClientKey)
	b.logger.Info("sdk restored from configuration", zap.Bool("debug", record.DebugMode))
	return nil
}

func (b *Bridge) setInitialized(clientKey string) {
	b.mux.Lock()
	defer b.mux.Unlock()
	b.initialized = clientKey != ""
	b.clientKey = clientKey
}

// Receive resolves the pending request of the response kind.
func (b *Bridge) Receive(_ context.Context, response sdk.Response) {
	if response == nil {
		return
	}
	kind := response.Kind()
	code, subCode, message := response.Status()
	var outcome correlator.Outcome
	if code != failure.VendorSuccess {
		outcome = correlator.Failed(failure.FromVendor(kind, code, subCode, message))
	} else {
		switch actual := response.(type) {
		case *sdk.AuthorizationResponse:
			outcome = correlator.Succeeded(map[string]any{
				"authCode":           actual.AuthCode,
				"state":              actual.State,
				"grantedPermissions": actual.GrantedPermissions,
			})
		case *sdk.ShareResponse:
			outcome = correlator.Succeeded(map[string]any{"state": actual.State})
		case *sdk.ShareToContactResponse, *sdk.OpenRecordResponse:
			outcome = correlator.Succeeded(nil)
		default:
			b.logger.Error("unknown response variant", zap.Stringer("kind", kind))
			return
		}
	}
	if err := b.correlator.Resolve(kind, outcome); err != nil && !errors.Is(err, correlator.ErrNoPendingRequest) {
		b.logger.Error("failed to resolve response", zap.Stringer("kind", kind), zap.Error(err))
	}
}

// StayInDouyin forwards the stay in Douyin broadcast to the application layer.
func (b *Bridge) StayInDouyin(ctx context.Context, event *schema.StayInDouyin) {
	if event == nil {
		return
	}
	switch event.Action {
	case schema.StayActionShare, schema.StayActionIm:
	default:
		b.logger.Warn("unknown stay in douyin action", zap.String("action", event.Action))
		return
	}
	b.publish(ctx, schema.MethodEventStayInDouyin, event)
}

func (b *Bridge) onOrphan(kind correlator.Kind, outcome correlator.Outcome) {
	params := map[string]any{"kind": kind.String(), "success": outcome.OK()}
	if outcome.Failure != nil {
		params["failure"] = outcome.Failure
	}
	b.publish(context.Background(), schema.MethodEventOrphanCallback, params)
}

func (b *Bridge) publish(ctx context.Context, method string, params any) {
	b.mux.RLock()
	publisher := b.publisher
	b.mux.RUnlock()
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, method, params); err != nil {
		b.logger.Warn("failed to publish event", zap.String("method", method), zap.Error(err))
	}
}

// await issues a correlated request and waits for its outcome; send hands the request to the SDK.
// code reports issue and send failures, vendorCode replaces the kind code of a vendor callback failure.
func (b *Bridge) await(ctx context.Context, kind correlator.Kind, token, code, vendorCode string, send func() error) (correlator.Outcome, error) {
	outcomes := make(chan correlator.Outcome, 1)
	binding, err := b.correlator.Issue(kind, correlator.ChanSink(outcomes), token)
	if err != nil {
		return correlator.Outcome{}, failure.FromError(code, err)
	}
	if err = send(); err != nil {
		b.correlator.Abandon(binding)
		return correlator.Outcome{}, b.sendFailure(kind, code, err)
	}
	var outcome correlator.Outcome
	select {
	case outcome = <-outcomes:
	case <-ctx.Done():
		b.correlator.Abandon(binding)
		// the sink receives exactly one outcome: the cancellation, or a callback that won the race
		outcome = <-outcomes
	}
	if !outcome.OK() {
		outcome.Failure = failure.Recode(kind, outcome.Failure, vendorCode)
	}
	return outcome, nil
}

func (b *Bridge) sendFailure(kind correlator.Kind, code string, err error) *schema.Failure {
	switch {
	case errors.Is(err, sdk.ErrUnsupported):
		return schema.NewUnsupported(schema.Unsupported, kind.String(), "not supported by the vendor sdk")
	case errors.Is(err, sdk.ErrDetached):
		return b.surfaceFailure()
	}
	return failure.FromError(code, err)
}

// New creates a bridge over the vendor SDK; SDKs delivering callbacks in process are bound to it.
func New(ctx context.Context, vendor sdk.SDK, options ...Option) (*Bridge, error) {
	if vendor == nil {
		return nil, errors.New("bridge: sdk was nil")
	}
	ret := &Bridge{
		platform: Android,
		sdk:      vendor,
		store:    config.NewMemoryStore(),
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.normalizer == nil {
		ret.normalizer = locator.New(locator.WithLogger(ret.logger))
	}
	ret.correlator = correlator.New(
		correlator.WithPolicy(ret.policy),
		correlator.WithLogger(ret.logger),
		correlator.WithOrphanHandler(ret.onOrphan),
	)
	if binder, ok := vendor.(sdk.Binder); ok {
		binder.Bind(ret)
	}
	if err := ret.Restore(ctx); err != nil {
		ret.logger.Warn("configuration not restored", zap.Error(err))
	}
	return ret, nil
}

var _ sdk.Receiver = (*Bridge)(nil)

// Package simulator provides an in-process vendor SDK answering every request
// asynchronously with a scripted response.
package simulator

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/viant/dyopen/correlator"
	"github.com/viant/dyopen/sdk"
)

// Version reported by the simulator
const Version = "simulator-1.0"

// Script builds the vendor response for a request, a nil response leaves the request unanswered.
type Script func(request any) sdk.Response

// Simulator implements sdk.SDK
type Simulator struct {
	mu           sync.Mutex
	receiver     sdk.Receiver
	clientKey    string
	debug        bool
	installed    bool
	attached     bool
	version      string
	capabilities map[sdk.Capability]bool
	scripts      map[correlator.Kind]Script
	requests     []any
	manual       bool
	delay        time.Duration
	initErr      error
	wg           sync.WaitGroup
}

// Bind sets the callback receiver
func (s *Simulator) Bind(receiver sdk.Receiver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.receiver = receiver
}

func (s *Simulator) Init(_ context.Context, clientKey string, debug bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initErr != nil {
		return s.initErr
	}
	s.clientKey = clientKey
	s.debug = debug
	return nil
}

// ClientKey returns the key passed to Init
func (s *Simulator) ClientKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clientKey
}

func (s *Simulator) Version() string {
	return s.version
}

func (s *Simulator) Installed(_ context.Context) bool {
	return s.installed
}

func (s *Simulator) Supports(_ context.Context, capability sdk.Capability) bool {
	return s.capabilities[capability]
}

func (s *Simulator) Attached() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attached
}

// SetSurface changes the host surface state
func (s *Simulator) SetSurface(attached bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attached = attached
}

func (s *Simulator) Authorize(ctx context.Context, request *sdk.AuthorizeRequest) error {
	return s.submit(ctx, correlator.Authorization, request)
}

func (s *Simulator) Share(ctx context.Context, request *sdk.ShareRequest) error {
	return s.submit(ctx, correlator.Share, request)
}

func (s *Simulator) ShareToContact(ctx context.Context, request *sdk.ContactRequest) error {
	return s.submit(ctx, correlator.ShareToContact, request)
}

func (s *Simulator) OpenRecord(ctx context.Context, request *sdk.RecordRequest) error {
	return s.submit(ctx, correlator.OpenRecord, request)
}

// Requests returns the requests received so far
func (s *Simulator) Requests() []any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]any(nil), s.requests...)
}

// Deliver sends response to the bound receiver, as the vendor application would.
func (s *Simulator) Deliver(ctx context.Context, response sdk.Response) error {
	s.mu.Lock()
	receiver := s.receiver
	s.mu.Unlock()
	if receiver == nil {
		return errors.New("simulator: no receiver bound")
	}
	receiver.Receive(ctx, response)
	return nil
}

// Wait blocks until scripted deliveries in flight completed.
func (s *Simulator) Wait() {
	s.wg.Wait()
}

func (s *Simulator) submit(ctx context.Context, kind correlator.Kind, request any) error {
	s.mu.Lock()
	s.requests = append(s.requests, request)
	script := s.scripts[kind]
	manual := s.manual
	delay := s.delay
	s.mu.Unlock()
	if manual || script == nil {
		return nil
	}
	response := script(request)
	if response == nil {
		return nil
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if delay > 0 {
			time.Sleep(delay)
		}
		_ = s.Deliver(context.Background(), response)
	}()
	return nil
}

// Succeed answers every request successfully, authorization echoes the state.
func Succeed(request any) sdk.Response {
	switch actual := request.(type) {
	case *sdk.AuthorizeRequest:
		return &sdk.AuthorizationResponse{
			AuthCode:           "sim-" + uuid.New().String(),
			State:              actual.State,
			GrantedPermissions: strings.Split(actual.Scope, ","),
		}
	case *sdk.ShareRequest:
		return &sdk.ShareResponse{State: actual.ShareID}
	case *sdk.ContactRequest:
		return &sdk.ShareToContactResponse{}
	case *sdk.RecordRequest:
		return &sdk.OpenRecordResponse{}
	}
	return nil
}

// Fail returns a script answering with the vendor code and message.
func Fail(code int, message string) Script {
	return func(request any) sdk.Response {
		base := sdk.BaseResponse{ErrorCode: code, ErrorMsg: message}
		switch request.(type) {
		case *sdk.AuthorizeRequest:
			return &sdk.AuthorizationResponse{BaseResponse: base}
		case *sdk.ShareRequest:
			return &sdk.ShareResponse{BaseResponse: base}
		case *sdk.ContactRequest:
			return &sdk.ShareToContactResponse{BaseResponse: base}
		case *sdk.RecordRequest:
			return &sdk.OpenRecordResponse{BaseResponse: base}
		}
		return nil
	}
}

// New creates an installed, attached simulator supporting every capability.
func New(options ...Option) *Simulator {
	ret := &Simulator{
		installed: true,
		attached:  true,
		version:   Version,
		capabilities: map[sdk.Capability]bool{
			sdk.CapabilityDaily:    true,
			sdk.CapabilityContacts: true,
			sdk.CapabilityRecord:   true,
			sdk.CapabilityAlbum:    true,
		},
		scripts: map[correlator.Kind]Script{},
	}
	for _, kind := range correlator.Kinds() {
		ret.scripts[kind] = Succeed
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

var _ sdk.Surface = (*Simulator)(nil)
var _ sdk.SDK = (*Simulator)(nil)
var _ sdk.Binder = (*Simulator)(nil)

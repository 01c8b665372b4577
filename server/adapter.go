package server

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/viant/dyopen/schema"
	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
)

// HostFunc answers vendor calls the bridge forwards to the native host
type HostFunc func(ctx context.Context, request *jsonrpc.Request) (*jsonrpc.Response, error)

// Adapter is an in-process connection to the server: it calls the handler directly
// and acts as the connection transport, recording published events.
type Adapter struct {
	handler  *Handler
	sequence atomic.Int64
	mu       sync.Mutex
	host     HostFunc
	events   []*jsonrpc.Notification
}

// Notify records an event published by the server
func (a *Adapter) Notify(_ context.Context, notification *jsonrpc.Notification) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, notification)
	return nil
}

// Send answers a forwarded vendor call with the host function
func (a *Adapter) Send(ctx context.Context, request *jsonrpc.Request) (*jsonrpc.Response, error) {
	a.mu.Lock()
	host := a.host
	a.mu.Unlock()
	if host == nil {
		return nil, errors.Newf("adapter: no host for %v", request.Method)
	}
	return host(ctx, request)
}

// SetHost sets the function answering forwarded vendor calls
func (a *Adapter) SetHost(host HostFunc) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.host = host
}

// Events returns the events published so far
func (a *Adapter) Events() []*jsonrpc.Notification {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]*jsonrpc.Notification{}, a.events...)
}

// NextID returns the id of the next request
func (a *Adapter) NextID() int {
	return int(a.sequence.Add(1))
}

// Call sends a request to the handler and decodes its result
func (a *Adapter) Call(ctx context.Context, id any, method string, params any, result any) error {
	request, err := jsonrpc.NewRequest(method, params)
	if err != nil {
		return err
	}
	request.Jsonrpc = jsonrpc.Version
	request.Id = id
	response := &jsonrpc.Response{}
	a.handler.Serve(ctx, request, response)
	if response.Error != nil {
		return response.Error
	}
	if result == nil {
		return nil
	}
	return json.Unmarshal(response.Result, result)
}

// Notification sends a notification to the handler
func (a *Adapter) Notification(ctx context.Context, method string, params any) error {
	notification, err := jsonrpc.NewNotification(method, params)
	if err != nil {
		return err
	}
	a.handler.OnNotification(ctx, notification)
	return nil
}

func invoke[R any](ctx context.Context, a *Adapter, method string, params any) (*R, error) {
	result := new(R)
	if err := a.Call(ctx, a.NextID(), method, params, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (a *Adapter) Initialize(ctx context.Context, params *schema.InitializeParams) (*schema.Result, error) {
	return invoke[schema.Result](ctx, a, schema.MethodInitialize, params)
}

func (a *Adapter) Authorize(ctx context.Context, params *schema.AuthorizeParams) (*schema.AuthorizeResult, error) {
	return invoke[schema.AuthorizeResult](ctx, a, schema.MethodAuthorize, params)
}

func (a *Adapter) ShareImages(ctx context.Context, params *schema.ShareParams) (*schema.Result, error) {
	return invoke[schema.Result](ctx, a, schema.MethodShareImages, params)
}

func (a *Adapter) ShareVideos(ctx context.Context, params *schema.ShareParams) (*schema.Result, error) {
	return invoke[schema.Result](ctx, a, schema.MethodShareVideos, params)
}

func (a *Adapter) ShareDaily(ctx context.Context, params *schema.DailyParams) (*schema.Result, error) {
	return invoke[schema.Result](ctx, a, schema.MethodShareDaily, params)
}

func (a *Adapter) ShareImageToIm(ctx context.Context, params *schema.ImageToImParams) (*schema.Result, error) {
	return invoke[schema.Result](ctx, a, schema.MethodShareImageToIm, params)
}

func (a *Adapter) ShareHtmlToIm(ctx context.Context, params *schema.HtmlToImParams) (*schema.Result, error) {
	return invoke[schema.Result](ctx, a, schema.MethodShareHtmlToIm, params)
}

func (a *Adapter) OpenRecord(ctx context.Context, params *schema.OpenRecordParams) (*schema.Result, error) {
	return invoke[schema.Result](ctx, a, schema.MethodOpenRecord, params)
}

func (a *Adapter) IsDouyinInstalled(ctx context.Context) (bool, error) {
	result, err := invoke[bool](ctx, a, schema.MethodIsDouyinInstalled, nil)
	if err != nil {
		return false, err
	}
	return *result, nil
}

func (a *Adapter) GetPlatformVersion(ctx context.Context) (string, error) {
	result, err := invoke[string](ctx, a, schema.MethodGetPlatformVersion, nil)
	if err != nil {
		return "", err
	}
	return *result, nil
}

func (a *Adapter) GetSDKVersion(ctx context.Context) (string, error) {
	result, err := invoke[string](ctx, a, schema.MethodGetSDKVersion, nil)
	if err != nil {
		return "", err
	}
	return *result, nil
}

func (a *Adapter) Reset(ctx context.Context) (*schema.Result, error) {
	return invoke[schema.Result](ctx, a, schema.MethodReset, nil)
}

// Callback delivers a vendor callback the way the native host does
func (a *Adapter) Callback(ctx context.Context, callback *schema.CallbackResponse) error {
	return a.Notification(ctx, schema.MethodCallbackResponse, callback)
}

// AsClient returns an in-process connection to the server
func (s *Server) AsClient(ctx context.Context) *Adapter {
	ret := &Adapter{}
	ret.handler = s.newHandler(ctx, ret)
	return ret
}

var _ transport.Transport = (*Adapter)(nil)

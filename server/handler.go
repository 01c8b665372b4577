package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/viant/dyopen/internal/collection"
	"github.com/viant/dyopen/internal/conv"
	"github.com/viant/dyopen/schema"
	"github.com/viant/dyopen/sdk"
	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
	"go.uber.org/zap"
)

// Handler serves one transport connection; in-flight requests are keyed by their JSON-RPC id within the connection.
type Handler struct {
	transport.Notifier
	*Server
	transport      transport.Transport
	activeContexts *collection.SyncMap[string, *activeContext]
}

// Serve handles incoming JSON-RPC requests
func (h *Handler) Serve(parent context.Context, request *jsonrpc.Request, response *jsonrpc.Response) {
	if jsonrpc.Version != request.Jsonrpc {
		response.Error = jsonrpc.NewInvalidRequest("invalid JSON-RPC version", nil)
		return
	}
	if !implements(request.Method) {
		response.Error = jsonrpc.NewMethodNotFound(fmt.Sprintf("method: %v not found", request.Method), request.Params)
		return
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	if id := conv.AsKey(request.Id); id != "" {
		active, activeCtx := newActiveContext(ctx, cancel, request)
		ctx = activeCtx
		h.activeContexts.Put(id, active)
		defer h.release(id, active)
	}

	b := h.bridge
	switch request.Method {
	case schema.MethodInitialize:
		serve(ctx, h, request, response, b.Initialize)
	case schema.MethodAuthorize:
		serve(ctx, h, request, response, b.Authorize)
	case schema.MethodShareImages:
		serve(ctx, h, request, response, b.ShareImages)
	case schema.MethodShareVideos:
		serve(ctx, h, request, response, b.ShareVideos)
	case schema.MethodShareDaily:
		serve(ctx, h, request, response, b.ShareDaily)
	case schema.MethodShareImageToIm:
		serve(ctx, h, request, response, b.ShareImageToIm)
	case schema.MethodShareHtmlToIm:
		serve(ctx, h, request, response, b.ShareHtmlToIm)
	case schema.MethodOpenRecord:
		serve(ctx, h, request, response, b.OpenRecord)
	case schema.MethodIsDouyinInstalled:
		h.setResponse(response, b.IsDouyinInstalled(ctx), nil)
	case schema.MethodGetPlatformVersion:
		h.setResponse(response, b.GetPlatformVersion(), nil)
	case schema.MethodGetSDKVersion:
		h.setResponse(response, b.GetSDKVersion(), nil)
	case schema.MethodReset:
		result, err := b.Reset(ctx)
		h.setResponse(response, result, err)
	}
}

// serve decodes request params into T and calls fn
func serve[T any, R any](ctx context.Context, h *Handler, request *jsonrpc.Request, response *jsonrpc.Response, fn func(context.Context, *T) (R, error)) {
	params := new(T)
	if err := decode(request.Params, params); err != nil {
		h.setResponse(response, nil, err)
		return
	}
	result, err := fn(ctx, params)
	h.setResponse(response, result, err)
}

func decode(data json.RawMessage, target any) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, target); err != nil {
		return schema.NewBadArgs(fmt.Sprintf("invalid params: %v", err), "")
	}
	return nil
}

func (h *Handler) setResponse(response *jsonrpc.Response, result interface{}, err error) {
	if err != nil {
		response.Error = rpcError(err)
		return
	}
	if response.Result, err = json.Marshal(result); err != nil {
		response.Error = jsonrpc.NewInternalError(err.Error(), []byte{})
	}
}

// rpcError converts a failure into a JSON-RPC error carrying {code, message, details} as data.
func rpcError(err error) *jsonrpc.Error {
	var failure *schema.Failure
	if !errors.As(err, &failure) {
		failure = schema.NewFromError(schema.UnknownError, err)
	}
	data, _ := json.Marshal(failure)
	ret := jsonrpc.NewInternalError(failure.Message, data)
	ret.Code = failure.RPCCode()
	return ret
}

// OnNotification handles incoming JSON-RPC notifications
func (h *Handler) OnNotification(ctx context.Context, notification *jsonrpc.Notification) {
	switch notification.Method {
	case schema.MethodNotificationCancel:
		if err := h.Cancel(ctx, notification); err != nil {
			h.logger.Warn("invalid cancel notification", zap.Error(err))
		}
	case schema.MethodCallbackResponse:
		callback := &schema.CallbackResponse{}
		if err := json.Unmarshal(notification.Params, callback); err != nil {
			h.logger.Warn("invalid callback payload", zap.Error(err))
			return
		}
		response, err := sdk.FromCallback(callback)
		if err != nil {
			h.logger.Warn("callback not decoded", zap.Error(err))
			return
		}
		h.bridge.Receive(ctx, response)
	case schema.MethodCallbackStayInDouyin:
		event := &schema.StayInDouyin{}
		if err := json.Unmarshal(notification.Params, event); err != nil {
			h.logger.Warn("invalid stay in douyin payload", zap.Error(err))
			return
		}
		h.bridge.StayInDouyin(ctx, event)
	case schema.MethodCallbackAttach:
		h.attach(ctx)
	case schema.MethodCallbackDetach:
		h.setSurface(false)
	default:
		h.logger.Debug("notification ignored", zap.String("method", notification.Method))
	}
}

func (h *Handler) attach(ctx context.Context) {
	if h.host != nil {
		h.host.Attach(h.transport)
	} else {
		h.setSurface(true)
	}
	// restore runs detached from the notification so host calls can be answered while it waits
	go func() {
		if err := h.bridge.Restore(context.WithoutCancel(ctx)); err != nil {
			h.logger.Warn("configuration not restored on attach", zap.Error(err))
		}
	}()
}

func (h *Handler) setSurface(attached bool) {
	if surface, ok := h.bridge.SDK().(sdk.Surface); ok {
		surface.SetSurface(attached)
	}
}

// release drops the active context unless a later request reused the id
func (h *Handler) release(id string, active *activeContext) {
	if current, ok := h.activeContexts.Get(id); ok && current == active {
		h.activeContexts.Delete(id)
	}
}

func (h *Handler) cancelOperation(id string) bool {
	active, ok := h.activeContexts.Take(id)
	if ok {
		active.CancelFunc()
	}
	return ok
}

func implements(method string) bool {
	for _, candidate := range schema.Methods {
		if candidate == method {
			return true
		}
	}
	return false
}

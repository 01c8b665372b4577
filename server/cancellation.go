package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/viant/dyopen/internal/conv"
	"github.com/viant/dyopen/schema"
	"github.com/viant/jsonrpc"
	"go.uber.org/zap"
)

// Cancel cancels the context of an in-flight request of this connection; a waiting request then resolves as cancelled.
func (h *Handler) Cancel(_ context.Context, notification *jsonrpc.Notification) *jsonrpc.Error {
	var params schema.CancelledParams
	if err := json.Unmarshal(notification.Params, &params); err != nil {
		return jsonrpc.NewParsingError(fmt.Sprintf("failed to parse notification: %v", err), notification.Params)
	}
	id := conv.AsKey(params.RequestId)
	if id == "" {
		return jsonrpc.NewInvalidParamsError("invalid requestId", notification.Params)
	}
	active, ok := h.activeContexts.Get(id)
	if !ok {
		h.logger.Debug("cancel for unknown request", zap.String("id", id))
		return nil
	}
	h.logger.Info("request cancelled", zap.String("id", id), zap.String("method", active.method), zap.String("reason", params.Reason))
	h.cancelOperation(id)
	return nil
}

package server

import (
	"context"

	"github.com/viant/jsonrpc"
)

type activeContext struct {
	context.Context
	context.CancelFunc
	method string
}

func newActiveContext(ctx context.Context, cancel context.CancelFunc, request *jsonrpc.Request) (*activeContext, context.Context) {
	return &activeContext{
		Context:    ctx,
		CancelFunc: cancel,
		method:     request.Method,
	}, ctx
}

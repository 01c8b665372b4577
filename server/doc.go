// Package server exposes the bridge method catalogue over JSON-RPC transports.
//
// Requests from the application layer are dispatched to the bridge; notifications
// from the native host deliver vendor callbacks, stay in Douyin broadcasts and
// surface lifecycle events. Bridge events are published to every connection.
//
// Example:
//
//	srv, err := server.New(aBridge, server.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	return srv.Stdio(ctx).ListenAndServe()
package server

// Package dyopen runs the Douyin Open Platform bridge: a JSON-RPC server exposing
// initialization, authorization and sharing to the application layer while the
// native host delivers vendor callbacks over the same connection.
//
// Usage:
//
//	dyopen -T stdio -P android -s host -p com.example.app -c options.yaml
//
// Options may be loaded from a yaml file; flags override file values.
package dyopen

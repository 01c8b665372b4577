// Package sdk describes the vendor SDK consumed by the bridge and the callback
// responses it delivers.
//
// Implementations live in sub packages: host forwards calls to the native host over
// JSON-RPC, simulator answers in process, web runs the H5 authorization flow.
package sdk

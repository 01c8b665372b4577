// Package config persists the bridge initialization record
// {clientKey, debugMode, initialized} across process restarts.
//
// FileStore keeps the record as JSON at an afs URL, the in-memory store is used by tests
// and ephemeral processes.
package config

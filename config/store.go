package config

import (
	"context"
	"sync"
)

// DefaultName is the persisted record file name.
const DefaultName = "dy_open_sdk_config.json"

// Record is the persisted initialization state.
type Record struct {
	ClientKey   string `json:"clientKey" yaml:"clientKey"`
	DebugMode   bool   `json:"debugMode" yaml:"debugMode"`
	Initialized bool   `json:"initialized" yaml:"initialized"`
}

// Store persists the record across process restarts; it is cleared only by Reset.
type Store interface {
	// Load returns the persisted record, a zero record when nothing was saved.
	Load(ctx context.Context) (*Record, error)
	// Save persists the client key and debug flag and marks the record initialized.
	Save(ctx context.Context, clientKey string, debug bool) error
	// Reset clears the persisted record.
	Reset(ctx context.Context) error
}

type memoryStore struct {
	mu     sync.RWMutex
	record Record
}

func (m *memoryStore) Load(_ context.Context) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ret := m.record
	return &ret, nil
}

func (m *memoryStore) Save(_ context.Context, clientKey string, debug bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record = Record{ClientKey: clientKey, DebugMode: debug, Initialized: true}
	return nil
}

func (m *memoryStore) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record = Record{}
	return nil
}

// NewMemoryStore creates a process local store
func NewMemoryStore() Store {
	return &memoryStore{}
}

package config

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/viant/afs"
)

// FileStore persists the record as JSON at an afs URL.
type FileStore struct {
	mu     sync.RWMutex
	URL    string
	fs     afs.Service
	record *Record
}

// Load reads the record, caching it after the first successful read.
func (f *FileStore) Load(ctx context.Context) (*Record, error) {
	f.mu.RLock()
	if f.record != nil {
		ret := *f.record
		f.mu.RUnlock()
		return &ret, nil
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()
	record, err := f.load(ctx)
	if err != nil {
		return nil, err
	}
	f.record = record
	ret := *record
	return &ret, nil
}

// Save writes the record through a temporary file.
func (f *FileStore) Save(ctx context.Context, clientKey string, debug bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	record := &Record{ClientKey: clientKey, DebugMode: debug, Initialized: true}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.URL + ".tmp"
	if err = f.fs.Upload(ctx, tmp, 0o600, bytes.NewReader(data)); err != nil {
		return errors.Wrapf(err, "failed to write %v", tmp)
	}
	if err = f.fs.Move(ctx, tmp, f.URL); err != nil {
		return errors.Wrapf(err, "failed to replace %v", f.URL)
	}
	f.record = record
	return nil
}

// Reset removes the persisted record.
func (f *FileStore) Reset(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record = &Record{}
	exists, err := f.fs.Exists(ctx, f.URL)
	if err != nil || !exists {
		return err
	}
	return f.fs.Delete(ctx, f.URL)
}

func (f *FileStore) load(ctx context.Context) (*Record, error) {
	exists, err := f.fs.Exists(ctx, f.URL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check %v", f.URL)
	}
	if !exists {
		return &Record{}, nil
	}
	data, err := f.fs.DownloadWithURL(ctx, f.URL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %v", f.URL)
	}
	record := &Record{}
	if len(bytes.TrimSpace(data)) == 0 {
		return record, nil
	}
	if err = json.Unmarshal(data, record); err != nil {
		return nil, errors.Wrapf(err, "invalid config record %v", f.URL)
	}
	return record, nil
}

// NewFileStore creates a Store persisting at URL
func NewFileStore(URL string, fs afs.Service) *FileStore {
	if fs == nil {
		fs = afs.New()
	}
	return &FileStore{URL: URL, fs: fs}
}

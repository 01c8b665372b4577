package locator

import (
	"context"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"go.uber.org/zap"
)

const (
	contentScheme = "content://"
	fileScheme    = "file://"

	scratchPrefix = "share_"
	defaultExt    = "tmp"
)

var (
	// ErrNotFound is returned for a local locator that does not exist.
	ErrNotFound = errors.New("locator: resource not found")
	// ErrInvalidLocator is returned for an empty locator or unsupported scheme.
	ErrInvalidLocator = errors.New("locator: invalid locator")
	// ErrCopyFailed is returned when a foreign reference could not be copied to scratch.
	ErrCopyFailed = errors.New("locator: copy failed")
	// ErrProvider is returned when no provider could grant access.
	ErrProvider = errors.New("locator: provider grant failed")
)

// Normalized is a provider-accessible reference derived from a caller locator.
type Normalized struct {
	Input     string `json:"input"`
	Reference string `json:"reference"`
	// Path is the local file the reference points at.
	Path string `json:"path,omitempty"`
	// Scratch is the URL of the bridge-owned copy, empty when no copy was made.
	Scratch string `json:"scratch,omitempty"`
}

// Normalizer converts caller locators into references the vendor application can read.
type Normalizer struct {
	fs          afs.Service
	hostPackage string
	providers   []*Provider
	scratchURL  string
	resolver    ContentResolver
	granter     Granter
	packages    []string
	logger      *zap.Logger

	mux     sync.Mutex
	scratch map[string]bool
}

// Normalize converts a single locator.
func (n *Normalizer) Normalize(ctx context.Context, locator string) (*Normalized, error) {
	locator = strings.TrimSpace(locator)
	if locator == "" {
		return nil, errors.Wrap(ErrInvalidLocator, "empty locator")
	}
	switch {
	case strings.HasPrefix(locator, contentScheme):
		authority, _ := splitContent(locator)
		if n.provider(authority) != nil {
			return &Normalized{Input: locator, Reference: locator}, nil
		}
		return n.copyForeign(ctx, locator)
	case strings.HasPrefix(locator, fileScheme):
		return n.local(ctx, locator, url.Path(locator))
	case strings.Contains(locator, "://"):
		return nil, errors.Wrapf(ErrInvalidLocator, "unsupported scheme: %v", locator)
	}
	return n.local(ctx, locator, locator)
}

// NormalizeAll converts every locator, releasing partial copies on the first failure.
func (n *Normalizer) NormalizeAll(ctx context.Context, locators []string) ([]*Normalized, error) {
	result := make([]*Normalized, 0, len(locators))
	for _, locator := range locators {
		normalized, err := n.Normalize(ctx, locator)
		if err != nil {
			n.Release(ctx, result...)
			return nil, err
		}
		result = append(result, normalized)
	}
	return result, nil
}

// Release deletes scratch copies, best effort.
func (n *Normalizer) Release(ctx context.Context, items ...*Normalized) {
	for _, item := range items {
		if item == nil || item.Scratch == "" {
			continue
		}
		n.mux.Lock()
		owned := n.scratch[item.Scratch]
		delete(n.scratch, item.Scratch)
		n.mux.Unlock()
		if !owned {
			continue
		}
		if err := n.fs.Delete(ctx, item.Scratch); err != nil {
			n.logger.Warn("failed to release scratch copy", zap.String("url", item.Scratch), zap.Error(err))
		}
	}
}

// Scratch returns URLs of copies not yet released.
func (n *Normalizer) Scratch() []string {
	n.mux.Lock()
	defer n.mux.Unlock()
	var result []string
	for URL := range n.scratch {
		result = append(result, URL)
	}
	return result
}

func (n *Normalizer) local(ctx context.Context, input, filePath string) (*Normalized, error) {
	if filePath == "" {
		return nil, errors.Wrapf(ErrInvalidLocator, "empty path: %v", input)
	}
	if !filepath.IsAbs(filePath) {
		absolute, err := filepath.Abs(filePath)
		if err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "invalid path: %v", input), ErrInvalidLocator)
		}
		filePath = absolute
	}
	exists, err := n.fs.Exists(ctx, fileScheme+"localhost"+filePath)
	if err != nil || !exists {
		return nil, errors.Wrapf(ErrNotFound, "%v", input)
	}
	reference, err := n.grant(ctx, filePath)
	if err != nil {
		return nil, err
	}
	return &Normalized{Input: input, Reference: reference, Path: filePath}, nil
}

func (n *Normalizer) copyForeign(ctx context.Context, locator string) (*Normalized, error) {
	if n.resolver == nil {
		return nil, errors.Wrapf(ErrCopyFailed, "no content resolver for %v", locator)
	}
	reader, err := n.resolver.Open(ctx, locator)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "failed to open %v", locator), ErrCopyFailed)
	}
	defer reader.Close()
	scratchURL := url.Join(n.scratchURL, scratchName(locator))
	if err = n.fs.Upload(ctx, scratchURL, 0o644, reader); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "failed to copy %v", locator), ErrCopyFailed)
	}
	n.mux.Lock()
	n.scratch[scratchURL] = true
	n.mux.Unlock()

	item := &Normalized{Input: locator, Path: url.Path(scratchURL), Scratch: scratchURL}
	if item.Reference, err = n.grant(ctx, item.Path); err != nil {
		n.Release(ctx, item)
		return nil, err
	}
	n.logger.Debug("copied foreign content", zap.String("input", locator), zap.String("scratch", scratchURL))
	return item, nil
}

// grant tries candidate providers in order; the last failure is surfaced when none succeeds.
func (n *Normalizer) grant(ctx context.Context, filePath string) (string, error) {
	var lastErr error
	for _, authority := range CandidateAuthorities(n.hostPackage, n.providers) {
		provider := n.provider(authority)
		if provider == nil {
			lastErr = errors.Newf("provider %v is not declared", authority)
			continue
		}
		reference, ok := provider.Reference(filePath)
		if !ok {
			lastErr = errors.Newf("provider %v does not expose %v", authority, filePath)
			continue
		}
		if err := n.granter.Grant(ctx, reference, n.packages...); err != nil {
			lastErr = errors.Wrapf(err, "provider %v grant", authority)
			continue
		}
		return reference, nil
	}
	if lastErr == nil {
		return "", errors.Wrapf(ErrProvider, "no provider candidates for %v", filePath)
	}
	return "", errors.Mark(errors.Wrapf(lastErr, "failed to obtain provider reference for %v", filePath), ErrProvider)
}

func (n *Normalizer) provider(authority string) *Provider {
	for _, candidate := range n.providers {
		if candidate.Authority == authority {
			return candidate
		}
	}
	return nil
}

func scratchName(locator string) string {
	ext := defaultExt
	segment := path.Base(strings.TrimSuffix(locator, "/"))
	if index := strings.LastIndex(segment, "."); index != -1 && index < len(segment)-1 {
		ext = segment[index+1:]
	}
	return scratchPrefix + uuid.New().String() + "." + ext
}

// New creates a normalizer
func New(options ...Option) *Normalizer {
	ret := &Normalizer{
		packages:   VendorPackages,
		scratchURL: "file://localhost" + defaultScratchDir(),
		logger:     zap.NewNop(),
		granter:    hostless,
		scratch:    map[string]bool{},
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	return ret
}

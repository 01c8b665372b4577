package locator

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/viant/afs"
	"github.com/viant/afs/url"
)

// ContentResolver opens foreign content references.
type ContentResolver interface {
	Open(ctx context.Context, reference string) (io.ReadCloser, error)
}

// MountResolver resolves content://authority/... by reading the same relative path under a mounted base URL.
type MountResolver struct {
	fs     afs.Service
	mounts map[string]string
}

// Mount maps authority to a base URL
func (r *MountResolver) Mount(authority, baseURL string) *MountResolver {
	r.mounts[authority] = baseURL
	return r
}

// Open reads the referenced content
func (r *MountResolver) Open(ctx context.Context, reference string) (io.ReadCloser, error) {
	authority, relative := splitContent(reference)
	baseURL, ok := r.mounts[authority]
	if !ok {
		return nil, errors.Newf("no mount for authority %q", authority)
	}
	data, err := r.fs.DownloadWithURL(ctx, url.Join(baseURL, relative))
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// NewMountResolver creates a resolver backed by afs
func NewMountResolver(fs afs.Service) *MountResolver {
	if fs == nil {
		fs = afs.New()
	}
	return &MountResolver{fs: fs, mounts: map[string]string{}}
}

// splitContent returns authority and path of a content:// reference.
func splitContent(reference string) (string, string) {
	rest := strings.TrimPrefix(reference, contentScheme)
	if index := strings.Index(rest, "/"); index != -1 {
		return rest[:index], rest[index+1:]
	}
	return rest, ""
}

package locator

import (
	"context"
	"path"
	"strings"

	"github.com/cockroachdb/errors"
)

// Vendor application packages granted read access to provider references.
var VendorPackages = []string{
	"com.ss.android.ugc.aweme",
	"com.ss.android.ugc.aweme.lite",
}

// Provider follows the FileProvider model: an authority exposing local roots under named segments.
type Provider struct {
	Authority string            `yaml:"authority" json:"authority"`
	Roots     map[string]string `yaml:"roots" json:"roots"`
}

// Reference returns content://authority/root/relative for a file under one of the roots.
func (p *Provider) Reference(filePath string) (string, bool) {
	cleaned := path.Clean(filePath)
	best := ""
	bestBase := ""
	for name, base := range p.Roots {
		base = path.Clean(base)
		if cleaned != base && !strings.HasPrefix(cleaned, strings.TrimSuffix(base, "/")+"/") {
			continue
		}
		if len(base) > len(bestBase) {
			best, bestBase = name, base
		}
	}
	if bestBase == "" {
		return "", false
	}
	relative := strings.TrimPrefix(strings.TrimPrefix(cleaned, bestBase), "/")
	return contentScheme + p.Authority + "/" + path.Join(best, relative), true
}

// Granter hands a read grant for a provider reference to other applications.
type Granter interface {
	Grant(ctx context.Context, reference string, packages ...string) error
}

// GranterFunc adapts a function to Granter.
type GranterFunc func(ctx context.Context, reference string, packages ...string) error

// Grant calls fn
func (fn GranterFunc) Grant(ctx context.Context, reference string, packages ...string) error {
	return fn(ctx, reference, packages...)
}

// hostless validates the reference only; processes without a native host have no grant to forward.
var hostless = GranterFunc(func(_ context.Context, reference string, _ ...string) error {
	if reference == "" {
		return errors.New("empty reference")
	}
	return nil
})

// CandidateAuthorities lists authorities to try for hostPackage in order, without duplicates.
// Every declared provider is a candidate when hostPackage is empty.
func CandidateAuthorities(hostPackage string, declared []*Provider) []string {
	var result []string
	seen := map[string]bool{}
	add := func(authority string) {
		if authority == "" || seen[authority] {
			return
		}
		seen[authority] = true
		result = append(result, authority)
	}
	for _, provider := range declared {
		if hostPackage == "" || strings.HasPrefix(provider.Authority, hostPackage) {
			add(provider.Authority)
		}
	}
	if hostPackage != "" {
		for _, suffix := range []string{".fileProvider", ".fileprovider", ".provider", ".dyopen.fileprovider"} {
			add(hostPackage + suffix)
		}
	}
	return result
}

package locator

import (
	"os"
	"path/filepath"

	"github.com/viant/afs"
	"go.uber.org/zap"
)

// Option configures a normalizer
type Option func(n *Normalizer)

// WithFS sets the file system service
func WithFS(fs afs.Service) Option {
	return func(n *Normalizer) {
		n.fs = fs
	}
}

// WithHostPackage sets the host application package used to derive provider authorities.
func WithHostPackage(pkg string) Option {
	return func(n *Normalizer) {
		n.hostPackage = pkg
	}
}

// WithProviders declares the providers available to the host
func WithProviders(providers ...*Provider) Option {
	return func(n *Normalizer) {
		n.providers = append(n.providers, providers...)
	}
}

// WithScratchURL sets the base URL for copies of foreign content.
func WithScratchURL(URL string) Option {
	return func(n *Normalizer) {
		if URL != "" {
			n.scratchURL = URL
		}
	}
}

// WithResolver sets the foreign content resolver
func WithResolver(resolver ContentResolver) Option {
	return func(n *Normalizer) {
		n.resolver = resolver
	}
}

// WithGranter sets the provider granter
func WithGranter(granter Granter) Option {
	return func(n *Normalizer) {
		if granter != nil {
			n.granter = granter
		}
	}
}

// WithPackages overrides the packages receiving read grants.
func WithPackages(packages ...string) Option {
	return func(n *Normalizer) {
		n.packages = packages
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(n *Normalizer) {
		if logger != nil {
			n.logger = logger.Named("locator")
		}
	}
}

func defaultScratchDir() string {
	return filepath.Join(os.TempDir(), "dyopen")
}

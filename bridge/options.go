package bridge

import (
	"github.com/viant/dyopen/config"
	"github.com/viant/dyopen/correlator"
	"github.com/viant/dyopen/locator"
	"go.uber.org/zap"
)

// Option configures a bridge
type Option func(b *Bridge)

// WithPlatform sets the host platform
func WithPlatform(platform Platform) Option {
	return func(b *Bridge) {
		if platform != "" {
			b.platform = platform
		}
	}
}

// WithOSVersion sets the host OS version reported by getPlatformVersion
func WithOSVersion(version string) Option {
	return func(b *Bridge) {
		b.osVersion = version
	}
}

// WithCallerLocalEntry sets the host entry receiving vendor callbacks
func WithCallerLocalEntry(entry string) Option {
	return func(b *Bridge) {
		b.callerLocalEntry = entry
	}
}

// WithStore sets the configuration store
func WithStore(store config.Store) Option {
	return func(b *Bridge) {
		if store != nil {
			b.store = store
		}
	}
}

// WithNormalizer sets the media locator normalizer
func WithNormalizer(normalizer *locator.Normalizer) Option {
	return func(b *Bridge) {
		if normalizer != nil {
			b.normalizer = normalizer
		}
	}
}

// WithPolicy sets the policy for a request issued while one of the same kind is pending.
func WithPolicy(policy correlator.Policy) Option {
	return func(b *Bridge) {
		b.policy = policy
	}
}

// WithPublisher sets the application event publisher
func WithPublisher(publisher Publisher) Option {
	return func(b *Bridge) {
		b.publisher = publisher
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(b *Bridge) {
		if logger != nil {
			b.logger = logger
		}
	}
}

package simulator

import (
	"time"

	"github.com/viant/dyopen/correlator"
	"github.com/viant/dyopen/sdk"
)

// Option configures a simulator
type Option func(s *Simulator)

// WithInstalled sets whether the vendor application is installed
func WithInstalled(installed bool) Option {
	return func(s *Simulator) {
		s.installed = installed
	}
}

// WithAttached sets whether a host UI surface is present
func WithAttached(attached bool) Option {
	return func(s *Simulator) {
		s.attached = attached
	}
}

// WithVersion sets the reported SDK version
func WithVersion(version string) Option {
	return func(s *Simulator) {
		s.version = version
	}
}

// WithCapabilities replaces the supported capabilities
func WithCapabilities(capabilities ...sdk.Capability) Option {
	return func(s *Simulator) {
		s.capabilities = map[sdk.Capability]bool{}
		for _, capability := range capabilities {
			s.capabilities[capability] = true
		}
	}
}

// WithScript sets the response script for kind
func WithScript(kind correlator.Kind, script Script) Option {
	return func(s *Simulator) {
		s.scripts[kind] = script
	}
}

// WithManual disables scripted answers; responses are sent with Deliver.
func WithManual() Option {
	return func(s *Simulator) {
		s.manual = true
	}
}

// WithDelay delays scripted answers
func WithDelay(delay time.Duration) Option {
	return func(s *Simulator) {
		s.delay = delay
	}
}

// WithInitError makes Init fail
func WithInitError(err error) Option {
	return func(s *Simulator) {
		s.initErr = err
	}
}

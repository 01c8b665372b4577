package web

import "go.uber.org/zap"

// Option configures the H5 SDK
type Option func(w *Web)

// WithLauncher sets the browser launcher
func WithLauncher(launcher Launcher) Option {
	return func(w *Web) {
		w.launcher = launcher
	}
}

// WithAddr sets the callback listen address
func WithAddr(addr string) Option {
	return func(w *Web) {
		if addr != "" {
			w.addr = addr
		}
	}
}

// WithRedirectURL uses an externally served redirect, e.g. the bridge HTTP server mounting Web as a handler.
func WithRedirectURL(URL string) Option {
	return func(w *Web) {
		w.redirectURL = URL
	}
}

// WithAuthURL overrides the authorization endpoint
func WithAuthURL(URL string) Option {
	return func(w *Web) {
		if URL != "" {
			w.authURL = URL
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(w *Web) {
		if logger != nil {
			w.logger = logger.Named("web")
		}
	}
}

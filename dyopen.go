package dyopen

import (
	"context"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/viant/afs"
	"github.com/viant/dyopen/bridge"
	"github.com/viant/dyopen/config"
	"github.com/viant/dyopen/correlator"
	"github.com/viant/dyopen/locator"
	"github.com/viant/dyopen/logging"
	"github.com/viant/dyopen/sdk"
	"github.com/viant/dyopen/sdk/host"
	"github.com/viant/dyopen/sdk/simulator"
	"github.com/viant/dyopen/sdk/web"
	"github.com/viant/dyopen/server"
	"go.uber.org/zap"
)

// Service wires the bridge, its vendor SDK and the JSON-RPC server from options.
type Service struct {
	options *Options
	logger  *zap.Logger
	bridge  *bridge.Bridge
	server  *server.Server
	web     *web.Web
	granter locator.Granter
}

// Bridge returns the bridge
func (s *Service) Bridge() *bridge.Bridge {
	return s.bridge
}

// Server returns the JSON-RPC server
func (s *Service) Server() *server.Server {
	return s.server
}

// Logger returns the process logger
func (s *Service) Logger() *zap.Logger {
	return s.logger
}

// Serve runs the configured transport until it stops or ctx is done.
func (s *Service) Serve(ctx context.Context) error {
	switch s.options.Transport {
	case TransportSSE:
		httpServer := s.server.HTTP(ctx, s.options.Addr)
		go func() {
			<-ctx.Done()
			_ = httpServer.Shutdown(context.WithoutCancel(ctx))
		}()
		s.logger.Info("serving http", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	default:
		s.logger.Info("serving stdio")
		return s.server.Stdio(ctx).ListenAndServe()
	}
}

// Close releases resources held by the service
func (s *Service) Close(ctx context.Context) error {
	var err error
	if s.web != nil {
		err = s.web.Close(ctx)
	}
	_ = s.logger.Sync()
	return err
}

func (s *Service) newSDK(ctx context.Context) (sdk.SDK, []server.Option, error) {
	switch s.options.SDK {
	case SDKSimulator:
		return simulator.New(), nil, nil
	case SDKWeb:
		options := []web.Option{web.WithLogger(s.logger)}
		var serverOptions []server.Option
		if webOptions := s.options.Web; webOptions != nil {
			options = append(options,
				web.WithAuthURL(webOptions.AuthURL),
				web.WithAddr(webOptions.CallbackAddr),
				web.WithRedirectURL(webOptions.RedirectURL))
		}
		if s.options.Transport == TransportSSE && (s.options.Web == nil || s.options.Web.RedirectURL == "") {
			options = append(options, web.WithRedirectURL(callbackURL(s.options.Addr)))
		}
		launcher, err := web.NewShellLauncher(ctx)
		if err != nil {
			return nil, nil, err
		}
		options = append(options, web.WithLauncher(launcher))
		s.web = web.New(options...)
		if s.options.Transport == TransportSSE {
			// the redirect is served by the bridge http server instead of a dedicated listener
			serverOptions = append(serverOptions, server.WithHTTPHandler(web.CallbackURI, s.web))
		}
		return s.web, serverOptions, nil
	default:
		aHost := host.New(host.WithLogger(s.logger))
		s.granter = aHost
		return aHost, []server.Option{server.WithHost(aHost)}, nil
	}
}

func callbackURL(addr string) string {
	if addr == "" {
		addr = server.DefaultAddr
	}
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr + web.CallbackURI
}

func (s *Service) newNormalizer() *locator.Normalizer {
	fs := afs.New()
	resolver := locator.NewMountResolver(fs)
	for authority, baseURL := range s.options.Mounts {
		resolver.Mount(authority, baseURL)
	}
	options := []locator.Option{
		locator.WithFS(fs),
		locator.WithResolver(resolver),
		locator.WithHostPackage(s.options.HostPackage),
		locator.WithProviders(s.options.Providers...),
		locator.WithLogger(s.logger),
	}
	if s.options.ScratchURL != "" {
		options = append(options, locator.WithScratchURL(s.options.ScratchURL))
	}
	if s.granter != nil {
		options = append(options, locator.WithGranter(s.granter))
	}
	return locator.New(options...)
}

func (s *Service) newStore() config.Store {
	if s.options.ConfigURL == "" {
		return config.NewMemoryStore()
	}
	return config.NewFileStore(s.options.ConfigURL, afs.New())
}

// New creates a service
func New(ctx context.Context, options *Options) (*Service, error) {
	if options == nil {
		options = &Options{}
	}
	options.Init()
	if err := options.Validate(); err != nil {
		return nil, err
	}
	platform, err := bridge.ParsePlatform(options.Platform)
	if err != nil {
		return nil, err
	}
	policy, err := correlator.ParsePolicy(options.Policy)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(options.Logging)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create logger")
	}
	ret := &Service{options: options, logger: logger}
	vendor, serverOptions, err := ret.newSDK(ctx)
	if err != nil {
		return nil, err
	}
	ret.bridge, err = bridge.New(ctx, vendor,
		bridge.WithPlatform(platform),
		bridge.WithOSVersion(options.OSVersion),
		bridge.WithCallerLocalEntry(options.CallerLocalEntry),
		bridge.WithStore(ret.newStore()),
		bridge.WithNormalizer(ret.newNormalizer()),
		bridge.WithPolicy(policy),
		bridge.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	serverOptions = append(serverOptions, server.WithLogger(logger), server.WithAddr(options.Addr))
	if httpOptions := options.HTTP; httpOptions != nil {
		serverOptions = append(serverOptions,
			server.WithSSEURIs(httpOptions.SSEURI, httpOptions.SSEMessageURI),
			server.WithStreamableURI(httpOptions.StreamableURI),
			server.WithCORS(httpOptions.Cors))
	}
	if ret.server, err = server.New(ret.bridge, serverOptions...); err != nil {
		return nil, err
	}
	return ret, nil
}

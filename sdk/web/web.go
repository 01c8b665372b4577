// Package web implements H5 authorization for hosts without the vendor application:
// the user authorizes in a browser and the redirect is served by a local callback endpoint.
package web

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/viant/dyopen/sdk"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const (
	// AuthURL is the vendor H5 authorization endpoint
	AuthURL = "https://open.douyin.com/platform/oauth/connect/"
	// CallbackURI is the path serving the authorization redirect
	CallbackURI = "/callback"
	// Version is reported as the SDK version
	Version = "h5"
)

// Web implements sdk.SDK for H5 authorization
type Web struct {
	mu          sync.Mutex
	receiver    sdk.Receiver
	clientKey   string
	authURL     string
	addr        string
	redirectURL string
	launcher    Launcher
	server      *http.Server
	listener    net.Listener
	logger      *zap.Logger
}

// Bind sets the callback receiver
func (w *Web) Bind(receiver sdk.Receiver) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.receiver = receiver
}

func (w *Web) Init(_ context.Context, clientKey string, _ bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.clientKey = clientKey
	return nil
}

func (w *Web) Version() string {
	return Version
}

// Installed is false, H5 authorization is the fallback for a missing vendor application.
func (w *Web) Installed(_ context.Context) bool {
	return false
}

func (w *Web) Supports(_ context.Context, _ sdk.Capability) bool {
	return false
}

func (w *Web) Attached() bool {
	return w.launcher != nil
}

// Authorize opens the vendor authorization page in a browser.
func (w *Web) Authorize(ctx context.Context, request *sdk.AuthorizeRequest) error {
	redirectURL, err := w.ensureCallback()
	if err != nil {
		return err
	}
	URL, err := w.AuthCodeURL(request, redirectURL)
	if err != nil {
		return err
	}
	w.logger.Info("opening authorization page", zap.String("redirect", redirectURL))
	if err = w.launcher.Open(ctx, URL); err != nil {
		return errors.Wrap(err, "failed to open browser")
	}
	return nil
}

// AuthCodeURL builds the authorization page URL
func (w *Web) AuthCodeURL(request *sdk.AuthorizeRequest, redirectURL string) (string, error) {
	w.mu.Lock()
	clientKey := w.clientKey
	w.mu.Unlock()
	if clientKey == "" {
		return "", errors.New("web: client key not initialized")
	}
	config := &oauth2.Config{
		ClientID:    clientKey,
		Endpoint:    oauth2.Endpoint{AuthURL: w.authURL},
		RedirectURL: redirectURL,
	}
	return config.AuthCodeURL(request.State,
		oauth2.SetAuthURLParam("client_key", clientKey),
		oauth2.SetAuthURLParam("scope", request.Scope),
	), nil
}

func (w *Web) Share(_ context.Context, _ *sdk.ShareRequest) error {
	return errors.Wrap(sdk.ErrUnsupported, "share")
}

func (w *Web) ShareToContact(_ context.Context, _ *sdk.ContactRequest) error {
	return errors.Wrap(sdk.ErrUnsupported, "share to contact")
}

func (w *Web) OpenRecord(_ context.Context, _ *sdk.RecordRequest) error {
	return errors.Wrap(sdk.ErrUnsupported, "open record")
}

// ServeHTTP handles the authorization redirect.
func (w *Web) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()
	response := &sdk.AuthorizationResponse{State: query.Get("state")}
	if code := query.Get("code"); code != "" {
		response.AuthCode = code
		if scopes := query.Get("scopes"); scopes != "" {
			response.GrantedPermissions = splitScopes(scopes)
		}
	} else {
		response.ErrorCode = -4
		if value := query.Get("error_code"); value != "" {
			if code, err := strconv.Atoi(value); err == nil && code != 0 {
				response.ErrorCode = code
			}
		}
		response.ErrorMsg = query.Get("description")
		if response.ErrorMsg == "" {
			response.ErrorMsg = query.Get("error")
		}
	}
	w.mu.Lock()
	receiver := w.receiver
	w.mu.Unlock()
	if receiver != nil {
		receiver.Receive(request.Context(), response)
	}
	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	if response.AuthCode == "" {
		writer.WriteHeader(http.StatusUnauthorized)
		_, _ = fmt.Fprint(writer, "<html><body>Authorization failed, you can close this window.</body></html>")
		return
	}
	_, _ = fmt.Fprint(writer, "<html><body>Authorization complete, you can close this window.</body></html>")
}

// ensureCallback starts the local callback endpoint unless a redirect URL was configured.
func (w *Web) ensureCallback() (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.redirectURL != "" {
		return w.redirectURL, nil
	}
	listener, err := net.Listen("tcp", w.addr)
	if err != nil {
		return "", errors.Wrapf(err, "failed to listen on %v", w.addr)
	}
	mux := http.NewServeMux()
	mux.Handle(CallbackURI, w)
	server := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	w.listener = listener
	w.server = server
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			w.logger.Error("callback server failed", zap.Error(err))
		}
	}()
	w.redirectURL = "http://" + listener.Addr().String() + CallbackURI
	return w.redirectURL, nil
}

// Close stops the callback endpoint
func (w *Web) Close(ctx context.Context) error {
	w.mu.Lock()
	server := w.server
	w.server = nil
	w.mu.Unlock()
	if server == nil {
		return nil
	}
	return server.Shutdown(ctx)
}

func splitScopes(scopes string) []string {
	return strings.FieldsFunc(scopes, func(r rune) bool { return r == ',' })
}

// New creates an H5 authorization SDK
func New(options ...Option) *Web {
	ret := &Web{
		authURL: AuthURL,
		addr:    "127.0.0.1:0",
		logger:  zap.NewNop(),
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

var _ sdk.SDK = (*Web)(nil)
var _ sdk.Binder = (*Web)(nil)

package dyopen

import (
	"context"
	"path"

	"github.com/cockroachdb/errors"
	"github.com/viant/afs"
	"github.com/viant/dyopen/config"
	"github.com/viant/dyopen/locator"
	"github.com/viant/dyopen/logging"
	"github.com/viant/dyopen/server"
	"gopkg.in/yaml.v3"
)

const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"

	SDKHost      = "host"
	SDKSimulator = "simulator"
	SDKWeb       = "web"
)

// Options defines the bridge process options, settable by flags or an options file.
type Options struct {
	OptionsURL       string              `yaml:"-" json:"-" short:"c" long:"config" description:"options file URL (yaml)"`
	Transport        string              `yaml:"transport" json:"transport" short:"T" long:"transport" description:"transport type" choice:"stdio" choice:"sse"`
	Addr             string              `yaml:"addr" json:"addr" short:"a" long:"addr" description:"http listen address"`
	Platform         string              `yaml:"platform" json:"platform" short:"P" long:"platform" description:"host platform" choice:"android" choice:"ios"`
	OSVersion        string              `yaml:"osVersion" json:"osVersion" short:"o" long:"os-version" description:"host OS version"`
	SDK              string              `yaml:"sdk" json:"sdk" short:"s" long:"sdk" description:"vendor sdk" choice:"host" choice:"simulator" choice:"web"`
	HostPackage      string              `yaml:"hostPackage" json:"hostPackage" short:"p" long:"package" description:"host application package"`
	CallerLocalEntry string              `yaml:"callerLocalEntry" json:"callerLocalEntry" short:"e" long:"caller-entry" description:"host entry receiving vendor callbacks"`
	ScratchURL       string              `yaml:"scratchURL" json:"scratchURL" long:"scratch" description:"scratch location URL for copied media"`
	ConfigURL        string              `yaml:"configURL" json:"configURL" long:"record" description:"persisted configuration record URL, memory when empty"`
	Policy           string              `yaml:"policy" json:"policy" long:"policy" description:"pending request policy" choice:"evict" choice:"reject"`
	LogLevel         string              `yaml:"-" json:"-" short:"l" long:"log-level" description:"log level override" choice:"debug" choice:"info" choice:"warn" choice:"error"`
	Providers        []*locator.Provider `yaml:"providers" json:"providers"`
	Mounts           map[string]string   `yaml:"mounts" json:"mounts"`
	Web              *WebOptions         `yaml:"web" json:"web"`
	HTTP             *HTTPOptions        `yaml:"http" json:"http"`
	Logging          *logging.Config     `yaml:"logging" json:"logging"`
}

// WebOptions configures the H5 authorization SDK
type WebOptions struct {
	AuthURL      string `yaml:"authURL" json:"authURL"`
	RedirectURL  string `yaml:"redirectURL" json:"redirectURL"`
	CallbackAddr string `yaml:"callbackAddr" json:"callbackAddr"`
}

// HTTPOptions configures the HTTP transports
type HTTPOptions struct {
	SSEURI        string       `yaml:"sseURI" json:"sseURI"`
	SSEMessageURI string       `yaml:"sseMessageURI" json:"sseMessageURI"`
	StreamableURI string       `yaml:"streamableURI" json:"streamableURI"`
	Cors          *server.Cors `yaml:"cors" json:"cors"`
}

// Init sets defaults
func (o *Options) Init() {
	if o.Transport == "" {
		o.Transport = TransportStdio
	}
	if o.SDK == "" {
		o.SDK = SDKHost
	}
	if o.Logging == nil {
		o.Logging = logging.DefaultConfig()
	}
	if o.LogLevel != "" {
		o.Logging.Level = logging.Level(o.LogLevel)
	}
	if o.ConfigURL != "" && path.Ext(o.ConfigURL) == "" {
		o.ConfigURL = o.ConfigURL + "/" + config.DefaultName
	}
}

// Validate checks option combinations
func (o *Options) Validate() error {
	switch o.Transport {
	case TransportStdio, TransportSSE:
	default:
		return errors.Newf("unsupported transport: %q", o.Transport)
	}
	switch o.SDK {
	case SDKHost, SDKSimulator, SDKWeb:
	default:
		return errors.Newf("unsupported sdk: %q", o.SDK)
	}
	for _, provider := range o.Providers {
		if provider == nil || provider.Authority == "" || len(provider.Roots) == 0 {
			return errors.New("provider requires an authority and at least one root")
		}
	}
	return nil
}

// LoadOptions loads options from a yaml file URL
func LoadOptions(ctx context.Context, URL string) (*Options, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to download options %v", URL)
	}
	ret := &Options{}
	if err = yaml.Unmarshal(data, ret); err != nil {
		return nil, errors.Wrapf(err, "invalid options %v", URL)
	}
	return ret, nil
}

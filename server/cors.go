package server

import (
	"net/http"
	"strconv"
	"strings"
)

const (
	allowOriginHeader      = "Access-Control-Allow-Origin"
	allowHeadersHeader     = "Access-Control-Allow-Headers"
	allowMethodsHeader     = "Access-Control-Allow-Methods"
	requestMethodHeader    = "Access-Control-Request-Method"
	allowCredentialsHeader = "Access-Control-Allow-Credentials"
	exposeHeadersHeader    = "Access-Control-Expose-Headers"
	maxAgeHeader           = "Access-Control-Max-Age"
	separator              = ", "

	defaultAllowHeaders  = "Content-Type, Mcp-Session-Id, Last-Event-ID"
	defaultExposeHeaders = "Content-Type, Mcp-Session-Id"
)

// Cors configures cross origin access to the HTTP transports
type Cors struct {
	AllowCredentials *bool    `json:"allowCredentials,omitempty" yaml:"AllowCredentials,omitempty"`
	AllowHeaders     []string `json:"allowHeaders,omitempty" yaml:"AllowHeaders,omitempty"`
	AllowMethods     []string `json:"allowMethods,omitempty" yaml:"AllowMethods,omitempty"`
	AllowOrigins     []string `json:"allowOrigins,omitempty" yaml:"AllowOrigins,omitempty"`
	ExposeHeaders    []string `json:"exposeHeaders,omitempty" yaml:"ExposeHeaders,omitempty"`
	MaxAge           *int64   `json:"maxAge,omitempty" yaml:"MaxAge,omitempty"`
}

// Allows reports whether the origin may call the bridge; an empty origin is a non-browser client.
func (c *Cors) Allows(origin string) bool {
	if origin == "" || c == nil {
		return true
	}
	for _, candidate := range c.AllowOrigins {
		if candidate == "*" || candidate == origin {
			return true
		}
	}
	return false
}

// Middleware sets CORS headers and answers preflight requests.
func (c *Cors) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.setHeaders(w, r)
		if r.Method == http.MethodOptions && r.Header.Get(requestMethodHeader) != "" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (c *Cors) setHeaders(writer http.ResponseWriter, request *http.Request) {
	if c == nil {
		return
	}
	header := writer.Header()
	origin := request.Header.Get("Origin")
	if origin != "" && c.Allows(origin) {
		header.Set(allowOriginHeader, origin)
		header.Add("Vary", "Origin")
	}
	if len(c.AllowMethods) > 0 {
		methods := strings.Join(c.AllowMethods, separator)
		if methods == "*" {
			methods = request.Method
			if requested := request.Header.Get(requestMethodHeader); requested != "" {
				methods = requested
			}
		}
		header.Set(allowMethodsHeader, methods)
	}
	if len(c.AllowHeaders) > 0 {
		headers := strings.Join(c.AllowHeaders, separator)
		if headers == "*" {
			headers = defaultAllowHeaders
		}
		header.Set(allowHeadersHeader, headers)
	}
	if c.AllowCredentials != nil {
		header.Set(allowCredentialsHeader, strconv.FormatBool(*c.AllowCredentials))
	}
	if c.MaxAge != nil {
		header.Set(maxAgeHeader, strconv.FormatInt(*c.MaxAge, 10))
	}
	if len(c.ExposeHeaders) > 0 {
		headers := strings.Join(c.ExposeHeaders, separator)
		if headers == "*" {
			headers = defaultExposeHeaders
		}
		header.Set(exposeHeadersHeader, headers)
	}
}

// DefaultCors allows any origin
func DefaultCors() *Cors {
	return &Cors{
		AllowHeaders: []string{"*"},
		AllowMethods: []string{"*"},
		AllowOrigins: []string{"*"},
	}
}

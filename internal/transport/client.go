package transport

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/net/proxy"
)

// Defaults for the classifier HTTP client.
const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "Sentinel/1.0"
)

// options holds client construction settings.
type options struct {
	timeout   time.Duration
	proxy     string
	userAgent string
	headers   map[string]string
}

// Option configures NewHTTPClient.
type Option func(*options)

// WithTimeout sets the overall request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithProxy routes all connections through a SOCKS5 proxy at addr ("host:port").
// An empty addr means a direct connection.
func WithProxy(addr string) Option {
	return func(o *options) {
		o.proxy = addr
	}
}

// WithUserAgent sets the User-Agent header of every request.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		if ua != "" {
			o.userAgent = ua
		}
	}
}

// WithHeaders adds fixed headers to every request.
func WithHeaders(headers map[string]string) Option {
	return func(o *options) {
		o.headers = headers
	}
}

// NewHTTPClient creates the HTTP client for classifier requests.
//
// Design decision: We inject headers with a RoundTripper rather than at
// each call site because the genai SDK builds its own requests; wrapping
// the transport is the only place all of them pass through.
func NewHTTPClient(opts ...Option) (*http.Client, error) {
	o := &options{
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.timeout <= 0 {
		return nil, ErrInvalidTimeout
	}

	base, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		base = &http.Transport{}
	}
	transport := base.Clone()

	if o.proxy != "" {
		if !isValidProxyAddress(o.proxy) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidProxyAddress, o.proxy)
		}
		dialer, err := proxy.SOCKS5("tcp", o.proxy, nil, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
		}
		transport.Proxy = nil
		transport.DialContext = contextDialer(dialer)
	}

	return &http.Client{
		Transport: &headerInjectingTransport{
			base:      transport,
			userAgent: o.userAgent,
			headers:   o.headers,
		},
		Timeout: o.timeout,
	}, nil
}

// contextDialer adapts a proxy.Dialer to the DialContext signature.
// The x/net SOCKS5 dialer supports contexts natively; other dialers are
// raced against ctx.
func contextDialer(d proxy.Dialer) func(ctx context.Context, network, addr string) (net.Conn, error) {
	if cd, ok := d.(proxy.ContextDialer); ok {
		return cd.DialContext
	}
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		type dialResult struct {
			conn net.Conn
			err  error
		}
		resultCh := make(chan dialResult, 1)
		go func() {
			conn, err := d.Dial(network, addr)
			resultCh <- dialResult{conn, err}
		}()
		select {
		case r := <-resultCh:
			return r.conn, r.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// isValidProxyAddress checks if the address is in valid "host:port" format
// with a port between 1 and 65535.
func isValidProxyAddress(address string) bool {
	host, port, err := net.SplitHostPort(address)
	if err != nil || host == "" {
		return false
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return false
	}
	return n >= 1 && n <= 65535
}

// headerInjectingTransport wraps an http.RoundTripper to inject the
// User-Agent and fixed headers into every request.
type headerInjectingTransport struct {
	base      http.RoundTripper
	userAgent string
	headers   map[string]string
}

// RoundTrip implements http.RoundTripper.
func (t *headerInjectingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	clone := req.Clone(req.Context())

	for k, v := range t.headers {
		clone.Header.Set(k, v)
	}
	if t.userAgent != "" {
		clone.Header.Set("User-Agent", t.userAgent)
	}

	return t.base.RoundTrip(clone)
}

package httpclient

import (
	"crypto/tls"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Options configures a client.
type Options struct {
	// Timeout bounds each request end to end. Zero selects the default.
	Timeout time.Duration
	// UserAgent is sent on every request that does not already set one.
	UserAgent string
	// InsecureSkipVerify disables TLS certificate verification for this
	// client only.
	InsecureSkipVerify bool
}

// New returns an *http.Client configured from opts.
func New(opts Options) *http.Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	base := http.DefaultTransport.(*http.Transport).Clone()
	if opts.InsecureSkipVerify {
		if base.TLSClientConfig == nil {
			base.TLSClientConfig = &tls.Config{}
		}
		base.TLSClientConfig.InsecureSkipVerify = true //nolint:gosec // opt-in per client
	}

	var transport http.RoundTripper = base
	if ua := strings.TrimSpace(opts.UserAgent); ua != "" {
		transport = &userAgentTransport{next: base, userAgent: ua}
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

type userAgentTransport struct {
	next      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return t.next.RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", t.userAgent)
	return t.next.RoundTrip(clone)
}

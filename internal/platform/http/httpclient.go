// Package http builds the outbound HTTP client used for the quote generation service.
package http

import (
	"net"
	"net/http"
	"time"
)

const (
	// DefaultTimeout caps a whole generation request when ClientConfig.Timeout is unset.
	DefaultTimeout = 15 * time.Second

	defaultDialTimeout = 5 * time.Second
	defaultMaxIdle     = 16
)

// ClientConfig bounds an outbound client. Zero values take the defaults above.
type ClientConfig struct {
	// Timeout covers connect, request, and reading the response body.
	Timeout time.Duration
	// DialTimeout caps the TCP connect alone.
	DialTimeout time.Duration
	// MaxIdleConnsPerHost keeps warm connections to the single upstream host.
	MaxIdleConnsPerHost int
}

func (c ClientConfig) withDefaults() ClientConfig {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = defaultDialTimeout
	}
	if c.MaxIdleConnsPerHost <= 0 {
		c.MaxIdleConnsPerHost = defaultMaxIdle
	}
	return c
}

// NewClient returns a client with an explicit overall timeout.
// http.DefaultClient never times out, so callers must not fall back to it.
// Proxy settings come from HTTPS_PROXY and friends.
func NewClient(cfg ClientConfig) *http.Client {
	cfg = cfg.withDefaults()
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.DialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: cfg.DialTimeout,
	}
	return &http.Client{Timeout: cfg.Timeout, Transport: t}
}

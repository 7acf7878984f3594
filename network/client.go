// Package network provides a pre-configured HTTP client and the subtitle source reader built on it.
package network

import (
	"net/http"
	"time"

	"github.com/srtdeck/srtdeck/log"
	"golang.org/x/net/http2"
)

// Client is the HTTP client shared across the application. Per-request deadlines come
// from the caller's context; the client timeout is only an upper bound.
var Client = &http.Client{
	Timeout:   time.Minute,
	Transport: newTransport(),
}

// newTransport initializes a tuned http.Transport with HTTP/2 enabled explicitly.
func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 16
	t.MaxIdleConnsPerHost = 4
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 1 * time.Second

	if err := http2.ConfigureTransport(t); err != nil {
		log.Warnf("network: http2 unavailable: %v", err)
	}
	return t
}

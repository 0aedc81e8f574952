package arcgis

import (
	"time"

	"github.com/okian/venuematch/pkg/logger"
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithGeocodeURL overrides the geocodeAddresses endpoint.
func WithGeocodeURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.geocodeURL = u
		}
	}
}

// WithFindURL overrides the MapServer find endpoint.
func WithFindURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.findURL = u
		}
	}
}

// WithFindLayer sets the layer id searched by Find.
func WithFindLayer(layer int) Option {
	return func(c *Client) {
		if layer >= 0 {
			c.findLayer = layer
		}
	}
}

// WithLogger sets a custom logger for the client.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

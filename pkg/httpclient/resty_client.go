package httpclient

import (
	"time"

	"github.com/go-resty/resty/v2"
)

const userAgent = "ctp-event-gateway"

// NewRestyHTTPClient returns a resty.Client for sinks that need custom verbs and headers.
func NewRestyHTTPClient(timeout time.Duration) *resty.Client {
	c := resty.New()
	c.SetTimeout(timeout)
	c.SetHeader("User-Agent", userAgent)
	return c
}

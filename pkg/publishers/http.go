package publishers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ctp-hq/event-gateway/pkg/event"
	"github.com/ctp-hq/event-gateway/pkg/httpclient"
	"github.com/go-resty/resty/v2"
)

// Headers set on every webhook delivery.
const (
	HeaderRoutingKey    = "X-Routing-Key"
	HeaderEventType     = "X-Event-Type"
	HeaderTransactionID = "X-Transaction-Id"
)

type httpPublisher struct {
	id      string
	method  string
	url     string
	headers map[string]string
	client  *resty.Client
	typ     string
	log     Logger
}

func newHTTPPublisher(_ context.Context, cfg PublisherConfig, log Logger) (Publisher, error) {
	if cfg.HTTP == nil {
		return nil, fmt.Errorf("publisher %q missing http configuration", cfg.ID)
	}

	client := httpclient.NewRestyHTTPClient(time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second)

	return &httpPublisher{
		id:      cfg.ID,
		typ:     TypeHTTP,
		method:  cfg.HTTP.Method,
		url:     cfg.HTTP.URL,
		headers: cfg.HTTP.Headers,
		client:  client,
		log:     ensureLogger(log),
	}, nil
}

func (h *httpPublisher) ID() string   { return h.id }
func (h *httpPublisher) Type() string { return h.typ }

func (h *httpPublisher) Publish(ctx context.Context, routingKey string, msg event.Message) error {
	wire, err := encode(routingKey, msg)
	if err != nil {
		return err
	}

	req := h.client.R().
		SetContext(ctx).
		SetBody(wire.body)

	if len(h.headers) > 0 {
		req.SetHeaders(h.headers)
	}

	req.SetHeader("Content-Type", "application/json")
	req.SetHeader(HeaderRoutingKey, routingKey)
	req.SetHeader(HeaderEventType, string(wire.header.Type))
	req.SetHeader(HeaderTransactionID, wire.header.TransactionID)

	resp, err := req.Execute(h.method, h.url)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	if !resp.IsSuccess() {
		snippet := readBodySnippet(resp.Body())
		h.log.WarnObj("http publisher rejected event", "publisher_http_error", map[string]any{
			"publisher_id":   h.id,
			"status":         resp.StatusCode(),
			"transaction_id": wire.header.TransactionID,
		})
		return fmt.Errorf("http response status %d: %s", resp.StatusCode(), snippet)
	}
	return nil
}

func readBodySnippet(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if len(body) > 512 {
		body = body[:512]
	}
	return strings.TrimSpace(string(body))
}

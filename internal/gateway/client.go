package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"storefront-payments/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Outbound rate limit against the merchant API. Settlement polling
// and refund commands share it.
const (
	outboundLimit = rate.Limit(5)
	outboundBurst = 10
)

// Client performs form-encoded calls against PayU endpoints and
// normalizes transport and HTTP failures. It holds no other state and
// never retries; retry policy belongs to the caller.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		limiter: rate.NewLimiter(outboundLimit, outboundBurst),
	}
}

// Call sends the request and returns the parsed JSON body.
//
// Transport errors map to ErrGatewayUnreachable, non-2xx responses to
// *RejectedError and unparseable bodies to ErrGatewayInvalidResponse.
func (c *Client) Call(ctx context.Context, rawURL, method string, query url.Values, data url.Values, bearerToken string) (json.RawMessage, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("url", rawURL),
		zap.String("method", method),
	)

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var body io.Reader
	if method != http.MethodGet && data != nil {
		body = strings.NewReader(data.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, err
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+bearerToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("gateway unreachable", zap.Error(err))
		return nil, ErrGatewayUnreachable
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("failed to read gateway response", zap.Error(err))
		return nil, ErrGatewayUnreachable
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Error("gateway returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		rejected := &RejectedError{StatusCode: resp.StatusCode, Raw: string(bodyBytes)}
		// Carry the parsed error body when the gateway sent one.
		_ = json.Unmarshal(bodyBytes, &rejected.Body)
		return nil, rejected
	}

	var probe any
	if err := json.Unmarshal(bodyBytes, &probe); err != nil {
		log.Error("gateway returned malformed JSON", zap.ByteString("response", bodyBytes))
		return nil, ErrGatewayInvalidResponse
	}

	return json.RawMessage(bodyBytes), nil
}

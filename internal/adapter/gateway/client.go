package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	domainErrors "github.com/washmart/washmart/internal/domain/errors"
	"github.com/washmart/washmart/internal/domain/model"
)

// Client exposes operations against the external payment gateway.
type Client interface {
	CreateSession(ctx context.Context, orderRef string, grossAmount int64) (string, error)
	FetchStatus(ctx context.Context, orderRef string) (*model.PaymentUpdate, error)
}

// HTTPClient implements Client via the gateway HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	serverKey  string
	httpClient *http.Client
	logger     *slog.Logger
}

type sessionRequest struct {
	OrderID     string `json:"order_id"`
	GrossAmount int64  `json:"gross_amount"`
}

type sessionResponse struct {
	Token string `json:"token"`
}

// statusResponse mirrors the JSON payload of the gateway status endpoint.
type statusResponse struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	PaymentType       string `json:"payment_type,omitempty"`
}

// NewHTTPClient creates HTTP gateway client with default timeout.
func NewHTTPClient(baseURL, serverKey string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("gateway url must be absolute")
	}
	return &HTTPClient{
		baseURL:   parsed,
		serverKey: serverKey,
		logger:    logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// CreateSession requests a payment token scoped to one order and its total.
func (c *HTTPClient) CreateSession(ctx context.Context, orderRef string, grossAmount int64) (string, error) {
	payload, err := json.Marshal(sessionRequest{OrderID: orderRef, GrossAmount: grossAmount})
	if err != nil {
		return "", err
	}

	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/v1/transactions")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.serverKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domainErrors.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", err
		}
		var data sessionResponse
		if err := json.Unmarshal(body, &data); err != nil {
			return "", err
		}
		if data.Token == "" {
			return "", fmt.Errorf("%w: empty token", domainErrors.ErrGatewayRejected)
		}
		return data.Token, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("gateway rejected session request",
			slog.String("order", orderRef),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)
		return "", fmt.Errorf("%w: %s", domainErrors.ErrGatewayRejected, resp.Status)
	default:
		return "", fmt.Errorf("%w: %s", domainErrors.ErrGatewayUnavailable, resp.Status)
	}
}

// FetchStatus queries the gateway for the current transaction status of an order.
func (c *HTTPClient) FetchStatus(ctx context.Context, orderRef string) (*model.PaymentUpdate, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/v1/transactions/", orderRef, "/status")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.serverKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		var data statusResponse
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, err
		}
		return &model.PaymentUpdate{
			OrderRef:      data.OrderID,
			Status:        model.GatewayStatus(data.TransactionStatus),
			PaymentMethod: data.PaymentType,
		}, nil
	case http.StatusNotFound:
		return nil, domainErrors.ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("%w: %s", domainErrors.ErrGatewayRejected, resp.Status)
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("gateway status request failed",
			slog.String("order", orderRef),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)
		return nil, fmt.Errorf("%w: %s", domainErrors.ErrGatewayUnavailable, resp.Status)
	}
}

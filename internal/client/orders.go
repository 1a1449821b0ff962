package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"storefront/internal/domain"
	"storefront/internal/service"
)

// ErrRejected бэкенд отклонил заказ (4xx); такие ответы не размыкают breaker
var ErrRejected = errors.New("order rejected")

// BreakerSettings параметры circuit breaker для отправки заказов
type BreakerSettings struct {
	MaxFailures uint32
	OpenTimeout time.Duration
}

// OrdersClient транспорт заказов: POST /orders, без повторов
type OrdersClient struct {
	baseURL string
	http    *http.Client
	cb      *gobreaker.CircuitBreaker[struct{}]
}

var _ service.OrderTransport = (*OrdersClient)(nil)

func NewOrdersClient(baseURL string, hc *http.Client, bs BreakerSettings) *OrdersClient {
	if hc == nil {
		hc = http.DefaultClient
	}
	if bs.MaxFailures == 0 {
		bs.MaxFailures = 5
	}
	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:    "orders",
		Timeout: bs.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= bs.MaxFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrRejected)
		},
	})
	return &OrdersClient{baseURL: baseURL, http: hc, cb: cb}
}

func (c *OrdersClient) SubmitOrder(ctx context.Context, payload domain.OrderPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}
	_, err = c.cb.Execute(func() (struct{}, error) {
		return struct{}{}, c.post(ctx, payload.Reference.String(), body)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("orders backend unavailable: %w", err)
	}
	return err
}

func (c *OrdersClient) post(ctx context.Context, reference string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, joinURL(c.baseURL, "/orders"), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("http.NewRequest: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", reference)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("POST /orders: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return fmt.Errorf("POST /orders: status %d: %w", resp.StatusCode, ErrRejected)
	default:
		return fmt.Errorf("POST /orders: unexpected status %d", resp.StatusCode)
	}
}

// State current breaker state, for health reporting.
func (c *OrdersClient) State() string {
	return c.cb.State().String()
}

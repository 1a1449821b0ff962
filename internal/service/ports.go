package service

//go:generate mockgen -source=ports.go -destination=mock_ports_test.go -package=service

import (
	"context"

	"storefront/internal/domain"
)

// RegionSource внешний источник списка регионов (GET /states)
type RegionSource interface {
	FetchRegions(ctx context.Context) ([]domain.Region, error)
}

// OrderTransport внешний транспорт отправки заказа
type OrderTransport interface {
	SubmitOrder(ctx context.Context, payload domain.OrderPayload) error
}

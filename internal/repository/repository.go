package repository

import (
	"context"
	"errors"

	"storefront/internal/domain"
)

// ErrNotFound возвращается, когда позиция не найдена
var ErrNotFound = errors.New("not found")

// CartRepository хранилище позиций корзины в рамках сессии.
// Позиции хранятся в порядке первого добавления.
type CartRepository interface {
	List(ctx context.Context, sessionID string) ([]domain.CartItem, error)
	Get(ctx context.Context, sessionID, itemID string) (*domain.CartItem, error)
	// Put вставляет позицию в конец или заменяет существующую на её месте
	Put(ctx context.Context, sessionID string, item domain.CartItem) error
	Delete(ctx context.Context, sessionID, itemID string) error
	Clear(ctx context.Context, sessionID string) error
}

// TxManager абстракция транзакции. Для in-memory это глобальная блокировка записи.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

func indexOf(items []domain.CartItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

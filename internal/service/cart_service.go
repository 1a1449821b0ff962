package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

// CartStore единственный источник правды о содержимом корзины сессии
type CartStore interface {
	AddItem(ctx context.Context, item domain.CartItem) error
	RemoveItem(ctx context.Context, id string) error
	SetQuantity(ctx context.Context, id string, qty int64) error
	Snapshot(ctx context.Context) (domain.CartSnapshot, error)
	Clear(ctx context.Context) error
}

// DiscountPolicy вычисляет скидку независимо от позиций корзины
type DiscountPolicy interface {
	Discount(subtotal decimal.Decimal) decimal.Decimal
}

type NoDiscount struct{}

func (NoDiscount) Discount(decimal.Decimal) decimal.Decimal { return decimal.Zero }

// FixedDiscount flat points off, never more than the subtotal.
type FixedDiscount struct {
	Points decimal.Decimal
}

func (d FixedDiscount) Discount(subtotal decimal.Decimal) decimal.Decimal {
	if d.Points.GreaterThan(subtotal) {
		return subtotal
	}
	return d.Points
}

// CartService реализует CartStore поверх репозитория, привязан к одной сессии
type CartService struct {
	sessionID string
	repo      repository.CartRepository
	tx        repository.TxManager
	discounts DiscountPolicy
	log       *zap.Logger
}

var _ CartStore = (*CartService)(nil)

func NewCartService(sessionID string, repo repository.CartRepository, tx repository.TxManager, discounts DiscountPolicy, log *zap.Logger) *CartService {
	if discounts == nil {
		discounts = NoDiscount{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &CartService{
		sessionID: sessionID,
		repo:      repo,
		tx:        tx,
		discounts: discounts,
		log:       log.With(zap.String("session_id", sessionID)),
	}
}

// AddItem добавляет позицию или увеличивает количество существующей
func (s *CartService) AddItem(ctx context.Context, item domain.CartItem) error {
	if item.ID == "" || !item.UnitPrice.IsPositive() {
		return ErrInvalidItem
	}
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.repo.Get(ctx, s.sessionID, item.ID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			existing = &item
		case err != nil:
			return fmt.Errorf("repo.Get: %w", err)
		case existing.Quantity > math.MaxInt64-item.Quantity:
			return ErrInvalidQuantity
		default:
			existing.Quantity += item.Quantity
		}
		if err := s.repo.Put(ctx, s.sessionID, *existing); err != nil {
			return fmt.Errorf("repo.Put: %w", err)
		}
		return nil
	})
	if errors.Is(err, ErrInvalidQuantity) {
		return err
	}
	if err != nil {
		s.log.Error("add item", zap.String("item_id", item.ID), zap.Error(err))
		return err
	}
	s.log.Debug("item added", zap.String("item_id", item.ID), zap.Int64("quantity", item.Quantity))
	return nil
}

// RemoveItem удаляет позицию; отсутствие позиции не ошибка
func (s *CartService) RemoveItem(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, s.sessionID, id)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.log.Error("remove item", zap.String("item_id", id), zap.Error(err))
		return fmt.Errorf("repo.Delete: %w", err)
	}
	return nil
}

// SetQuantity заменяет количество позиции
func (s *CartService) SetQuantity(ctx context.Context, id string, qty int64) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		it, err := s.repo.Get(ctx, s.sessionID, id)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrItemNotFound
		}
		if err != nil {
			return fmt.Errorf("repo.Get: %w", err)
		}
		it.Quantity = qty
		if err := s.repo.Put(ctx, s.sessionID, *it); err != nil {
			return fmt.Errorf("repo.Put: %w", err)
		}
		return nil
	})
}

// Snapshot пересчитывает итоги при каждом чтении
func (s *CartService) Snapshot(ctx context.Context) (domain.CartSnapshot, error) {
	items, err := s.repo.List(ctx, s.sessionID)
	if err != nil {
		return domain.CartSnapshot{}, fmt.Errorf("repo.List: %w", err)
	}
	subtotal := domain.Summarize(items, decimal.Zero).Subtotal
	return domain.Summarize(items, s.discounts.Discount(subtotal)), nil
}

func (s *CartService) Clear(ctx context.Context) error {
	if err := s.repo.Clear(ctx, s.sessionID); err != nil {
		return fmt.Errorf("repo.Clear: %w", err)
	}
	s.log.Debug("cart cleared")
	return nil
}

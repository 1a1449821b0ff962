package repository

import (
	"context"
	"sync"

	"storefront/internal/domain"
)

// MemoryStore in-memory корзины, ключ: идентификатор сессии
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string][]domain.CartItem
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		carts: make(map[string][]domain.CartItem),
	}
}

// transaction-aware locking helpers
type txKey struct{}

func isTx(ctx context.Context) bool {
	v := ctx.Value(txKey{})
	if v == nil {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

func (m *MemoryStore) rlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RLock()
	}
}
func (m *MemoryStore) runlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RUnlock()
	}
}
func (m *MemoryStore) wlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Lock()
	}
}
func (m *MemoryStore) wunlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Unlock()
	}
}

// Ensure interfaces
var _ CartRepository = (*MemoryStore)(nil)

func (m *MemoryStore) List(ctx context.Context, sessionID string) ([]domain.CartItem, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	items := m.carts[sessionID]
	// return copy
	out := make([]domain.CartItem, len(items))
	copy(out, items)
	return out, nil
}

func (m *MemoryStore) Get(ctx context.Context, sessionID, itemID string) (*domain.CartItem, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	items := m.carts[sessionID]
	i := indexOf(items, itemID)
	if i < 0 {
		return nil, ErrNotFound
	}
	cp := items[i]
	return &cp, nil
}

func (m *MemoryStore) Put(ctx context.Context, sessionID string, item domain.CartItem) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	items := m.carts[sessionID]
	if i := indexOf(items, item.ID); i >= 0 {
		items[i] = item
		return nil
	}
	m.carts[sessionID] = append(items, item)
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, sessionID, itemID string) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	items := m.carts[sessionID]
	i := indexOf(items, itemID)
	if i < 0 {
		return ErrNotFound
	}
	m.carts[sessionID] = append(items[:i:i], items[i+1:]...)
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	delete(m.carts, sessionID)
	return nil
}

// Tx manager using write lock to emulate transaction boundary
type MemoryTx struct{ store *MemoryStore }

func NewMemoryTx(store *MemoryStore) *MemoryTx { return &MemoryTx{store: store} }

func (tx *MemoryTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	// повторный вход из уже открытой транзакции не блокирует повторно
	if isTx(ctx) {
		return fn(ctx)
	}
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	ctx = context.WithValue(ctx, txKey{}, true)
	return fn(ctx)
}

package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"storefront/internal/repository"
)

// Session состояние одной сессии покупателя
type Session struct {
	ID       string
	Cart     *CartService
	Form     *CheckoutForm
	Composer *OrderComposer

	mu       sync.Mutex
	regions  *RegionProvider
	lastSeen time.Time
}

// Regions provider of the current checkout visit, nil before the first visit.
func (s *Session) Regions() *RegionProvider {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.regions
}

// SessionDeps зависимости, общие для всех сессий
type SessionDeps struct {
	Repo      repository.CartRepository
	Tx        repository.TxManager
	Discounts DiscountPolicy
	Regions   RegionSource
	Transport OrderTransport
	Validator *FormValidator
	Logger    *zap.Logger
}

// Sessions реестр сессий; корзина живёт до logout или истечения сессии
type Sessions struct {
	deps SessionDeps
	now  func() time.Time

	mu   sync.Mutex
	byID map[string]*Session
}

func NewSessions(deps SessionDeps) *Sessions {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Validator == nil {
		deps.Validator = NewFormValidator(nil)
	}
	return &Sessions{deps: deps, now: time.Now, byID: make(map[string]*Session)}
}

// Open returns the session for id, creating it with an empty cart.
func (r *Sessions) Open(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.byID[id]; ok {
		s.touch(r.now())
		return s
	}
	log := r.deps.Logger
	cart := NewCartService(id, r.deps.Repo, r.deps.Tx, r.deps.Discounts, log)
	form := NewCheckoutForm(cart, r.deps.Validator)
	s := &Session{
		ID:       id,
		Cart:     cart,
		Form:     form,
		Composer: NewOrderComposer(form, cart, r.deps.Transport, log.With(zap.String("session_id", id))),
		lastSeen: r.now(),
	}
	r.byID[id] = s
	log.Debug("session opened", zap.String("session_id", id))
	return s
}

// Visit начинает новый визит страницы оформления: свежий провайдер регионов
func (r *Sessions) Visit(s *Session) *RegionProvider {
	p := NewRegionProvider(r.deps.Regions, r.deps.Logger.With(zap.String("session_id", s.ID)))
	s.mu.Lock()
	s.regions = p
	s.mu.Unlock()
	s.Form.UseRegions(p)
	return p
}

// Close завершает сессию (logout) и очищает корзину
func (r *Sessions) Close(ctx context.Context, id string) error {
	r.mu.Lock()
	s, ok := r.byID[id]
	delete(r.byID, id)
	r.mu.Unlock()
	if !ok {
		return nil
	}
	return s.Cart.Clear(ctx)
}

// Expire closes sessions idle for longer than maxIdle and returns how many.
func (r *Sessions) Expire(ctx context.Context, maxIdle time.Duration) int {
	cutoff := r.now().Add(-maxIdle)
	n := 0
	for _, id := range r.staleIDs(cutoff) {
		closed, err := r.closeIfStale(ctx, id, cutoff)
		if err != nil {
			r.deps.Logger.Warn("expire session", zap.String("session_id", id), zap.Error(err))
			continue
		}
		if closed {
			n++
		}
	}
	return n
}

func (r *Sessions) staleIDs(cutoff time.Time) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var stale []string
	for id, s := range r.byID {
		if s.seenBefore(cutoff) {
			stale = append(stale, id)
		}
	}
	return stale
}

// closeIfStale повторно проверяет простой под блокировкой: сессия, открытая
// после сбора кандидатов, остаётся жить
func (r *Sessions) closeIfStale(ctx context.Context, id string, cutoff time.Time) (bool, error) {
	r.mu.Lock()
	s, ok := r.byID[id]
	if !ok || !s.seenBefore(cutoff) {
		r.mu.Unlock()
		return false, nil
	}
	delete(r.byID, id)
	r.mu.Unlock()
	return true, s.Cart.Clear(ctx)
}

func (s *Session) touch(t time.Time) {
	s.mu.Lock()
	s.lastSeen = t
	s.mu.Unlock()
}

func (s *Session) seenBefore(t time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen.Before(t)
}

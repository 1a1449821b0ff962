package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront/internal/domain"
)

// SubmitState состояние отправки заказа
type SubmitState string

const (
	SubmitIdle       SubmitState = "idle"
	SubmitValidating SubmitState = "validating"
	SubmitSubmitting SubmitState = "submitting"
	SubmitSucceeded  SubmitState = "succeeded"
)

// Busy reports whether a submission is in flight.
func (s SubmitState) Busy() bool {
	return s == SubmitValidating || s == SubmitSubmitting
}

// OrderComposer собирает заказ из формы и корзины и передаёт его транспорту
type OrderComposer struct {
	form      *CheckoutForm
	cart      CartStore
	transport OrderTransport
	log       *zap.Logger

	now   func() time.Time
	newID func() uuid.UUID

	mu    sync.Mutex
	state SubmitState
}

func NewOrderComposer(form *CheckoutForm, cart CartStore, transport OrderTransport, log *zap.Logger) *OrderComposer {
	if log == nil {
		log = zap.NewNop()
	}
	return &OrderComposer{
		form:      form,
		cart:      cart,
		transport: transport,
		log:       log,
		now:       time.Now,
		newID:     uuid.New,
		state:     SubmitIdle,
	}
}

func (c *OrderComposer) State() SubmitState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *OrderComposer) begin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Busy() {
		return false
	}
	c.state = SubmitValidating
	return true
}

func (c *OrderComposer) setState(s SubmitState) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// Submit проверяет форму и отправляет заказ. Корзина очищается только после
// успешной отправки; при ошибке транспорта корзина не трогается.
func (c *OrderComposer) Submit(ctx context.Context) (*domain.OrderPayload, error) {
	if !c.begin() {
		return nil, ErrSubmitInProgress
	}

	// the payload carries exactly the copy that was validated
	fields := c.form.Fields()
	errs, err := c.form.ValidateFields(ctx, fields)
	if err != nil {
		c.setState(SubmitIdle)
		return nil, err
	}
	if len(errs) > 0 {
		c.setState(SubmitIdle)
		c.log.Info("checkout rejected", zap.Int("errors", len(errs)))
		return nil, &ValidationFailedError{Errors: errs}
	}

	snap, err := c.cart.Snapshot(ctx)
	if err != nil {
		c.setState(SubmitIdle)
		return nil, err
	}
	// cart may have been emptied after Validate
	if snap.Empty() {
		c.setState(SubmitIdle)
		return nil, &ValidationFailedError{Errors: ValidationErrors{ErrEmptyCart}}
	}

	payload := domain.OrderPayload{
		Reference: c.newID(),
		Customer:  fields,
		Cart:      snap,
		CreatedAt: c.now().UTC(),
	}

	c.setState(SubmitSubmitting)
	if err := c.transport.SubmitOrder(ctx, payload); err != nil {
		c.setState(SubmitIdle)
		c.log.Warn("order submission failed", zap.Stringer("reference", payload.Reference), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}

	if err := c.cart.Clear(ctx); err != nil {
		// the order is already accepted upstream
		c.log.Error("clear cart after order", zap.Stringer("reference", payload.Reference), zap.Error(err))
	}
	c.setState(SubmitSucceeded)
	c.log.Info("order submitted",
		zap.Stringer("reference", payload.Reference),
		zap.Int("lines", len(payload.Cart.Items)),
		zap.Stringer("total", payload.Cart.Total))
	return &payload, nil
}

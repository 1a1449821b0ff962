package service

import (
	"fmt"
	"math"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

var decimalComparer = cmp.Comparer(func(x, y decimal.Decimal) bool { return x.Equal(y) })

func TestCartService_AddItem(t *testing.T) {
	tests := []struct {
		name      string
		items     []domain.CartItem
		wantItems []domain.CartItem
		wantError error
	}{
		{
			name:      "single item: ok",
			items:     []domain.CartItem{tenis(3)},
			wantItems: []domain.CartItem{tenis(3)},
		},
		{
			name:      "same id twice accumulates: ok",
			items:     []domain.CartItem{tenis(1), tenis(2)},
			wantItems: []domain.CartItem{tenis(3)},
		},
		{
			name:      "non-positive quantity clamped to 1: ok",
			items:     []domain.CartItem{tenis(0)},
			wantItems: []domain.CartItem{tenis(1)},
		},
		{
			name:      "merge overflowing quantity: error",
			items:     []domain.CartItem{tenis(math.MaxInt64), tenis(1)},
			wantError: ErrInvalidQuantity,
		},
		{
			name:      "empty id: error",
			items:     []domain.CartItem{{Name: "x", UnitPrice: points("1"), Quantity: 1}},
			wantError: ErrInvalidItem,
		},
		{
			name:      "zero price: error",
			items:     []domain.CartItem{{ID: "x", Name: "x", UnitPrice: decimal.Zero, Quantity: 1}},
			wantError: ErrInvalidItem,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			cart := newTestCart(t, nil)

			var err error
			for _, it := range tt.items {
				if err = cart.AddItem(ctx, it); err != nil {
					break
				}
			}
			if tt.wantError != nil {
				require.ErrorIs(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			snap, err := cart.Snapshot(ctx)
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.wantItems, snap.Items, decimalComparer))
		})
	}
}

func TestCartService_InsertionOrderKeptOnMerge(t *testing.T) {
	ctx := t.Context()
	cart := newTestCart(t, nil)
	a := domain.CartItem{ID: "a", Name: "A", UnitPrice: points("10"), Quantity: 1}
	b := domain.CartItem{ID: "b", Name: "B", UnitPrice: points("5"), Quantity: 1}

	require.NoError(t, cart.AddItem(ctx, a))
	require.NoError(t, cart.AddItem(ctx, b))
	require.NoError(t, cart.AddItem(ctx, a))

	snap, err := cart.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Items, 2)
	assert.Equal(t, "a", snap.Items[0].ID)
	assert.Equal(t, int64(2), snap.Items[0].Quantity)
	assert.Equal(t, "b", snap.Items[1].ID)
	assert.Equal(t, int64(3), snap.ItemCount)
}

func TestCartService_AddItemCommutative(t *testing.T) {
	ctx := t.Context()
	other := domain.CartItem{ID: "2", Name: "Meia", UnitPrice: points("9.90"), Quantity: 4}

	first := newTestCart(t, nil)
	require.NoError(t, first.AddItem(ctx, tenis(2)))
	require.NoError(t, first.AddItem(ctx, other))
	require.NoError(t, first.AddItem(ctx, tenis(5)))

	second := newTestCart(t, nil)
	require.NoError(t, second.AddItem(ctx, tenis(5)))
	require.NoError(t, second.AddItem(ctx, tenis(2)))
	require.NoError(t, second.AddItem(ctx, other))

	s1, err := first.Snapshot(ctx)
	require.NoError(t, err)
	s2, err := second.Snapshot(ctx)
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(s1, s2, decimalComparer))
	assert.Equal(t, int64(7), s1.Items[0].Quantity)
}

func TestCartService_RemoveItem(t *testing.T) {
	ctx := t.Context()
	cart := newTestCart(t, nil)
	require.NoError(t, cart.AddItem(ctx, tenis(1)))

	require.NoError(t, cart.RemoveItem(ctx, "1"))
	// absent id is a no-op
	require.NoError(t, cart.RemoveItem(ctx, "1"))
	require.NoError(t, cart.RemoveItem(ctx, "missing"))

	snap, err := cart.Snapshot(ctx)
	require.NoError(t, err)
	assert.True(t, snap.Empty())
}

func TestCartService_SetQuantity(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		qty       int64
		wantQty   int64
		wantError error
	}{
		{name: "set quantity: ok", id: "1", qty: 5, wantQty: 5},
		{name: "zero quantity: error", id: "1", qty: 0, wantQty: 3, wantError: ErrInvalidQuantity},
		{name: "negative quantity: error", id: "1", qty: -1, wantQty: 3, wantError: ErrInvalidQuantity},
		{name: "negative quantity on absent id: invalid quantity first", id: "nope", qty: -1, wantQty: 3, wantError: ErrInvalidQuantity},
		{name: "absent id: error", id: "nope", qty: 2, wantQty: 3, wantError: ErrItemNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			cart := newTestCart(t, nil)
			require.NoError(t, cart.AddItem(ctx, tenis(3)))
			before, err := cart.Snapshot(ctx)
			require.NoError(t, err)

			err = cart.SetQuantity(ctx, tt.id, tt.qty)
			if tt.wantError != nil {
				require.ErrorIs(t, err, tt.wantError)
				after, err := cart.Snapshot(ctx)
				require.NoError(t, err)
				assert.Empty(t, cmp.Diff(before, after, decimalComparer), "store changed after failed call")
				return
			}
			require.NoError(t, err)

			snap, err := cart.Snapshot(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.wantQty, snap.Items[0].Quantity)
		})
	}
}

func TestCartService_SnapshotScenario(t *testing.T) {
	ctx := t.Context()
	cart := newTestCart(t, nil)
	require.NoError(t, cart.AddItem(ctx, tenis(3)))

	snap, err := cart.Snapshot(ctx)
	require.NoError(t, err)
	assert.True(t, snap.Subtotal.Equal(points("599.97")), "subtotal %s", snap.Subtotal)
	assert.True(t, snap.Discount.IsZero())
	assert.True(t, snap.Total.Equal(points("599.97")), "total %s", snap.Total)
}

func TestCartService_FixedDiscount(t *testing.T) {
	ctx := t.Context()

	cart := newTestCart(t, FixedDiscount{Points: points("180")})
	require.NoError(t, cart.AddItem(ctx, tenis(3)))
	snap, err := cart.Snapshot(ctx)
	require.NoError(t, err)
	assert.True(t, snap.Total.Equal(points("419.97")), "total %s", snap.Total)

	// discount never exceeds the subtotal
	small := newTestCart(t, FixedDiscount{Points: points("1000")})
	require.NoError(t, small.AddItem(ctx, tenis(1)))
	snap, err = small.Snapshot(ctx)
	require.NoError(t, err)
	assert.True(t, snap.Discount.Equal(snap.Subtotal))
	assert.True(t, snap.Total.IsZero())
}

func TestCartService_Clear(t *testing.T) {
	ctx := t.Context()
	cart := newTestCart(t, nil)
	require.NoError(t, cart.AddItem(ctx, tenis(3)))
	require.NoError(t, cart.Clear(ctx))

	snap, err := cart.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Items)
	assert.True(t, snap.Subtotal.IsZero())
	assert.True(t, snap.Total.IsZero())
}

func TestCartService_TotalsInvariantUnderRandomOps(t *testing.T) {
	ctx := t.Context()
	faker := gofakeit.New(42)
	cart := newTestCart(t, FixedDiscount{Points: points("25")})

	ids := []string{"a", "b", "c", "d"}
	for i := 0; i < 500; i++ {
		id := ids[faker.IntRange(0, len(ids)-1)]
		switch faker.IntRange(0, 2) {
		case 0:
			err := cart.AddItem(ctx, domain.CartItem{
				ID:        id,
				Name:      faker.ProductName(),
				UnitPrice: decimal.NewFromFloat(faker.Price(1, 100)),
				Quantity:  int64(faker.IntRange(-2, 5)),
			})
			require.NoError(t, err)
		case 1:
			require.NoError(t, cart.RemoveItem(ctx, id))
		case 2:
			_ = cart.SetQuantity(ctx, id, int64(faker.IntRange(-1, 6)))
		}

		snap, err := cart.Snapshot(ctx)
		require.NoError(t, err)
		msg := fmt.Sprintf("step %d", i)
		require.True(t, snap.Total.Equal(snap.Subtotal.Sub(snap.Discount)), msg)
		require.False(t, snap.Discount.IsNegative(), msg)
		require.True(t, snap.Discount.LessThanOrEqual(snap.Subtotal), msg)
		for _, it := range snap.Items {
			require.Positive(t, it.Quantity, msg)
		}
	}
}

func TestCartService_OverflowLeavesCartUnchanged(t *testing.T) {
	ctx := t.Context()
	cart := newTestCart(t, FixedDiscount{Points: points("180")})
	require.NoError(t, cart.AddItem(ctx, tenis(math.MaxInt64)))
	require.ErrorIs(t, cart.AddItem(ctx, tenis(1)), ErrInvalidQuantity)

	snap, err := cart.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, int64(math.MaxInt64), snap.Items[0].Quantity)
	assert.False(t, snap.Discount.IsNegative())
	assert.True(t, snap.Discount.LessThanOrEqual(snap.Subtotal))
}

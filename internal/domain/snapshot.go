package domain

import "github.com/shopspring/decimal"

// Summarize строит снимок по позициям корзины. Скидка ограничивается
// диапазоном [0, subtotal].
func Summarize(items []CartItem, discount decimal.Decimal) CartSnapshot {
	out := CartSnapshot{
		Items:    make([]CartItem, len(items)),
		Subtotal: decimal.Zero,
	}
	copy(out.Items, items)
	for _, it := range items {
		out.Subtotal = out.Subtotal.Add(it.LineTotal())
		out.ItemCount += it.Quantity
	}
	switch {
	case discount.IsNegative():
		discount = decimal.Zero
	case discount.GreaterThan(out.Subtotal):
		discount = out.Subtotal
	}
	out.Discount = discount
	out.Total = out.Subtotal.Sub(discount)
	return out
}

package pricing

import "cakestory-client/internal/model"

// Totals is the price breakdown for one customized cake order.
type Totals struct {
	BaseCakeSubtotal int64 `json:"base_cake_subtotal"`
	ToppingsSubtotal int64 `json:"toppings_subtotal"`
	TotalPrice       int64 `json:"total_price"`
}

// SizePrice looks up the normalized price for a size label. An unknown
// label contributes zero, matching the fail-soft policy of the rest of
// the engine.
func SizePrice(sizes []model.CakeSize, selected string) int64 {
	for _, s := range sizes {
		if s.Size == selected {
			if s.Price < 0 {
				return 0
			}
			return s.Price
		}
	}
	return 0
}

// ComputeTotals derives the full breakdown from the catalog and the
// current selections. Pure function: same inputs, same outputs, no
// shared state.
//
// Toppings are deliberately NOT multiplied by the cake quantity. A
// topping quantity counts add-ons for the whole order, so adding a
// second cake never doubles the topping cost.
func ComputeTotals(sizes []model.CakeSize, selectedSize string, quantity int, toppings []ToppingSelection) Totals {
	if quantity < 1 {
		quantity = 1
	}

	base := SizePrice(sizes, selectedSize) * int64(quantity)

	var toppingsTotal int64
	for _, sel := range toppings {
		if sel.Quantity <= 0 || sel.UnitPrice < 0 {
			continue
		}
		toppingsTotal += sel.UnitPrice * int64(sel.Quantity)
	}

	return Totals{
		BaseCakeSubtotal: base,
		ToppingsSubtotal: toppingsTotal,
		TotalPrice:       base + toppingsTotal,
	}
}

package pricing

import (
	"sort"
	"time"
)

// ToppingSelection is one chosen topping with its order-wide quantity.
// The quantity counts physical add-ons for the whole order, it is not a
// per-cake multiplier.
type ToppingSelection struct {
	ToppingID uint
	Name      string
	UnitPrice int64
	Quantity  int
}

// Draft is the in-progress customization state for a single cake post.
// It holds only selections; money is always recomputed from the catalog
// via ComputeTotals, never cached here.
type Draft struct {
	SelectedSize        string
	Quantity            int
	SpecialInstructions string
	DeliveryTime        time.Time

	toppings map[uint]ToppingSelection
}

func NewDraft() *Draft {
	return &Draft{
		Quantity: 1,
		toppings: make(map[uint]ToppingSelection),
	}
}

// SelectSize records the chosen size label. Any string is accepted; a
// size missing from the catalog simply prices as zero. Strict catalog
// membership is enforced later, at order submission.
func (d *Draft) SelectSize(size string) {
	d.SelectedSize = size
}

// SetQuantity sets the number of cakes. Values below 1 clamp to 1.
func (d *Draft) SetQuantity(quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	d.Quantity = quantity
}

// SetToppingQuantity upserts a topping selection. A quantity of zero or
// less removes the entry entirely so no zero-quantity rows linger.
func (d *Draft) SetToppingQuantity(sel ToppingSelection) {
	if d.toppings == nil {
		d.toppings = make(map[uint]ToppingSelection)
	}
	if sel.Quantity <= 0 {
		delete(d.toppings, sel.ToppingID)
		return
	}
	d.toppings[sel.ToppingID] = sel
}

// Toppings returns the current selections ordered by topping id.
func (d *Draft) Toppings() []ToppingSelection {
	out := make([]ToppingSelection, 0, len(d.toppings))
	for _, sel := range d.toppings {
		out = append(out, sel)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ToppingID < out[j].ToppingID })
	return out
}

// Reset clears every selection back to the initial state.
func (d *Draft) Reset() {
	d.SelectedSize = ""
	d.Quantity = 1
	d.SpecialInstructions = ""
	d.DeliveryTime = time.Time{}
	d.toppings = make(map[uint]ToppingSelection)
}

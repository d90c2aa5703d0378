package domain

import "sort"

// CartLine is one menu item in the cart with its chosen quantity (always >= 1;
// setting quantity to zero removes the line). The price is captured at the
// moment the item is added so the preview stays stable even if the menu
// changes mid-session.
type CartLine struct {
	MenuItemID int     `json:"MenuItemID"`
	Name       string  `json:"Name"`
	Price      float64 `json:"Price"`
	Quantity   int     `json:"Quantity"`
}

func (l CartLine) LineTotal() float64 { return l.Price * float64(l.Quantity) }

// Cart lives only inside a customer session and dies with it.
type Cart struct {
	Lines []CartLine `json:"Lines"`
}

func (c Cart) IsEmpty() bool { return len(c.Lines) == 0 }

func (c Cart) Subtotal() float64 {
	var sum float64
	for _, l := range c.Lines {
		sum += l.LineTotal()
	}
	return sum
}

func (c Cart) Count() int {
	var n int
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// Sorted returns the lines ordered by menu item id for deterministic
// rendering. Checkout submits lines in cart insertion order (Lines as-is).
func (c Cart) Sorted() []CartLine {
	out := make([]CartLine, len(c.Lines))
	copy(out, c.Lines)
	sort.Slice(out, func(i, j int) bool { return out[i].MenuItemID < out[j].MenuItemID })
	return out
}

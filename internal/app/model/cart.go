package model

// CartItem represents one product and its requested quantity in the
// active cart.
type CartItem struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// LineTotal returns price times quantity for this line.
func (i CartItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Cart is the ordered collection of cart lines for the current session.
// Product IDs are unique within the collection: adding an existing product
// merges into its line instead of appending a duplicate, and a line whose
// quantity reaches zero is removed rather than kept at zero.
type Cart struct {
	Items []CartItem `json:"items"`
}

// AddOrIncrement merges the product into the cart. If the product is
// already present its quantity grows by the requested amount, otherwise a
// new line is appended. A requested quantity below one counts as one.
func (c *Cart) AddOrIncrement(product CartItem) {
	quantity := product.Quantity
	if quantity < 1 {
		quantity = 1
	}

	for idx := range c.Items {
		if c.Items[idx].ProductID == product.ProductID {
			c.Items[idx].Quantity += quantity
			return
		}
	}

	product.Quantity = quantity
	c.Items = append(c.Items, product)
}

// SetQuantity sets the quantity of the matching line. A quantity of zero
// or less removes the line entirely.
func (c *Cart) SetQuantity(productID uint, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}

	for idx := range c.Items {
		if c.Items[idx].ProductID == productID {
			c.Items[idx].Quantity = quantity
			return
		}
	}
}

// Remove filters out the matching line. Removing an absent product is a
// no-op.
func (c *Cart) Remove(productID uint) {
	items := c.Items[:0]
	for _, item := range c.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	c.Items = items
}

// Find returns the line for the given product, or false when absent.
func (c Cart) Find(productID uint) (CartItem, bool) {
	for _, item := range c.Items {
		if item.ProductID == productID {
			return item, true
		}
	}
	return CartItem{}, false
}

// TotalCount returns the sum of all line quantities.
func (c Cart) TotalCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Subtotal returns the sum of every line total.
func (c Cart) Subtotal() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.LineTotal()
	}
	return total
}

// IsEmpty reports whether the cart holds no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Clone returns a deep copy so callers can hand out snapshots without
// exposing the backing slice.
func (c Cart) Clone() Cart {
	items := make([]CartItem, len(c.Items))
	copy(items, c.Items)
	return Cart{Items: items}
}

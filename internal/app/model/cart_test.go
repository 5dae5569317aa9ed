package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCart_AddOrIncrement_NewLine(t *testing.T) {
	cart := Cart{}

	cart.AddOrIncrement(CartItem{ProductID: 1, Name: "Moringa Powder", Price: 299, Quantity: 1})

	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
	assert.Equal(t, float64(299), cart.Subtotal())
}

func TestCart_AddOrIncrement_MergesExistingLine(t *testing.T) {
	cart := Cart{}
	cart.AddOrIncrement(CartItem{ProductID: 1, Name: "Moringa Powder", Price: 299, Quantity: 2})

	// Same product again merges into the existing line, no duplicate.
	cart.AddOrIncrement(CartItem{ProductID: 1, Name: "Moringa Powder", Price: 299, Quantity: 3})

	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 5, cart.TotalCount())
}

func TestCart_AddOrIncrement_QuantityBelowOneCountsAsOne(t *testing.T) {
	cart := Cart{}

	cart.AddOrIncrement(CartItem{ProductID: 2, Name: "Neem Oil", Price: 150, Quantity: 0})
	cart.AddOrIncrement(CartItem{ProductID: 3, Name: "Tulsi Seeds", Price: 80, Quantity: -4})

	item, ok := cart.Find(2)
	assert.True(t, ok)
	assert.Equal(t, 1, item.Quantity)

	item, ok = cart.Find(3)
	assert.True(t, ok)
	assert.Equal(t, 1, item.Quantity)
}

func TestCart_SetQuantity(t *testing.T) {
	cart := Cart{}
	cart.AddOrIncrement(CartItem{ProductID: 1, Name: "Moringa Powder", Price: 299, Quantity: 1})

	cart.SetQuantity(1, 4)

	item, ok := cart.Find(1)
	assert.True(t, ok)
	assert.Equal(t, 4, item.Quantity)
}

func TestCart_SetQuantity_ZeroRemovesLine(t *testing.T) {
	cart := Cart{}
	cart.AddOrIncrement(CartItem{ProductID: 1, Name: "Moringa Powder", Price: 299, Quantity: 2})

	cart.SetQuantity(1, 0)

	assert.True(t, cart.IsEmpty())
	_, ok := cart.Find(1)
	assert.False(t, ok)
}

func TestCart_SetQuantity_NegativeRemovesLine(t *testing.T) {
	cart := Cart{}
	cart.AddOrIncrement(CartItem{ProductID: 1, Name: "Moringa Powder", Price: 299, Quantity: 2})

	cart.SetQuantity(1, -1)

	assert.True(t, cart.IsEmpty())
}

func TestCart_SetQuantity_UnknownProductIsNoop(t *testing.T) {
	cart := Cart{}
	cart.AddOrIncrement(CartItem{ProductID: 1, Name: "Moringa Powder", Price: 299, Quantity: 2})

	cart.SetQuantity(99, 7)

	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestCart_Remove(t *testing.T) {
	cart := Cart{}
	cart.AddOrIncrement(CartItem{ProductID: 1, Name: "Moringa Powder", Price: 299, Quantity: 1})
	cart.AddOrIncrement(CartItem{ProductID: 2, Name: "Neem Oil", Price: 150, Quantity: 2})

	cart.Remove(1)

	assert.Len(t, cart.Items, 1)
	assert.Equal(t, uint(2), cart.Items[0].ProductID)

	// Removing an absent product is a no-op.
	cart.Remove(42)
	assert.Len(t, cart.Items, 1)
}

func TestCart_Totals(t *testing.T) {
	cart := Cart{}
	cart.AddOrIncrement(CartItem{ProductID: 1, Name: "Moringa Powder", Price: 299, Quantity: 2})
	cart.AddOrIncrement(CartItem{ProductID: 2, Name: "Neem Oil", Price: 150, Quantity: 1})

	assert.Equal(t, 3, cart.TotalCount())
	assert.Equal(t, float64(299*2+150), cart.Subtotal())
}

func TestCart_Clone_IsIndependent(t *testing.T) {
	cart := Cart{}
	cart.AddOrIncrement(CartItem{ProductID: 1, Name: "Moringa Powder", Price: 299, Quantity: 1})

	snapshot := cart.Clone()
	cart.SetQuantity(1, 9)

	assert.Equal(t, 1, snapshot.Items[0].Quantity)
	assert.Equal(t, 9, cart.Items[0].Quantity)
}

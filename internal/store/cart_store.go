package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/nutrileaf/nutrileaf-client/internal/app/model"
	"github.com/nutrileaf/nutrileaf-client/internal/broadcast"
	"github.com/nutrileaf/nutrileaf-client/pkg/logger"
)

// CartStore is the single source of truth for the client cart. Every
// surface reads through it and mutates through it; each mutation is a full
// read-modify-write of the whole collection followed by a cart-changed
// notification, so no consumer ever observes a torn intermediate state.
type CartStore struct {
	mu          sync.Mutex
	storage     Storage
	broadcaster *broadcast.Broadcaster
}

func NewCartStore(storage Storage, broadcaster *broadcast.Broadcaster) *CartStore {
	return &CartStore{
		storage:     storage,
		broadcaster: broadcaster,
	}
}

// Read reconstructs the cart from storage. An absent key, a storage error
// or a malformed value all degrade to the empty cart: corrupted state must
// never take a surface down.
func (s *CartStore) Read(ctx context.Context) model.Cart {
	raw, err := s.storage.Get(ctx, KeyCart)
	if err != nil {
		if err != ErrKeyNotFound {
			logger.Warn("Cart read failed, falling back to empty cart", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return model.Cart{}
	}

	var cart model.Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		logger.Warn("Stored cart is malformed, falling back to empty cart", map[string]interface{}{
			"error": err.Error(),
		})
		return model.Cart{}
	}
	return cart
}

// Write persists the cart and publishes cart-changed with the new snapshot
// inlined. A storage failure is logged and swallowed: the returned value
// still reflects the attempted change, it is just not guaranteed durable.
func (s *CartStore) Write(ctx context.Context, cart model.Cart) model.Cart {
	s.mu.Lock()
	s.persist(ctx, cart)
	s.mu.Unlock()

	s.notify(ctx, cart)
	return cart
}

// AddOrIncrement merges the product into the persisted cart and returns
// the resulting collection. A requested quantity below one counts as one.
func (s *CartStore) AddOrIncrement(ctx context.Context, product model.CartItem) model.Cart {
	logger.Debug("Adding product to cart", map[string]interface{}{
		"product_id": product.ProductID,
		"quantity":   product.Quantity,
	})

	s.mu.Lock()
	cart := s.Read(ctx)
	cart.AddOrIncrement(product)
	s.persist(ctx, cart)
	s.mu.Unlock()

	s.notify(ctx, cart)
	return cart
}

// SetQuantity sets the line quantity; zero or less removes the line.
func (s *CartStore) SetQuantity(ctx context.Context, productID uint, quantity int) model.Cart {
	logger.Debug("Setting cart quantity", map[string]interface{}{
		"product_id": productID,
		"quantity":   quantity,
	})

	s.mu.Lock()
	cart := s.Read(ctx)
	cart.SetQuantity(productID, quantity)
	s.persist(ctx, cart)
	s.mu.Unlock()

	s.notify(ctx, cart)
	return cart
}

// Remove filters the line out of the persisted cart.
func (s *CartStore) Remove(ctx context.Context, productID uint) model.Cart {
	logger.Debug("Removing product from cart", map[string]interface{}{
		"product_id": productID,
	})

	s.mu.Lock()
	cart := s.Read(ctx)
	cart.Remove(productID)
	s.persist(ctx, cart)
	s.mu.Unlock()

	s.notify(ctx, cart)
	return cart
}

// Clear empties the cart, e.g. after checkout completes.
func (s *CartStore) Clear(ctx context.Context) model.Cart {
	return s.Write(ctx, model.Cart{})
}

func (s *CartStore) persist(ctx context.Context, cart model.Cart) {
	data, err := json.Marshal(cart)
	if err != nil {
		logger.Error("Failed to serialize cart", err, nil)
		return
	}
	if err := s.storage.Set(ctx, KeyCart, string(data)); err != nil {
		// Best-effort durability: surfaces keep rendering the in-memory
		// snapshot even when the write did not stick.
		logger.Warn("Cart write failed, change is not durable", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (s *CartStore) notify(ctx context.Context, cart model.Cart) {
	snapshot := cart.Clone()
	s.broadcaster.Publish(ctx, model.ChangeNotification{
		Kind: model.CartChanged,
		Cart: &snapshot,
	})
}

package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nutrileaf/nutrileaf-client/internal/app/model"
	"github.com/nutrileaf/nutrileaf-client/internal/errors"
	"github.com/nutrileaf/nutrileaf-client/internal/middleware"
	"github.com/nutrileaf/nutrileaf-client/internal/store"
)

// CartController backs the market "add to cart" button and the cart
// screen. All mutations go through the persisted store, which notifies
// every other mounted surface.
type CartController struct {
	cartStore *store.CartStore
}

func NewCartController(cartStore *store.CartStore) *CartController {
	return &CartController{
		cartStore: cartStore,
	}
}

type AddToCartRequest struct {
	ProductID uint    `json:"product_id" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Price     float64 `json:"price" binding:"gte=0"`
	Quantity  int     `json:"quantity"`
}

type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required,gte=0"`
}

func cartResponse(cart model.Cart) gin.H {
	return gin.H{
		"items":    cart.Items,
		"count":    cart.TotalCount(),
		"subtotal": cart.Subtotal(),
	}
}

// GetCart returns the current cart with derived totals
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	cart := ctrl.cartStore.Read(c.Request.Context())
	c.JSON(http.StatusOK, cartResponse(cart))
}

// AddItem adds a product, merging into an existing line
// POST /api/v1/cart/items
func (ctrl *CartController) AddItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add-to-cart request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Product data is missing or invalid")
		return
	}

	cart := ctrl.cartStore.AddOrIncrement(c.Request.Context(), model.CartItem{
		ProductID: req.ProductID,
		Name:      req.Name,
		Price:     req.Price,
		Quantity:  req.Quantity,
	})

	log.Info("Product added to cart", map[string]interface{}{
		"product_id": req.ProductID,
		"count":      cart.TotalCount(),
	})

	c.JSON(http.StatusOK, cartResponse(cart))
}

// UpdateItem sets a line quantity; zero removes the line
// PUT /api/v1/cart/items/:product_id
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid product id")
		return
	}

	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid quantity update", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Quantity is missing or invalid")
		return
	}

	cart := ctrl.cartStore.SetQuantity(c.Request.Context(), uint(productID), *req.Quantity)
	c.JSON(http.StatusOK, cartResponse(cart))
}

// RemoveItem removes a line
// DELETE /api/v1/cart/items/:product_id
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid product id")
		return
	}

	cart := ctrl.cartStore.Remove(c.Request.Context(), uint(productID))
	c.JSON(http.StatusOK, cartResponse(cart))
}

// ClearCart empties the cart
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	cart := ctrl.cartStore.Clear(c.Request.Context())
	c.JSON(http.StatusOK, cartResponse(cart))
}

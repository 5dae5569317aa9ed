package controller

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nutrileaf/nutrileaf-client/internal/backend"
	"github.com/nutrileaf/nutrileaf-client/internal/errors"
	"github.com/nutrileaf/nutrileaf-client/internal/middleware"
	"github.com/nutrileaf/nutrileaf-client/internal/store"
)

// CheckoutController backs the checkout screen. It validates the delivery
// form before touching the network, submits the order from a fresh read
// of the persisted cart and clears the cart only after the backend
// accepted the order.
type CheckoutController struct {
	cartStore *store.CartStore
	backend   *backend.Client
}

func NewCheckoutController(cartStore *store.CartStore, backendClient *backend.Client) *CheckoutController {
	return &CheckoutController{
		cartStore: cartStore,
		backend:   backendClient,
	}
}

type CheckoutRequest struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	PaymentMethod string `json:"payment_method"`
}

// validate reports per-field problems so the form can highlight them
// without a network round trip.
func (r CheckoutRequest) validate() map[string]string {
	fields := make(map[string]string)
	if strings.TrimSpace(r.Name) == "" {
		fields["name"] = "Name is required"
	}
	if strings.TrimSpace(r.Phone) == "" {
		fields["phone"] = "Phone number is required"
	}
	if strings.TrimSpace(r.Address) == "" {
		fields["address"] = "Delivery address is required"
	}
	if strings.TrimSpace(r.PaymentMethod) == "" {
		fields["payment_method"] = "Choose a payment method"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// PlaceOrder submits the order and clears the cart on success
// POST /api/v1/checkout
func (ctrl *CheckoutController) PlaceOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	ctx := c.Request.Context()

	token, exists := middleware.GetToken(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Checkout data is malformed")
		return
	}
	if fields := req.validate(); fields != nil {
		errors.RespondWithValidationError(c, fields)
		return
	}

	// Always order from the freshly persisted cart, never from whatever
	// snapshot the screen happens to hold.
	cart := ctrl.cartStore.Read(ctx)
	if cart.IsEmpty() {
		errors.BadRequest(c, errors.CartEmpty, "Your cart is empty")
		return
	}

	order := backend.OrderRequest{
		UserName:        req.Name,
		UserPhone:       req.Phone,
		DeliveryAddress: req.Address,
		PaymentMethod:   req.PaymentMethod,
		TotalAmount:     cart.Subtotal(),
	}
	for _, item := range cart.Items {
		order.Items = append(order.Items, backend.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	orderID, err := ctrl.backend.CreateOrder(ctx, token, order)
	if err != nil {
		log.Error("Order submission failed", err, map[string]interface{}{
			"total": order.TotalAmount,
			"items": len(order.Items),
		})
		// Inline failure, no retry; the cart stays intact.
		if stderrors.Is(err, backend.ErrNetwork) {
			errors.BadGateway(c, "")
			return
		}
		errors.BadRequest(c, errors.BackendRejected, "NutriLeaf could not accept this order")
		return
	}

	ctrl.cartStore.Clear(ctx)

	log.Info("Order placed", map[string]interface{}{
		"order_id": orderID,
		"total":    order.TotalAmount,
	})

	c.JSON(http.StatusCreated, gin.H{
		"order_id": orderID,
	})
}

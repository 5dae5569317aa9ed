package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutrileaf/nutrileaf-client/internal/backend"
	"github.com/nutrileaf/nutrileaf-client/internal/errors"
	"github.com/nutrileaf/nutrileaf-client/internal/middleware"
)

// OrderController backs the order-history screen.
type OrderController struct {
	backend *backend.Client
}

func NewOrderController(backendClient *backend.Client) *OrderController {
	return &OrderController{
		backend: backendClient,
	}
}

// GetOrders returns the signed-in user's order history
// GET /api/v1/orders
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	token, exists := middleware.GetToken(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	orders, err := ctrl.backend.MyOrders(c.Request.Context(), token)
	if err != nil {
		log.Error("Failed to fetch order history", err, nil)
		errors.BadGateway(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

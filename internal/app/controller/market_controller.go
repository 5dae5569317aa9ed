package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutrileaf/nutrileaf-client/internal/backend"
	"github.com/nutrileaf/nutrileaf-client/internal/errors"
	"github.com/nutrileaf/nutrileaf-client/internal/middleware"
)

// MarketController backs the marketplace listing screen: product and
// category browsing proxied from the backend.
type MarketController struct {
	backend *backend.Client
}

func NewMarketController(backendClient *backend.Client) *MarketController {
	return &MarketController{
		backend: backendClient,
	}
}

// GetProducts returns the marketplace listing
// GET /api/v1/market/products
func (ctrl *MarketController) GetProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	products, err := ctrl.backend.Products(c.Request.Context())
	if err != nil {
		log.Error("Failed to fetch products", err, nil)
		errors.BadGateway(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetCategories returns the marketplace categories
// GET /api/v1/market/categories
func (ctrl *MarketController) GetCategories(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	categories, err := ctrl.backend.Categories(c.Request.Context())
	if err != nil {
		log.Error("Failed to fetch categories", err, nil)
		errors.BadGateway(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
	})
}

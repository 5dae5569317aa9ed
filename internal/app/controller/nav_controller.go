package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutrileaf/nutrileaf-client/internal/session"
	"github.com/nutrileaf/nutrileaf-client/internal/store"
)

// NavController backs the header navigation: the cart badge and the
// signed-in greeting. It aggregates both caches in one read so the
// header renders with a single round trip.
type NavController struct {
	cartStore    *store.CartStore
	sessionCache *session.Cache
}

func NewNavController(cartStore *store.CartStore, sessionCache *session.Cache) *NavController {
	return &NavController{
		cartStore:    cartStore,
		sessionCache: sessionCache,
	}
}

// GetSummary returns the derived header state, recomputed from a fresh
// read of the persisted cart and session. Recomputing twice from the same
// persisted state yields the same numbers.
// GET /api/v1/nav/summary
func (ctrl *NavController) GetSummary(c *gin.Context) {
	ctx := c.Request.Context()

	cart := ctrl.cartStore.Read(ctx)

	response := gin.H{
		"cart_count":    cart.TotalCount(),
		"cart_subtotal": cart.Subtotal(),
		"authenticated": false,
	}

	if sess := ctrl.sessionCache.Load(ctx); sess != nil {
		response["authenticated"] = true
		response["user"] = gin.H{
			"name":  sess.Profile.Name,
			"role":  sess.Profile.Role,
			"image": sess.Profile.Image,
		}
	}

	c.JSON(http.StatusOK, response)
}

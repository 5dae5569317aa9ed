package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrileaf/nutrileaf-client/internal/app/model"
	"github.com/nutrileaf/nutrileaf-client/internal/broadcast"
	"github.com/nutrileaf/nutrileaf-client/internal/store"
)

func setupCartControllerTest(t *testing.T) (*gin.Engine, *store.CartStore, *broadcast.Broadcaster) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	broadcaster := broadcast.New(nil)
	cartStore := store.NewCartStore(store.NewMemoryStorage(), broadcaster)
	ctrl := NewCartController(cartStore)

	router := gin.New()
	router.GET("/cart", ctrl.GetCart)
	router.POST("/cart/items", ctrl.AddItem)
	router.PUT("/cart/items/:product_id", ctrl.UpdateItem)
	router.DELETE("/cart/items/:product_id", ctrl.RemoveItem)
	router.DELETE("/cart", ctrl.ClearCart)

	return router, cartStore, broadcaster
}

type cartPayload struct {
	Items    []model.CartItem `json:"items"`
	Count    int              `json:"count"`
	Subtotal float64          `json:"subtotal"`
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) cartPayload {
	t.Helper()

	var payload cartPayload
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return payload
}

func TestCartController_GetCart_Empty(t *testing.T) {
	router, _, _ := setupCartControllerTest(t)

	w := doJSON(t, router, http.MethodGet, "/cart", nil)

	require.Equal(t, http.StatusOK, w.Code)
	payload := decodeCart(t, w)
	assert.Equal(t, 0, payload.Count)
	assert.Equal(t, float64(0), payload.Subtotal)
}

func TestCartController_AddItem(t *testing.T) {
	router, _, _ := setupCartControllerTest(t)

	w := doJSON(t, router, http.MethodPost, "/cart/items", gin.H{
		"product_id": 1,
		"name":       "Moringa Powder",
		"price":      299,
		"quantity":   1,
	})

	require.Equal(t, http.StatusOK, w.Code)
	payload := decodeCart(t, w)
	require.Len(t, payload.Items, 1)
	assert.Equal(t, 1, payload.Count)
	assert.Equal(t, float64(299), payload.Subtotal)
}

func TestCartController_AddItem_MergesDuplicate(t *testing.T) {
	router, _, _ := setupCartControllerTest(t)

	item := gin.H{"product_id": 1, "name": "Moringa Powder", "price": 299, "quantity": 2}
	doJSON(t, router, http.MethodPost, "/cart/items", item)

	item["quantity"] = 3
	w := doJSON(t, router, http.MethodPost, "/cart/items", item)

	payload := decodeCart(t, w)
	require.Len(t, payload.Items, 1)
	assert.Equal(t, 5, payload.Items[0].Quantity)
}

func TestCartController_AddItem_RejectsMissingProduct(t *testing.T) {
	router, _, _ := setupCartControllerTest(t)

	w := doJSON(t, router, http.MethodPost, "/cart/items", gin.H{"quantity": 1})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartController_UpdateItem_ZeroRemoves(t *testing.T) {
	router, _, _ := setupCartControllerTest(t)

	doJSON(t, router, http.MethodPost, "/cart/items", gin.H{
		"product_id": 1, "name": "Moringa Powder", "price": 299, "quantity": 2,
	})

	w := doJSON(t, router, http.MethodPut, "/cart/items/1", gin.H{"quantity": 0})

	require.Equal(t, http.StatusOK, w.Code)
	payload := decodeCart(t, w)
	assert.Empty(t, payload.Items)
}

func TestCartController_UpdateItem_MissingQuantity(t *testing.T) {
	router, _, _ := setupCartControllerTest(t)

	w := doJSON(t, router, http.MethodPut, "/cart/items/1", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartController_UpdateItem_BadProductID(t *testing.T) {
	router, _, _ := setupCartControllerTest(t)

	w := doJSON(t, router, http.MethodPut, "/cart/items/abc", gin.H{"quantity": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartController_RemoveItem(t *testing.T) {
	router, cartStore, _ := setupCartControllerTest(t)

	doJSON(t, router, http.MethodPost, "/cart/items", gin.H{
		"product_id": 1, "name": "Moringa Powder", "price": 299, "quantity": 1,
	})
	doJSON(t, router, http.MethodPost, "/cart/items", gin.H{
		"product_id": 2, "name": "Neem Oil", "price": 150, "quantity": 1,
	})

	w := doJSON(t, router, http.MethodDelete, "/cart/items/1", nil)

	require.Equal(t, http.StatusOK, w.Code)
	payload := decodeCart(t, w)
	require.Len(t, payload.Items, 1)
	assert.Equal(t, uint(2), payload.Items[0].ProductID)

	// The persisted store agrees with the response.
	assert.Equal(t, 1, cartStore.Read(context.Background()).TotalCount())
}

func TestCartController_ClearCart(t *testing.T) {
	router, _, _ := setupCartControllerTest(t)

	doJSON(t, router, http.MethodPost, "/cart/items", gin.H{
		"product_id": 1, "name": "Moringa Powder", "price": 299, "quantity": 4,
	})

	w := doJSON(t, router, http.MethodDelete, "/cart", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, decodeCart(t, w).Count)
}

func TestCartController_Mutations_NotifySubscribers(t *testing.T) {
	router, _, broadcaster := setupCartControllerTest(t)

	var kinds []model.ChangeKind
	broadcaster.Subscribe(model.CartChanged, func(n model.ChangeNotification) {
		kinds = append(kinds, n.Kind)
	})

	doJSON(t, router, http.MethodPost, "/cart/items", gin.H{
		"product_id": 1, "name": "Moringa Powder", "price": 299, "quantity": 1,
	})
	doJSON(t, router, http.MethodDelete, "/cart", nil)

	assert.Equal(t, []model.ChangeKind{model.CartChanged, model.CartChanged}, kinds)
}

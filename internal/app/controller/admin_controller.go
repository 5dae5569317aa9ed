package controller

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/nutrileaf/nutrileaf-client/internal/backend"
	"github.com/nutrileaf/nutrileaf-client/internal/errors"
	"github.com/nutrileaf/nutrileaf-client/internal/middleware"
)

// AdminController backs the back-office screens. The CRUD forms are thin
// passthroughs to the backend's /admin API; the one piece of client-side
// work is the order export, rendered to a spreadsheet in the gateway.
type AdminController struct {
	backend *backend.Client
}

func NewAdminController(backendClient *backend.Client) *AdminController {
	return &AdminController{
		backend: backendClient,
	}
}

// Proxy forwards an admin CRUD call for a whitelisted resource
// GET/POST /api/v1/admin/:resource
// PUT/DELETE /api/v1/admin/:resource/:id
func (ctrl *AdminController) Proxy(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	token, exists := middleware.GetToken(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	resource := c.Param("resource")
	if !backend.KnownAdminResource(resource) {
		errors.NotFound(c, errors.ValidationInvalidID, "Unknown admin resource")
		return
	}

	subpath := "/" + resource
	if id := c.Param("id"); id != "" {
		subpath += "/" + id
	}

	var payload interface{}
	if c.Request.Method == http.MethodPost || c.Request.Method == http.MethodPut {
		body := map[string]interface{}{}
		if err := c.ShouldBindJSON(&body); err != nil {
			errors.BadRequest(c, errors.ValidationInvalidInput, "Request body is malformed")
			return
		}
		payload = body
	}

	raw, err := ctrl.backend.AdminRequest(c.Request.Context(), token, c.Request.Method, subpath, payload)
	if err != nil {
		log.Error("Admin proxy call failed", err, map[string]interface{}{
			"resource": resource,
			"method":   c.Request.Method,
		})
		switch {
		case stderrors.Is(err, backend.ErrNetwork):
			errors.BadGateway(c, "")
		case stderrors.Is(err, backend.ErrUnauthorized):
			errors.Forbidden(c, "")
		case stderrors.Is(err, backend.ErrNotFound):
			errors.NotFound(c, errors.BackendRejected, "Entity not found")
		default:
			errors.BadRequest(c, errors.BackendRejected, "The backend refused this change")
		}
		return
	}

	c.Data(http.StatusOK, "application/json", raw)
}

// ExportOrders renders every order into an .xlsx download
// GET /api/v1/admin/orders/export
func (ctrl *AdminController) ExportOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	token, exists := middleware.GetToken(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	orders, err := ctrl.backend.AdminListOrders(c.Request.Context(), token)
	if err != nil {
		log.Error("Failed to fetch orders for export", err, nil)
		errors.BadGateway(c, "")
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Orders"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Order ID", "Customer", "Phone", "Address", "Payment", "Status", "Total", "Items", "Created"}
	for idx, title := range headers {
		cell, _ := excelize.CoordinatesToCellName(idx+1, 1)
		f.SetCellValue(sheet, cell, title)
	}

	for row, order := range orders {
		values := []interface{}{
			order.ID,
			order.UserName,
			order.UserPhone,
			order.DeliveryAddress,
			order.PaymentMethod,
			order.Status,
			order.TotalAmount,
			len(order.Items),
			order.CreatedAt,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	filename := fmt.Sprintf("nutrileaf-orders-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		log.Error("Failed to stream order export", err, nil)
	}

	log.Info("Orders exported", map[string]interface{}{
		"count": len(orders),
	})
}

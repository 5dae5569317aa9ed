package controller

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutrileaf/nutrileaf-client/internal/backend"
	"github.com/nutrileaf/nutrileaf-client/internal/errors"
	"github.com/nutrileaf/nutrileaf-client/internal/middleware"
)

const maxScanImageSize = 10 << 20 // 10MB

// ScanController backs the plant-health scan screen: a captured photo is
// proxied to the backend classifier and the verdict returned inline.
type ScanController struct {
	backend *backend.Client
}

func NewScanController(backendClient *backend.Client) *ScanController {
	return &ScanController{
		backend: backendClient,
	}
}

// Scan classifies an uploaded plant photo
// POST /api/v1/scan
func (ctrl *ScanController) Scan(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	token, exists := middleware.GetToken(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		errors.BadRequest(c, errors.ValidationRequired, "Capture or choose a plant photo first")
		return
	}
	defer file.Close()

	if header.Size > maxScanImageSize {
		errors.BadRequest(c, errors.UploadFileTooLarge, "Photo must be 10MB or smaller")
		return
	}
	if !allowedImageType(header.Header.Get("Content-Type")) {
		errors.BadRequest(c, errors.UploadInvalidFileType, "Only JPEG, PNG, GIF and WEBP images are allowed")
		return
	}

	result, err := ctrl.backend.ScanPlant(c.Request.Context(), token, header.Filename, file)
	if err != nil {
		log.Error("Plant scan failed", err, nil)
		if stderrors.Is(err, backend.ErrNetwork) {
			errors.BadGateway(c, "")
			return
		}
		errors.BadRequest(c, errors.BackendRejected, "The photo could not be analyzed")
		return
	}

	log.Info("Plant scanned", map[string]interface{}{
		"label":      result.Label,
		"confidence": result.Confidence,
	})

	c.JSON(http.StatusOK, gin.H{
		"result": result,
	})
}

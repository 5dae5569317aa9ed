package controller

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutrileaf/nutrileaf-client/internal/backend"
	"github.com/nutrileaf/nutrileaf-client/internal/errors"
	"github.com/nutrileaf/nutrileaf-client/internal/middleware"
)

// ChatController relays the gardening chatbot. Conversation state lives
// upstream; the gateway only carries messages.
type ChatController struct {
	backend *backend.Client
}

func NewChatController(backendClient *backend.Client) *ChatController {
	return &ChatController{
		backend: backendClient,
	}
}

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// SendMessage relays a chatbot message
// POST /api/v1/chat/messages
func (ctrl *ChatController) SendMessage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	token, exists := middleware.GetToken(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationRequired, "Type a message first")
		return
	}

	reply, err := ctrl.backend.SendChatMessage(c.Request.Context(), token, req.Message)
	if err != nil {
		log.Error("Chat relay failed", err, nil)
		if stderrors.Is(err, backend.ErrNetwork) {
			errors.BadGateway(c, "")
			return
		}
		errors.BadRequest(c, errors.BackendRejected, "The assistant could not answer")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reply": reply,
	})
}

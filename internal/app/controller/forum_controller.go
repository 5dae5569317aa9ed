package controller

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nutrileaf/nutrileaf-client/internal/backend"
	"github.com/nutrileaf/nutrileaf-client/internal/errors"
	"github.com/nutrileaf/nutrileaf-client/internal/middleware"
)

// ForumController backs the community discussion screens: thread listing,
// posting, replies and likes, all proxied to the backend.
type ForumController struct {
	backend *backend.Client
}

func NewForumController(backendClient *backend.Client) *ForumController {
	return &ForumController{
		backend: backendClient,
	}
}

type CreateThreadRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type ReplyRequest struct {
	Content string `json:"content" binding:"required"`
}

// GetThreads lists discussion threads
// GET /api/v1/forum/threads
func (ctrl *ForumController) GetThreads(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	threads, err := ctrl.backend.Threads(c.Request.Context())
	if err != nil {
		log.Error("Failed to fetch threads", err, nil)
		errors.BadGateway(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"threads": threads,
		"count":   len(threads),
	})
}

// CreateThread opens a discussion
// POST /api/v1/forum/threads
func (ctrl *ForumController) CreateThread(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	token, exists := middleware.GetToken(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	var req CreateThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Title and content are required")
		return
	}

	thread, err := ctrl.backend.CreateThread(c.Request.Context(), token, req.Title, req.Content)
	if err != nil {
		log.Error("Failed to create thread", err, nil)
		if stderrors.Is(err, backend.ErrNetwork) {
			errors.BadGateway(c, "")
			return
		}
		errors.BadRequest(c, errors.BackendRejected, "Your post was refused")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"thread": thread,
	})
}

// Reply appends a comment to a thread
// POST /api/v1/forum/threads/:id/replies
func (ctrl *ForumController) Reply(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	token, exists := middleware.GetToken(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	threadID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid thread id")
		return
	}

	var req ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Reply content is required")
		return
	}

	comment, err := ctrl.backend.Reply(c.Request.Context(), token, uint(threadID), req.Content)
	if err != nil {
		log.Error("Failed to post reply", err, map[string]interface{}{
			"thread_id": threadID,
		})
		if stderrors.Is(err, backend.ErrNetwork) {
			errors.BadGateway(c, "")
			return
		}
		errors.BadRequest(c, errors.BackendRejected, "Your reply was refused")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"comment": comment,
	})
}

// Like toggles a like on a thread
// POST /api/v1/forum/threads/:id/like
func (ctrl *ForumController) Like(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	token, exists := middleware.GetToken(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	threadID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid thread id")
		return
	}

	if err := ctrl.backend.Like(c.Request.Context(), token, uint(threadID)); err != nil {
		log.Error("Failed to like thread", err, map[string]interface{}{
			"thread_id": threadID,
		})
		if stderrors.Is(err, backend.ErrNetwork) {
			errors.BadGateway(c, "")
			return
		}
		errors.BadRequest(c, errors.BackendRejected, "The like was refused")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Liked",
	})
}

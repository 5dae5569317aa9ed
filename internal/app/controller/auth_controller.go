package controller

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nutrileaf/nutrileaf-client/internal/app/model"
	"github.com/nutrileaf/nutrileaf-client/internal/backend"
	"github.com/nutrileaf/nutrileaf-client/internal/errors"
	"github.com/nutrileaf/nutrileaf-client/internal/middleware"
	"github.com/nutrileaf/nutrileaf-client/internal/session"
)

const (
	maxProfileImageSize = 5 << 20 // 5MB
)

// AuthController backs the sign-in, registration and profile screens. It
// proxies credentials to the backend and owns the local session cache
// lifecycle around those calls.
type AuthController struct {
	backend      *backend.Client
	sessionCache *session.Cache
}

func NewAuthController(backendClient *backend.Client, sessionCache *session.Cache) *AuthController {
	return &AuthController{
		backend:      backendClient,
		sessionCache: sessionCache,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Address  string `json:"address" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type UpdateProfileRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address" binding:"required"`
}

// Login signs in against the backend and caches the session
// POST /api/v1/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Email and password are required")
		return
	}

	result, err := ctrl.backend.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		log.Warn("Login failed", map[string]interface{}{
			"email": req.Email,
			"error": err.Error(),
		})
		if stderrors.Is(err, backend.ErrNetwork) {
			errors.BadGateway(c, "")
			return
		}
		errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthInvalidCredentials, "Email or password is incorrect")
		return
	}

	profile := result.User.ToProfile()
	ctrl.sessionCache.SaveLogin(c.Request.Context(), result.Token, profile)

	log.Info("User signed in", map[string]interface{}{
		"user_id": profile.ID,
		"role":    profile.Role,
	})

	c.JSON(http.StatusOK, gin.H{
		"user": profile,
	})
}

// Register creates an account and caches the resulting session
// POST /api/v1/auth/register
func (ctrl *AuthController) Register(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Some registration fields are missing or invalid")
		return
	}

	result, err := ctrl.backend.Register(c.Request.Context(), backend.RegisterRequest{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		Password: req.Password,
	})
	if err != nil {
		log.Warn("Registration failed", map[string]interface{}{
			"email": req.Email,
			"error": err.Error(),
		})
		if stderrors.Is(err, backend.ErrNetwork) {
			errors.BadGateway(c, "")
			return
		}
		errors.BadRequest(c, errors.BackendRejected, "Registration was refused")
		return
	}

	profile := result.User.ToProfile()
	ctrl.sessionCache.SaveLogin(c.Request.Context(), result.Token, profile)

	log.Info("User registered", map[string]interface{}{
		"user_id": profile.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"user": profile,
	})
}

// Logout clears the cached session
// POST /api/v1/auth/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	ctrl.sessionCache.Logout(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"message": "Signed out",
	})
}

// GetMe returns the cached profile immediately and reconciles it with the
// backend in the background. The response never waits on the network;
// surfaces hear about any correction through profile-changed.
// GET /api/v1/auth/me
func (ctrl *AuthController) GetMe(c *gin.Context) {
	profile, exists := middleware.GetProfile(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		ctrl.sessionCache.Reconcile(ctx)
	}()

	c.JSON(http.StatusOK, gin.H{
		"user": profile,
	})
}

// UpdateProfile submits edits to the backend and merges the result into
// the cache so other surfaces re-render straight away
// PUT /api/v1/auth/profile
func (ctrl *AuthController) UpdateProfile(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	token, exists := middleware.GetToken(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Name, phone and address are required")
		return
	}

	user, err := ctrl.backend.UpdateProfile(c.Request.Context(), token, req.Name, req.Phone, req.Address)
	if err != nil {
		log.Error("Profile update failed", err, nil)
		if stderrors.Is(err, backend.ErrNetwork) {
			errors.BadGateway(c, "")
			return
		}
		errors.BadRequest(c, errors.BackendRejected, "Profile update was refused")
		return
	}

	profile, err := ctrl.sessionCache.ApplyUpdate(c.Request.Context(), model.ProfileUpdate{
		Name:    &user.Name,
		Phone:   &user.Phone,
		Address: &user.Address,
	})
	if err != nil {
		errors.Unauthorized(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": profile,
	})
}

// UploadProfileImage proxies the avatar upload and merges the returned
// reference into the cache
// POST /api/v1/auth/profile-image
func (ctrl *AuthController) UploadProfileImage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	token, exists := middleware.GetToken(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		errors.BadRequest(c, errors.ValidationRequired, "Choose an image to upload")
		return
	}
	defer file.Close()

	if header.Size > maxProfileImageSize {
		errors.BadRequest(c, errors.UploadFileTooLarge, "Image must be 5MB or smaller")
		return
	}
	if !allowedImageType(header.Header.Get("Content-Type")) {
		errors.BadRequest(c, errors.UploadInvalidFileType, "Only JPEG, PNG, GIF and WEBP images are allowed")
		return
	}

	imageRef, err := ctrl.backend.UploadProfileImage(c.Request.Context(), token, header.Filename, file)
	if err != nil {
		log.Error("Profile image upload failed", err, nil)
		if stderrors.Is(err, backend.ErrNetwork) {
			errors.BadGateway(c, "")
			return
		}
		errors.BadRequest(c, errors.UploadFailed, "The image could not be uploaded")
		return
	}

	profile, err := ctrl.sessionCache.ApplyUpdate(c.Request.Context(), model.ProfileUpdate{
		Image: &imageRef,
	})
	if err != nil {
		errors.Unauthorized(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile_image": imageRef,
		"user":          profile,
	})
}

func allowedImageType(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	}
	return false
}

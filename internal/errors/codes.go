package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// UI surfaces map these codes to user-facing messages.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // sign-in required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong email/password
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // cached token expired
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // malformed token
	AuthSessionMissing     = "AUTH_SESSION_MISSING"     // no cached session in this gateway

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden = "AUTHZ_FORBIDDEN" // no access
	AuthzAdminOnly = "AUTHZ_ADMIN_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationRequired     = "VALIDATION_REQUIRED"

	// ==================== Cart (CART_) ====================
	CartItemNotFound   = "CART_ITEM_NOT_FOUND"
	CartInvalidProduct = "CART_INVALID_PRODUCT"
	CartEmpty          = "CART_EMPTY" // checkout needs at least one item

	// ==================== Upstream backend (BACKEND_) ====================
	BackendUnavailable = "BACKEND_UNAVAILABLE" // network error reaching the backend
	BackendRejected    = "BACKEND_REJECTED"    // backend returned a failure response

	// ==================== Upload (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError = "INTERNAL_SERVER_ERROR"
	InternalConfigError = "INTERNAL_CONFIG_ERROR"
)

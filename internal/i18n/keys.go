// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"
	KeyWarning = "warning"
	KeyInfo    = "info"

	// Authentication
	KeyAuthRequired             = "auth.required"
	KeyAuthInvalidToken         = "auth.invalid_token"
	KeyAuthTokenExpired         = "auth.token_expired"
	KeyAuthInvalidCredentials   = "auth.invalid_credentials"
	KeyAuthUserNotFound         = "auth.user_not_found"
	KeyAuthUserExists           = "auth.user_exists"
	KeyAuthLoginSuccess         = "auth.login_success"
	KeyAuthLogoutSuccess        = "auth.logout_success"
	KeyAuthRegisterSuccess      = "auth.register_success"
	KeyAuthPasswordReset        = "auth.password_reset"
	KeyAuthPasswordResetSuccess = "auth.password_reset_success"

	// User management
	KeyUserProfileUpdated = "user.profile_updated"
	KeyUserNotFound       = "user.not_found"
	KeyUserSuspended      = "user.suspended"

	// Designer profile / portfolio
	KeyProfileContactSaved     = "profile.contact_saved"
	KeyProfileNotFound         = "profile.not_found"
	KeyPortfolioSaved          = "portfolio.saved"
	KeyPortfolioIncomplete     = "portfolio.incomplete"
	KeyPortfolioNotFound       = "portfolio.not_found"
	KeyPortfolioSkillDuplicate = "portfolio.skill_duplicate"
	KeyPortfolioLinkInvalid    = "portfolio.link_invalid"

	// Design requests
	KeyRequestCreated  = "request.created"
	KeyRequestNotFound = "request.not_found"
	KeyRequestApproved = "request.approved"
	KeyRequestRejected = "request.rejected"
	KeyRequestDecided  = "request.already_decided"

	// Designs
	KeyDesignCreated       = "design.created"
	KeyDesignNotFound      = "design.not_found"
	KeyDesignExists        = "design.exists_for_request"
	KeyDesignBadTransition = "design.invalid_transition"
	KeyDesignUpdated       = "design.updated"

	// Canvases
	KeyCanvasNotFound        = "canvas.not_found"
	KeyCanvasInvalidRegion   = "canvas.invalid_region"
	KeyCanvasVersionConflict = "canvas.version_conflict"
	KeyCanvasSaved           = "canvas.saved"

	// Previews
	KeyPreviewGenerated = "preview.generated"
	KeyPreviewFailed    = "preview.failed"

	// Sizes
	KeySizeNotFound = "size.not_found"
	KeySizeCreated  = "size.created"

	// Inventory
	KeyInventoryItemCreated  = "inventory.item_created"
	KeyInventoryItemNotFound = "inventory.item_not_found"
	KeyInventoryNegative     = "inventory.negative_stock"
	KeyInventoryAdjusted     = "inventory.adjusted"

	// Billing
	KeyBillingInvoiceCreated = "billing.invoice_created"
	KeyBillingPaymentFailed  = "billing.payment_failed"
	KeyBillingRefunded       = "billing.refunded"

	// Admin
	KeyAdminActionSuccess   = "admin.action_success"
	KeyAdminAccessDenied    = "admin.access_denied"
	KeyAdminSettingsUpdated = "admin.settings_updated"
	KeyDesignerAccessDenied = "designer.access_denied"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"

	// File upload
	KeyFileUploadSuccess = "file.upload_success"
	KeyFileUploadFailed  = "file.upload_failed"
	KeyFileInvalidType   = "file.invalid_type"
	KeyFileTooLarge      = "file.too_large"

	// Notifications
	KeyNotificationSent   = "notification.sent"
	KeyNotificationFailed = "notification.failed"
)

// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// Users and profiles
	KeyUserNotFound       = "user.not_found"
	KeyProfileUpdated     = "profile.updated"
	KeyProfileNotFound    = "profile.not_found"
	KeyProfilePromoted    = "profile.promoted"
	KeyAvatarUploaded     = "profile.avatar_uploaded"
	KeyAdminAccessDenied  = "admin.access_denied"
	KeyAdminActionSuccess = "admin.action_success"

	// Books
	KeyBookCreated     = "book.created"
	KeyBookUpdated     = "book.updated"
	KeyBookDeleted     = "book.deleted"
	KeyBookNotFound    = "book.not_found"
	KeyBookApproved    = "book.approved"
	KeyBookRejected    = "book.rejected"
	KeyBookUnavailable = "book.unavailable"

	// PDFs
	KeyPDFCreated  = "pdf.created"
	KeyPDFUpdated  = "pdf.updated"
	KeyPDFDeleted  = "pdf.deleted"
	KeyPDFNotFound = "pdf.not_found"
	KeyPDFApproved = "pdf.approved"
	KeyPDFRejected = "pdf.rejected"
	KeyPDFInvalid  = "pdf.invalid_file"

	// Categories
	KeyCategoryCreated    = "category.created"
	KeyCategoryDeleted    = "category.deleted"
	KeyCategoryNotFound   = "category.not_found"
	KeyCategoryInUse      = "category.in_use"
	KeyCategoryNameExists = "category.name_exists"

	// Contact
	KeyContactNoPhone = "contact.no_phone"

	// Validation
	KeyValidationInvalid  = "validation.invalid"
	KeyValidationRequired = "validation.required"

	// Uploads
	KeyUploadTooLarge    = "upload.too_large"
	KeyUploadBadType     = "upload.bad_type"
	KeyUploadFailed      = "upload.failed"
	KeyUploadRateLimited = "upload.rate_limited"
)

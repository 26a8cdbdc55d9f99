package errors

import (
	stderrors "errors"
	"fmt"
)

const (
	CodeValidation     = "validation_error"
	CodeUnauthorized   = "unauthorized"
	CodeNotFound       = "not_found"
	CodeConfiguration  = "configuration_error"
	CodeSchema         = "schema_error"
	CodeProvider       = "provider_error"
	CodeProviderAuth   = "provider_auth_error"
	CodeInternal       = "internal_error"
	hintBlobCredential = "hint.blob_credential"
	hintVimeoToken     = "hint.vimeo_token"
	hintAdminPassword  = "hint.admin_password"
	hintSortOrder      = "hint.sort_order_migration"
	hintVimeoAuth      = "hint.vimeo_auth"
)

// AppError is the error type every usecase returns to the delivery layer.
// Hint is either an i18n key or literal remediation text.
type AppError struct {
	Code           string
	Message        string
	Hint           string
	UpstreamStatus int
	Err            error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

var (
	ErrValidation = func(message string) *AppError {
		return &AppError{Code: CodeValidation, Message: message}
	}
	ErrUnauthorized = func(message string) *AppError {
		return &AppError{Code: CodeUnauthorized, Message: message}
	}
	ErrNotFound = func(message string) *AppError {
		return &AppError{Code: CodeNotFound, Message: message}
	}
	ErrConfiguration = func(message, hint string) *AppError {
		return &AppError{Code: CodeConfiguration, Message: message, Hint: hint}
	}
	ErrSchema = func(err error) *AppError {
		return &AppError{
			Code:    CodeSchema,
			Message: "Database schema is out of date (missing videos.sort_order)",
			Hint:    hintSortOrder,
			Err:     err,
		}
	}
	ErrProvider = func(status int, err error) *AppError {
		return &AppError{
			Code:           CodeProvider,
			Message:        fmt.Sprintf("Vimeo API request failed with status %d", status),
			UpstreamStatus: status,
			Err:            err,
		}
	}
	ErrProviderAuth = func(err error) *AppError {
		return &AppError{
			Code:           CodeProviderAuth,
			Message:        "Vimeo rejected the access token (401)",
			Hint:           hintVimeoAuth,
			UpstreamStatus: 401,
			Err:            err,
		}
	}
	ErrInternal = func(err error) *AppError {
		return &AppError{Code: CodeInternal, Message: "Internal server error", Err: err}
	}

	ErrBlobCredentialMissing = func() *AppError {
		return ErrConfiguration("Blob storage credential is not configured: set BLOB_READ_WRITE_TOKEN or BLOB_STORAGE_TOKEN", hintBlobCredential)
	}
	ErrVimeoTokenMissing = func() *AppError {
		return ErrConfiguration("Vimeo access token is not configured: set VIMEO_ACCESS_TOKEN", hintVimeoToken)
	}
	ErrAdminPasswordMissing = func() *AppError {
		return ErrConfiguration("Admin password is not configured: set ADMIN_PASSWORD", hintAdminPassword)
	}
)

// HasCode reports whether err is an *AppError with the given code.
func HasCode(err error, code string) bool {
	var ae *AppError
	if stderrors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}

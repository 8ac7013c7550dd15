package consts

import "github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/models"

const (
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeUnavailable     = "UNAVAILABLE"
	ErrCodeAlreadyReturned = "ALREADY_RETURNED"
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeForbidden       = "FORBIDDEN"
	ErrCodeInternal        = "CIRCULATION_INTERNAL_ERROR"
)

var (
	ErrBookNotFound         = &models.CustomError{Code: ErrCodeNotFound, Message: "book not found"}
	ErrMemberNotFound       = &models.CustomError{Code: ErrCodeNotFound, Message: "member not found"}
	ErrDueNotFound          = &models.CustomError{Code: ErrCodeNotFound, Message: "due not found"}
	ErrReservationNotFound  = &models.CustomError{Code: ErrCodeNotFound, Message: "reservation not found"}
	ErrNotificationNotFound = &models.CustomError{Code: ErrCodeNotFound, Message: "notification not found"}

	ErrBookUnavailable = &models.CustomError{Code: ErrCodeUnavailable, Message: "no available copies of this book"}
	ErrAlreadyReturned = &models.CustomError{Code: ErrCodeAlreadyReturned, Message: "due has already been returned"}

	ErrInvalidCredentials = &models.CustomError{Code: ErrCodeUnauthorized, Message: "invalid email or password"}
	ErrSessionInvalid     = &models.CustomError{Code: ErrCodeUnauthorized, Message: "session is missing or expired"}
	ErrAdminOnly          = &models.CustomError{Code: ErrCodeForbidden, Message: "administrator session required"}
)

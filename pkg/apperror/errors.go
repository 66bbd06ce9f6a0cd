package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Wallet Business Logic (WAL) ----

func ErrWalletNotFound() *AppError {
	return New("WAL_001", "Wallet not found", http.StatusNotFound)
}

func ErrWalletBlocked() *AppError {
	return New("WAL_002", "Wallet is blocked and cannot perform transactions", http.StatusForbidden)
}

func ErrInsufficientFunds() *AppError {
	return New("WAL_003", "Insufficient balance in wallet", http.StatusPaymentRequired)
}

func ErrInvalidAmount() *AppError {
	return New("WAL_004", "Amount must be a positive number of minor units", http.StatusBadRequest)
}

func ErrUnderflow() *AppError {
	return New("WAL_005", "Balance arithmetic would drop below zero", http.StatusUnprocessableEntity)
}

func ErrOverflow() *AppError {
	return New("WAL_005", "Balance arithmetic would exceed the maximum representable balance", http.StatusUnprocessableEntity)
}

// ---- Transfer & Agent Operations (TXN) ----

func ErrSameParty() *AppError {
	return New("TXN_001", "Sender and recipient must be different users", http.StatusBadRequest)
}

func ErrRecipientInvalid() *AppError {
	return New("TXN_002", "Recipient must be an active user", http.StatusBadRequest)
}

func ErrInvalidAgent() *AppError {
	return New("TXN_003", "Agent must be active and approved", http.StatusForbidden)
}

func ErrInvalidUser() *AppError {
	return New("TXN_004", "User must be active with role user", http.StatusBadRequest)
}

// ---- Authentication & Identity (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid credentials", http.StatusUnauthorized)
}

func ErrEmailExists() *AppError {
	return New("AUTH_002", "Email is already registered", http.StatusConflict)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_003", "Invalid or expired token", http.StatusUnauthorized)
}

func ErrAccountInactive() *AppError {
	return New("AUTH_004", "Account is deactivated", http.StatusForbidden)
}

func ErrForbidden() *AppError {
	return New("AUTH_005", "Insufficient permissions for this operation", http.StatusForbidden)
}

func ErrNotFound(entity string) *AppError {
	return New("AUTH_006", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- System & Infrastructure (SYS) ----

// ErrStorageFailure wraps a storage-layer error. Callers must treat this as a
// possibly-partial state and rely on the transactional rollback having fired.
func ErrStorageFailure(err error) *AppError {
	return Wrap("SYS_001", "Storage operation failed", http.StatusInternalServerError, err)
}

func ErrTimeout(err error) *AppError {
	return Wrap("SYS_002", "Operation deadline exceeded", http.StatusServiceUnavailable, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a WAL_004-style validation error with a custom message.
func Validation(message string) *AppError {
	return New("WAL_004", message, http.StatusBadRequest)
}

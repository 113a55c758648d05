package domain

import "errors"

// Domain errors
var (
	ErrDashboardNotFound = errors.New("dashboard not found")
	ErrWalletNotFound    = errors.New("wallet not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidInput      = errors.New("invalid input")
	ErrNameRequired      = errors.New("name is required")
	ErrNameTooLong       = errors.New("name exceeds maximum length")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrWalletRequired    = errors.New("wallet is required")
	ErrAmountOutOfBounds = errors.New("amount does not match the advertised sendable range")
	ErrMissingK1         = errors.New("k1 is required")
	ErrMissingInvoice    = errors.New("pr is required")
	ErrWrongK1           = errors.New("wrong k1 check provided")
)

// Validation constants
const (
	MaxDashboardNameLength = 255
)

// EngineError is a failure reported by the invoice/payout engine. It wraps
// the engine's own message so callers can surface it without guessing.
type EngineError struct {
	Op      string // "create_invoice", "pay_invoice", "wallet_info"
	Message string
	Err     error
}

func (e *EngineError) Error() string {
	if e.Message != "" {
		return "payment engine: " + e.Op + ": " + e.Message
	}
	return "payment engine: " + e.Op + " failed"
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

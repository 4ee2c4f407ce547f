package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// Kind classifies an AppError so the HTTP edge can pick a status code without
// inspecting messages.
type Kind int

const (
	KindInternal Kind = iota
	KindMissingHeader
	KindInvalidAPIKey
	KindNameTaken
	KindInvalidAmount
	KindInvalidCurrency
	KindInvalidRequest
	KindCooldown
	KindQuotaExceeded
	KindUpstreamUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindMissingHeader:
		return "missing_header"
	case KindInvalidAPIKey:
		return "invalid_api_key"
	case KindNameTaken:
		return "name_taken"
	case KindInvalidAmount:
		return "invalid_amount"
	case KindInvalidCurrency:
		return "invalid_currency"
	case KindInvalidRequest:
		return "invalid_request"
	case KindCooldown:
		return "cooldown"
	case KindQuotaExceeded:
		return "quota_exceeded"
	case KindUpstreamUnavailable:
		return "upstream_unavailable"
	default:
		return "internal"
	}
}

// User-visible messages. Clients match on these strings.
const (
	MsgInvalidAPIKey         = "Invalid API Key"
	MsgNameTaken             = "Username already exists."
	MsgInvalidAmount         = "Amount must be a positive number."
	MsgCooldown              = "You must wait at least 2 minutes before making another request."
	MsgQuotaExceeded         = "Daily request limit exceeded."
	MsgRatesUnavailable      = "Failed to fetch exchange rates"
	MsgCurrenciesUnavailable = "Failed to fetch currency codes."
	MsgInternal              = "Internal server error"
)

// AppError carries a Kind, the message shown to the client and an optional cause.
type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError without an underlying cause.
func NewAppError(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

// Wrap creates an AppError that keeps err in the chain for errors.Is/As.
func Wrap(kind Kind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

// MissingHeader reports an absent required request header.
func MissingHeader(name string) *AppError {
	return NewAppError(KindMissingHeader, "Missing request header: "+name)
}

// MissingParameter reports an absent required query parameter.
func MissingParameter(name string) *AppError {
	return NewAppError(KindInvalidRequest, "Missing request parameter: "+name)
}

// InvalidCurrency echoes both codes exactly as the client sent them.
func InvalidCurrency(from, to string) *AppError {
	return NewAppError(KindInvalidCurrency, fmt.Sprintf("Invalid currency code: %s or %s", from, to))
}

// KindOf returns the Kind of the first AppError in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// MessageOf returns the client-facing message for err. Errors that are not
// AppErrors carry their raw text.
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

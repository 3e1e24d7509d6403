package failure

import (
	"errors"
	"fmt"
)

// Kind classifies every failure that may cross a component boundary.
type Kind string

const (
	NotInstalled          Kind = "not_installed"
	UserRejected          Kind = "user_rejected"
	Timeout               Kind = "timeout"
	PendingMobileRedirect Kind = "pending_mobile_redirect"
	InsufficientBalance   Kind = "insufficient_balance"
	Backend               Kind = "backend_error"
	Ledger                Kind = "ledger_error"
	Validation            Kind = "validation_error"
	// Wallet is a provider failure that is not the user's decision.
	Wallet Kind = "wallet_error"
)

// Error is a classified failure. Message is what the user sees.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorOut returns the message together with its kind and cause, for logs.
func (e *Error) ErrorOut() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// New creates a failure without an underlying cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates a failure around err. An empty message falls back to err's text.
func Wrap(kind Kind, message string, err error) *Error {
	if message == "" && err != nil {
		message = err.Error()
	}
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

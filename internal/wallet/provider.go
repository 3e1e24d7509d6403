package wallet

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Provider events
const (
	EventAccountChanged = "accountChanged"
	EventDisconnect     = "disconnect"
)

// CodeUserRejected is the provider error code for a user-declined request.
const CodeUserRejected = 4001

// ProviderConnectOptions is passed through to Provider.Connect
type ProviderConnectOptions struct {
	OnlyIfTrusted bool
}

// Provider is the injected wallet object. Only Adapter talks to it.
type Provider interface {
	Connect(ctx context.Context, opts ProviderConnectOptions) (solana.PublicKey, error)
	Disconnect(ctx context.Context) error
	SignTransaction(ctx context.Context, tx *solana.Transaction) (*solana.Transaction, error)
	// On registers cb for event. There is no way to remove a handler.
	On(event string, cb func(account *solana.PublicKey))
	IsConnected() bool
	PublicKey() *solana.PublicKey
}

// Environment is what the adapter can observe about the host: the user agent,
// the page being shown, the injected provider (nil until it appears) and a way to open links.
type Environment interface {
	UserAgent() string
	PageURL() string
	Provider() Provider
	OpenURL(url string) error
}

// ProviderError is a rejection raised by a Provider
type ProviderError struct {
	Code    int
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error %d: %s", e.Code, e.Message)
}

// NewUserRejectedError returns the error a provider raises when the user declines.
func NewUserRejectedError(message string) *ProviderError {
	return &ProviderError{Code: CodeUserRejected, Message: message}
}

// Package wallettest provides in-memory wallet providers and environments for tests.
package wallettest

import (
	"context"
	"sync"

	"github.com/AlexZinkM/coinmaker/internal/wallet"

	"github.com/gagliardetto/solana-go"
)

// Provider is a scriptable wallet.Provider.
type Provider struct {
	mu        sync.Mutex
	key       solana.PrivateKey
	connected bool
	handlers  map[string][]func(*solana.PublicKey)

	// ConnectErr, when set, is returned by every Connect call.
	ConnectErr error
	// SignErr, when set, is returned by every SignTransaction call.
	SignErr error
	// Trusted lets OnlyIfTrusted connects succeed.
	Trusted bool

	ConnectCalls    int
	DisconnectCalls int
	SignCalls       int
}

// NewProvider creates a disconnected provider holding a fresh key.
func NewProvider() *Provider {
	return &Provider{key: solana.NewWallet().PrivateKey, handlers: map[string][]func(*solana.PublicKey){}}
}

// Key returns the account key.
func (p *Provider) Key() solana.PrivateKey {
	return p.key
}

// Address returns the account address in base58.
func (p *Provider) Address() string {
	return p.key.PublicKey().String()
}

func (p *Provider) Connect(_ context.Context, opts wallet.ProviderConnectOptions) (solana.PublicKey, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ConnectCalls++
	if p.ConnectErr != nil {
		return solana.PublicKey{}, p.ConnectErr
	}
	if opts.OnlyIfTrusted && !p.Trusted {
		return solana.PublicKey{}, wallet.NewUserRejectedError("not trusted")
	}
	p.connected = true
	p.Trusted = true
	return p.key.PublicKey(), nil
}

func (p *Provider) Disconnect(context.Context) error {
	p.mu.Lock()
	p.DisconnectCalls++
	p.connected = false
	handlers := append([]func(*solana.PublicKey){}, p.handlers[wallet.EventDisconnect]...)
	p.mu.Unlock()

	for _, h := range handlers {
		h(nil)
	}
	return nil
}

func (p *Provider) SignTransaction(_ context.Context, tx *solana.Transaction) (*solana.Transaction, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.SignCalls++
	if p.SignErr != nil {
		return nil, p.SignErr
	}
	msg, err := tx.Message.MarshalBinary()
	if err != nil {
		return nil, err
	}
	sig, err := p.key.Sign(msg)
	if err != nil {
		return nil, err
	}
	signer := p.key.PublicKey()
	for i := 0; i < int(tx.Message.Header.NumRequiredSignatures) && i < len(tx.Message.AccountKeys); i++ {
		if tx.Message.AccountKeys[i].Equals(signer) {
			for len(tx.Signatures) < int(tx.Message.Header.NumRequiredSignatures) {
				tx.Signatures = append(tx.Signatures, solana.Signature{})
			}
			tx.Signatures[i] = sig
		}
	}
	return tx, nil
}

func (p *Provider) On(event string, cb func(*solana.PublicKey)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handlers[event] = append(p.handlers[event], cb)
}

func (p *Provider) IsConnected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connected
}

func (p *Provider) PublicKey() *solana.PublicKey {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.connected {
		return nil
	}
	pk := p.key.PublicKey()
	return &pk
}

// SwitchAccount replaces the key and fires accountChanged with it.
func (p *Provider) SwitchAccount(key solana.PrivateKey) {
	p.mu.Lock()
	p.key = key
	pk := key.PublicKey()
	handlers := append([]func(*solana.PublicKey){}, p.handlers[wallet.EventAccountChanged]...)
	p.mu.Unlock()

	for _, h := range handlers {
		h(&pk)
	}
}

// DropAccount disconnects without a user request and fires accountChanged with no account.
func (p *Provider) DropAccount() {
	p.mu.Lock()
	p.connected = false
	handlers := append([]func(*solana.PublicKey){}, p.handlers[wallet.EventAccountChanged]...)
	p.mu.Unlock()

	for _, h := range handlers {
		h(nil)
	}
}

// Environment is a scriptable wallet.Environment.
type Environment struct {
	mu       sync.Mutex
	ua       string
	page     string
	provider wallet.Provider
	opened   []string

	// InjectAfter makes the provider visible only after that many Provider calls.
	InjectAfter int
	calls       int
	// OpenErr is returned by OpenURL.
	OpenErr error
}

// DesktopUA and MobileUA are representative user agents.
const (
	DesktopUA = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36"
	MobileUA  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Mobile/15E148"
)

// NewEnvironment creates an environment. provider may be nil.
func NewEnvironment(userAgent, pageURL string, provider wallet.Provider) *Environment {
	return &Environment{ua: userAgent, page: pageURL, provider: provider}
}

func (e *Environment) UserAgent() string {
	return e.ua
}

func (e *Environment) PageURL() string {
	return e.page
}

func (e *Environment) Provider() wallet.Provider {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls++
	if e.provider == nil || e.calls <= e.InjectAfter {
		return nil
	}
	return e.provider
}

// SetProvider injects or removes the provider.
func (e *Environment) SetProvider(p wallet.Provider) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.provider = p
}

func (e *Environment) OpenURL(url string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opened = append(e.opened, url)
	return e.OpenErr
}

// Opened returns every URL passed to OpenURL.
func (e *Environment) Opened() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.opened...)
}

// Package keystore implements a wallet provider backed by an encrypted .cwt
// keystore, and the host environment that exposes it.
package keystore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/AlexZinkM/coinmaker/internal/client"
	"github.com/AlexZinkM/coinmaker/internal/crypto"
	"github.com/AlexZinkM/coinmaker/internal/wallet"

	"github.com/gagliardetto/solana-go"
)

// PasswordFunc yields the keystore password. trusted asks for a password
// that is available without user interaction.
type PasswordFunc func(trusted bool) ([]byte, error)

// Provider unlocks a .cwt keystore on Connect and signs with the decrypted key
// until Disconnect.
type Provider struct {
	path     string
	password PasswordFunc

	mu       sync.Mutex
	key      solana.PrivateKey
	handlers map[string][]func(*solana.PublicKey)
}

// NewProvider creates a locked provider for the keystore at path.
func NewProvider(path string, password PasswordFunc) *Provider {
	return &Provider{path: path, password: password, handlers: map[string][]func(*solana.PublicKey){}}
}

// Address returns the keystore's public address without unlocking it.
func (p *Provider) Address() (string, error) {
	return crypto.ReadWalletAddress(p.path)
}

func (p *Provider) Connect(ctx context.Context, opts wallet.ProviderConnectOptions) (solana.PublicKey, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.key != nil {
		return p.key.PublicKey(), nil
	}
	if err := ctx.Err(); err != nil {
		return solana.PublicKey{}, err
	}

	password, err := p.password(opts.OnlyIfTrusted)
	if err != nil {
		return solana.PublicKey{}, wallet.NewUserRejectedError(err.Error())
	}
	defer clear(password)

	file, data, err := crypto.DecryptWallet(p.path, password)
	if err != nil {
		if errors.Is(err, crypto.ErrInvalidPassword) {
			return solana.PublicKey{}, wallet.NewUserRejectedError("invalid password")
		}
		return solana.PublicKey{}, fmt.Errorf("failed to unlock keystore: %w", err)
	}

	key := solana.PrivateKey(data.PrivateKey)
	if len(key) != 64 {
		clear(data.PrivateKey)
		return solana.PublicKey{}, errors.New("keystore holds a malformed private key")
	}
	if file.Address != "" && key.PublicKey().String() != file.Address {
		clear(data.PrivateKey)
		return solana.PublicKey{}, errors.New("keystore address does not match its private key")
	}

	p.key = key
	return key.PublicKey(), nil
}

func (p *Provider) Disconnect(context.Context) error {
	p.mu.Lock()
	if p.key == nil {
		p.mu.Unlock()
		return nil
	}
	clear(p.key)
	p.key = nil
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

	if p.key == nil {
		return nil, errors.New("keystore is locked")
	}
	if err := client.PartialSign(tx, p.key); err != nil {
		return nil, err
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
	return p.key != nil
}

func (p *Provider) PublicKey() *solana.PublicKey {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.key == nil {
		return nil
	}
	pk := p.key.PublicKey()
	return &pk
}

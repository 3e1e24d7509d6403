package keystore

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/AlexZinkM/coinmaker/internal/wallet"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticPassword(pw string) PasswordFunc {
	return func(bool) ([]byte, error) { return []byte(pw), nil }
}

func newKeystore(t *testing.T) (string, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wallet.cwt")
	address, err := Generate(path, []byte("secret"))
	require.NoError(t, err)
	return path, address
}

func TestGenerateRejectsWrongExtension(t *testing.T) {
	_, err := Generate(filepath.Join(t.TempDir(), "wallet.json"), []byte("secret"))
	require.Error(t, err)
}

func TestProviderLifecycle(t *testing.T) {
	path, address := newKeystore(t)
	ctx := context.Background()
	p := NewProvider(path, staticPassword("secret"))

	stored, err := p.Address()
	require.NoError(t, err)
	assert.Equal(t, address, stored)

	assert.False(t, p.IsConnected())
	assert.Nil(t, p.PublicKey())

	pk, err := p.Connect(ctx, wallet.ProviderConnectOptions{})
	require.NoError(t, err)
	assert.Equal(t, address, pk.String())
	assert.True(t, p.IsConnected())

	var disconnected int
	p.On(wallet.EventDisconnect, func(*solana.PublicKey) { disconnected++ })

	require.NoError(t, p.Disconnect(ctx))
	require.NoError(t, p.Disconnect(ctx))
	assert.False(t, p.IsConnected())
	assert.Equal(t, 1, disconnected)
}

func TestProviderWrongPasswordIsRejection(t *testing.T) {
	path, _ := newKeystore(t)
	p := NewProvider(path, staticPassword("wrong"))

	_, err := p.Connect(context.Background(), wallet.ProviderConnectOptions{})
	var pe *wallet.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, wallet.CodeUserRejected, pe.Code)
	assert.False(t, p.IsConnected())
}

func TestProviderUntrustedSilentConnect(t *testing.T) {
	path, _ := newKeystore(t)
	var asked []bool
	p := NewProvider(path, func(trusted bool) ([]byte, error) {
		asked = append(asked, trusted)
		return nil, errors.New("no stored password")
	})

	_, err := p.Connect(context.Background(), wallet.ProviderConnectOptions{OnlyIfTrusted: true})
	var pe *wallet.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, []bool{true}, asked)
}

func TestProviderSignsOwnSlot(t *testing.T) {
	path, _ := newKeystore(t)
	ctx := context.Background()
	p := NewProvider(path, staticPassword("secret"))

	payer, err := p.Connect(ctx, wallet.ProviderConnectOptions{})
	require.NoError(t, err)

	mint := solana.NewWallet()
	tx, err := solana.NewTransaction(
		[]solana.Instruction{system.NewTransferInstruction(1, mint.PublicKey(), payer).Build()},
		solana.Hash{7},
		solana.TransactionPayer(payer),
	)
	require.NoError(t, err)

	signed, err := p.SignTransaction(ctx, tx)
	require.NoError(t, err)
	require.Len(t, signed.Signatures, 2)
	assert.NotEqual(t, solana.Signature{}, signed.Signatures[0])
	assert.Equal(t, solana.Signature{}, signed.Signatures[1])

	require.NoError(t, p.Disconnect(ctx))
	_, err = p.SignTransaction(ctx, tx)
	assert.Error(t, err)
}

func TestHost(t *testing.T) {
	var out bytes.Buffer
	h := NewHost("coinmaker-cli", "https://coinmaker.app", nil, &out)
	assert.Nil(t, h.Provider())

	require.NoError(t, h.OpenURL(wallet.DeepLink(h.PageURL())))
	assert.Contains(t, out.String(), "https://phantom.app/ul/v1/https%3A%2F%2Fcoinmaker.app")

	path, _ := newKeystore(t)
	h = NewHost("coinmaker-cli", "https://coinmaker.app", NewProvider(path, staticPassword("secret")), &out)
	assert.NotNil(t, h.Provider())
	assert.Equal(t, "coinmaker-cli", h.UserAgent())
}

package client

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTwoSignerTx builds a transfer from mint to payer, so both keys must sign.
func newTwoSignerTx(t *testing.T, payer, mint solana.PublicKey) *solana.Transaction {
	t.Helper()
	tx, err := solana.NewTransaction(
		[]solana.Instruction{system.NewTransferInstruction(1, mint, payer).Build()},
		solana.Hash{1},
		solana.TransactionPayer(payer),
	)
	require.NoError(t, err)
	return tx
}

func TestPartialSignFillsOnlyOwnSlot(t *testing.T) {
	payer := solana.NewWallet()
	mint := solana.NewWallet()
	tx := newTwoSignerTx(t, payer.PublicKey(), mint.PublicKey())

	require.NoError(t, PartialSign(tx, mint.PrivateKey))
	require.Len(t, tx.Signatures, 2)
	assert.Equal(t, solana.Signature{}, tx.Signatures[0])
	assert.NotEqual(t, solana.Signature{}, tx.Signatures[1])

	require.NoError(t, PartialSign(tx, payer.PrivateKey))
	assert.NotEqual(t, solana.Signature{}, tx.Signatures[0])
	require.NoError(t, tx.VerifySignatures())
}

func TestPartialSignRejectsStranger(t *testing.T) {
	payer := solana.NewWallet()
	mint := solana.NewWallet()
	tx := newTwoSignerTx(t, payer.PublicKey(), mint.PublicKey())

	err := PartialSign(tx, solana.NewWallet().PrivateKey)
	require.Error(t, err)
}

func TestEncodeDecodeTransaction(t *testing.T) {
	payer := solana.NewWallet()
	mint := solana.NewWallet()
	tx := newTwoSignerTx(t, payer.PublicKey(), mint.PublicKey())

	encoded, err := EncodeTransaction(tx)
	require.NoError(t, err)

	decoded, err := DecodeTransaction(encoded)
	require.NoError(t, err)
	fp, err := FeePayer(decoded)
	require.NoError(t, err)
	assert.Equal(t, payer.PublicKey(), fp)
	assert.Equal(t, tx.Message.RecentBlockhash, decoded.Message.RecentBlockhash)

	_, err = DecodeTransaction("%%%")
	require.Error(t, err)
}

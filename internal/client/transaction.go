package client

import (
	"encoding/base64"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// DecodeTransaction parses a base64 wire transaction as returned by the backend
func DecodeTransaction(serialized string) (*solana.Transaction, error) {
	raw, err := base64.StdEncoding.DecodeString(serialized)
	if err != nil {
		return nil, fmt.Errorf("failed to decode transaction: %w", err)
	}
	tx, err := solana.TransactionFromDecoder(bin.NewBinDecoder(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse transaction: %w", err)
	}
	return tx, nil
}

// EncodeTransaction serializes tx to base64 wire format
func EncodeTransaction(tx *solana.Transaction) (string, error) {
	raw, err := tx.MarshalBinary()
	if err != nil {
		return "", fmt.Errorf("failed to serialize transaction: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// PartialSign adds key's signature to tx, leaving the other signer slots untouched.
// tx.Sign cannot be used because it requires every signer key at once.
func PartialSign(tx *solana.Transaction, key solana.PrivateKey) error {
	signer := key.PublicKey()
	required := int(tx.Message.Header.NumRequiredSignatures)

	idx := -1
	for i := 0; i < required && i < len(tx.Message.AccountKeys); i++ {
		if tx.Message.AccountKeys[i].Equals(signer) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%s is not a required signer of the transaction", signer)
	}

	message, err := tx.Message.MarshalBinary()
	if err != nil {
		return fmt.Errorf("failed to serialize message: %w", err)
	}

	sig, err := key.Sign(message)
	if err != nil {
		return fmt.Errorf("failed to sign transaction: %w", err)
	}

	if len(tx.Signatures) != required {
		sigs := make([]solana.Signature, required)
		copy(sigs, tx.Signatures)
		tx.Signatures = sigs
	}
	tx.Signatures[idx] = sig
	return nil
}

// FeePayer returns the fee payer (first account key) of tx
func FeePayer(tx *solana.Transaction) (solana.PublicKey, error) {
	if len(tx.Message.AccountKeys) == 0 {
		return solana.PublicKey{}, fmt.Errorf("transaction has no accounts")
	}
	return tx.Message.AccountKeys[0], nil
}

package keystore

import (
	"encoding/base64"
	"fmt"
	"path/filepath"
	"time"

	"github.com/AlexZinkM/coinmaker/internal/crypto"
	"github.com/AlexZinkM/coinmaker/internal/model"

	"github.com/gagliardetto/solana-go"
	"github.com/skip2/go-qrcode"
)

const networkSolana = "solana"

// Generate creates a new Solana keypair and saves it to an encrypted .cwt keystore.
// Returns the public address on success.
// password must be []byte (caller should zero it after use)
func Generate(filePath string, password []byte) (address string, err error) {
	if filepath.Ext(filePath) != crypto.KeystoreExt {
		return "", fmt.Errorf("file must have %s extension", crypto.KeystoreExt)
	}

	w := solana.NewWallet()
	defer clear(w.PrivateKey)

	address = w.PublicKey().String()

	qrCode, err := AddressQR(address)
	if err != nil {
		return "", err
	}

	data := &model.WalletData{
		PrivateKey: w.PrivateKey,
		CreatedAt:  time.Now().Format(time.RFC3339),
	}
	if err := crypto.EncryptWallet(filePath, networkSolana, address, qrCode, data, password); err != nil {
		return "", fmt.Errorf("failed to encrypt wallet: %w", err)
	}

	return address, nil
}

// AddressQR renders address as a base64 PNG QR code
func AddressQR(address string) (string, error) {
	qr, err := qrcode.New(address, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}
	png, err := qr.PNG(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}
	return base64.StdEncoding.EncodeToString(png), nil
}

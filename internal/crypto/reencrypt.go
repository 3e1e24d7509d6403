package crypto

import (
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/AlexZinkM/coinmaker/internal/model"
)

// legacyWalletData is the old payload format: a hex-encoded 32-byte seed.
type legacyWalletData struct {
	PrivateKey string `json:"privateKey"`
	CreatedAt  string `json:"createdAt"`
}

// ReencryptWallet rewrites the keystore under newPassword with a fresh salt and nonce.
// Keystores in the old hex-seed format are migrated to the current format on the way.
// Both passwords must be []byte (caller should zero them after use)
func ReencryptWallet(filePath string, oldPassword, newPassword []byte) error {
	cwtFile, plaintext, err := openCWT(filePath, oldPassword)
	if err != nil {
		return err
	}
	defer clear(plaintext)

	walletData, err := decodeWalletData(plaintext)
	if err != nil {
		return err
	}
	defer clear(walletData.PrivateKey)

	tmp := filePath + ".tmp" + KeystoreExt
	os.Remove(tmp)
	if err := EncryptWallet(tmp, cwtFile.Network, cwtFile.Address, cwtFile.QR, walletData, newPassword); err != nil {
		return err
	}
	if err := os.Rename(tmp, filePath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace keystore: %w", err)
	}
	return nil
}

func decodeWalletData(plaintext []byte) (*model.WalletData, error) {
	var walletData model.WalletData
	if err := json.Unmarshal(plaintext, &walletData); err == nil && len(walletData.PrivateKey) == ed25519.PrivateKeySize {
		return &walletData, nil
	}

	var legacy legacyWalletData
	if err := json.Unmarshal(plaintext, &legacy); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wallet data: %w", err)
	}
	seed, err := hex.DecodeString(legacy.PrivateKey)
	if err != nil || len(seed) != ed25519.SeedSize {
		return nil, errors.New("invalid private key format")
	}
	defer clear(seed)

	return &model.WalletData{
		PrivateKey: ed25519.NewKeyFromSeed(seed),
		CreatedAt:  legacy.CreatedAt,
	}, nil
}

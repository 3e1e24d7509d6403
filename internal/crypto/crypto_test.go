package crypto

import (
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/AlexZinkM/coinmaker/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.cwt")
	data := &model.WalletData{PrivateKey: []byte{1, 2, 3, 4}, CreatedAt: "2026-01-01T00:00:00Z"}

	require.NoError(t, EncryptWallet(path, "solana", "Addr111", "qr", data, []byte("pw")))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, utf8BOM, raw[:3])

	addr, err := ReadWalletAddress(path)
	require.NoError(t, err)
	assert.Equal(t, "Addr111", addr)

	file, got, err := DecryptWallet(path, []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, "solana", file.Network)
	assert.Equal(t, data.PrivateKey, got.PrivateKey)

	_, _, err = DecryptWallet(path, []byte("wrong"))
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestEncryptRefusesExistingKeystore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.cwt")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0600))

	err := EncryptWallet(path, "solana", "a", "", &model.WalletData{}, []byte("pw"))
	assert.ErrorIs(t, err, ErrKeystoreExists)

	err = EncryptWallet(filepath.Join(t.TempDir(), "wallet.txt"), "solana", "a", "", &model.WalletData{}, []byte("pw"))
	assert.Error(t, err)
}

func TestReadWalletAddressMissingFile(t *testing.T) {
	_, err := ReadWalletAddress(filepath.Join(t.TempDir(), "none.cwt"))
	assert.Error(t, err)
}

func TestReencryptWallet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.cwt")
	key := ed25519.NewKeyFromSeed(make([]byte, ed25519.SeedSize))
	data := &model.WalletData{PrivateKey: key, CreatedAt: "2026-01-01T00:00:00Z"}
	require.NoError(t, EncryptWallet(path, "solana", "Addr111", "qr", data, []byte("old")))

	require.NoError(t, ReencryptWallet(path, []byte("old"), []byte("new")))

	_, _, err := DecryptWallet(path, []byte("old"))
	assert.ErrorIs(t, err, ErrInvalidPassword)

	file, got, err := DecryptWallet(path, []byte("new"))
	require.NoError(t, err)
	assert.Equal(t, "Addr111", file.Address)
	assert.Equal(t, []byte(key), got.PrivateKey)

	assert.ErrorIs(t, ReencryptWallet(path, []byte("old"), []byte("x")), ErrInvalidPassword)
}

func TestDecodeLegacyWalletData(t *testing.T) {
	seed := make([]byte, ed25519.SeedSize)
	seed[0] = 7
	plaintext, err := json.Marshal(legacyWalletData{PrivateKey: hex.EncodeToString(seed), CreatedAt: "2025-01-01"})
	require.NoError(t, err)

	data, err := decodeWalletData(plaintext)
	require.NoError(t, err)
	assert.Equal(t, []byte(ed25519.NewKeyFromSeed(seed)), data.PrivateKey)
	assert.Equal(t, "2025-01-01", data.CreatedAt)

	_, err = decodeWalletData([]byte(`{"privateKey":"zz"}`))
	assert.Error(t, err)
}

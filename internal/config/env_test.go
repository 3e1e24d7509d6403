package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "SOLANA_RPC_URL", "COINMAKER_RESET_DELAY", "COINMAKER_MOBILE_POLL_LIMIT", "COINMAKER_CONNECT_RETRIES", "COINMAKER_MIN_BALANCE_SOL"} {
		unsetenv(t, key)
	}

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, "https://api.mainnet-beta.solana.com", c.SolanaRPCURL)
	assert.Equal(t, 10*time.Second, c.ResetDelay)
	assert.Equal(t, 150, c.MobilePollLimit)
	assert.Equal(t, 1, c.ConnectRetries)
	assert.Equal(t, uint64(20_000_000), c.MinBalance)
}

func TestLoadHonoursOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("COINMAKER_API_URL", "https://api.example.com")
	t.Setenv("COINMAKER_CONFIRM_TIMEOUT", "5s")
	t.Setenv("COINMAKER_USER_AGENT", "Mozilla/5.0 (iPhone)")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9999", c.Port)
	assert.Equal(t, "https://api.example.com", c.APIURL)
	assert.Equal(t, 5*time.Second, c.ConfirmTimeout)
	assert.Equal(t, "Mozilla/5.0 (iPhone)", c.UserAgent)
}

func TestLoadRejectsNonPositivePollLimit(t *testing.T) {
	t.Setenv("COINMAKER_MOBILE_POLL_LIMIT", "0")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsBadMinBalance(t *testing.T) {
	t.Setenv("COINMAKER_MIN_BALANCE_SOL", "two")

	_, err := Load()
	require.Error(t, err)
}

func TestPasswordSourceTrustedNeedsPreset(t *testing.T) {
	cfg = &Config{}
	t.Cleanup(func() { cfg = nil })

	_, err := PasswordSource()(true)
	require.Error(t, err)

	cfg.WalletPassword = "secret"
	pw, err := PasswordSource()(true)
	require.NoError(t, err)
	assert.Equal(t, []byte("secret"), pw)
}

// unsetenv removes key for the duration of the test.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

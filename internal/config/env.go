package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/AlexZinkM/coinmaker/internal/common"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// Config contains all configuration parameters for the application.
// Note: the keystore password is prompted at runtime unless COINMAKER_WALLET_PASSWORD is set.
type Config struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	SolanaRPCURL    string        `envconfig:"SOLANA_RPC_URL" default:"https://api.mainnet-beta.solana.com"`
	APIURL          string        `envconfig:"COINMAKER_API_URL" default:"http://localhost:3000/api"`
	WalletFile      string        `envconfig:"COINMAKER_WALLET_FILE"`
	WalletPassword  string        `envconfig:"COINMAKER_WALLET_PASSWORD"`
	UserAgent       string        `envconfig:"COINMAKER_USER_AGENT" default:"coinmaker/1.0 (desktop)"`
	PageURL         string        `envconfig:"COINMAKER_PAGE_URL" default:"http://localhost:8080/create-token"`
	LogLevel        string        `envconfig:"COINMAKER_LOG_LEVEL" default:"info"`
	LogFormat       string        `envconfig:"COINMAKER_LOG_FORMAT" default:"text"`
	HTTPTimeout     time.Duration `envconfig:"COINMAKER_HTTP_TIMEOUT" default:"30s"`
	ConfirmTimeout  time.Duration `envconfig:"COINMAKER_CONFIRM_TIMEOUT" default:"90s"`
	ResetDelay      time.Duration `envconfig:"COINMAKER_RESET_DELAY" default:"10s"`
	MobilePollLimit int           `envconfig:"COINMAKER_MOBILE_POLL_LIMIT" default:"150"`
	ConnectRetries  int           `envconfig:"COINMAKER_CONNECT_RETRIES" default:"1"`
	MinBalanceSOL   string        `envconfig:"COINMAKER_MIN_BALANCE_SOL" default:"0.02"`

	// MinBalance is MinBalanceSOL in lamports
	MinBalance uint64 `ignored:"true"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	c, err := Load()
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

// Load reads configuration from environment variables without touching the global instance.
func Load() (*Config, error) {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if c.MobilePollLimit <= 0 {
		return nil, errors.New("COINMAKER_MOBILE_POLL_LIMIT must be positive")
	}
	minBalance, err := common.SOLToLamports(c.MinBalanceSOL)
	if err != nil {
		return nil, fmt.Errorf("invalid COINMAKER_MIN_BALANCE_SOL: %w", err)
	}
	c.MinBalance = minBalance
	return c, nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetSolanaRPCURL returns Solana RPC URL from configuration
func GetSolanaRPCURL() string {
	return Get().SolanaRPCURL
}

// GetAPIURL returns the token service backend base URL
func GetAPIURL() string {
	return Get().APIURL
}

// GetWalletFile returns path to the .cwt keystore, empty when no local wallet is configured
func GetWalletFile() string {
	return Get().WalletFile
}

// PasswordSource returns a function yielding the keystore password.
// With trusted set, only a preconfigured password is used and the user is never prompted.
func PasswordSource() func(trusted bool) ([]byte, error) {
	preset := Get().WalletPassword
	return func(trusted bool) ([]byte, error) {
		if preset != "" {
			return []byte(preset), nil
		}
		if trusted {
			return nil, errors.New("wallet is not trusted: no stored password")
		}
		return PromptForPassword()
	}
}

// PromptForPassword prompts the user for the keystore password in the terminal.
// The password is read without echoing (hidden input).
// Caller must zero the returned slice after use.
func PromptForPassword() ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal: run the app interactively to enter password")
	}
	fmt.Fprint(os.Stderr, "Enter wallet password: ")
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("password cannot be empty")
	}

	password := make([]byte, len(raw))
	copy(password, raw)
	clear(raw)
	return password, nil
}

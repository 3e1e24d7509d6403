package main

import (
	"context"
	"fmt"
	"os"

	"github.com/AlexZinkM/coinmaker/internal/client"
	"github.com/AlexZinkM/coinmaker/internal/config"
	"github.com/AlexZinkM/coinmaker/internal/logging"
	"github.com/AlexZinkM/coinmaker/internal/session"
	"github.com/AlexZinkM/coinmaker/internal/token"
	"github.com/AlexZinkM/coinmaker/internal/wallet"
	"github.com/AlexZinkM/coinmaker/internal/wallet/keystore"
)

// app wires the components from configuration.
type app struct {
	cfg     *config.Config
	log     *logging.Logger
	adapter *wallet.Adapter
	session *session.Controller
	wizard  *token.Wizard
}

func newApp() (*app, error) {
	if err := config.Init(); err != nil {
		return nil, err
	}
	cfg := config.Get()

	log, err := logging.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	ledger := client.NewSolanaClient(cfg.SolanaRPCURL, cfg.ConfirmTimeout)
	backend := client.NewBackendClient(cfg.APIURL, cfg.HTTPTimeout, log.Component("backend"))

	var provider *keystore.Provider
	if cfg.WalletFile != "" {
		provider = keystore.NewProvider(cfg.WalletFile, config.PasswordSource())
	}
	host := keystore.NewHost(cfg.UserAgent, cfg.PageURL, provider, os.Stdout)
	adapter := wallet.NewAdapter(host, ledger, wallet.DefaultOptions(), log.Component("wallet"))

	sessionOpts := session.DefaultOptions()
	sessionOpts.MobilePollLimit = cfg.MobilePollLimit
	sessionOpts.ConnectRetries = cfg.ConnectRetries
	ctrl := session.NewController(adapter, backend, sessionOpts, log.Component("session"))

	wizard := token.NewWizard(ctrl, adapter, backend, ledger, token.Options{
		ResetDelay: cfg.ResetDelay,
		MinBalance: cfg.MinBalance,
	}, log.Component("token"))

	return &app{cfg: cfg, log: log, adapter: adapter, session: ctrl, wizard: wizard}, nil
}

// connected initializes the session and connects when the silent reconnect did not.
func (a *app) connected(ctx context.Context) error {
	a.session.Initialize(ctx)
	if a.session.Snapshot().Connected() {
		return nil
	}
	if _, err := a.session.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect wallet: %w", err)
	}
	return nil
}

func (a *app) Close() {
	a.wizard.Close()
	a.session.Close()
}

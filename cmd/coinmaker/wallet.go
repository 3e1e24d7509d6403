package main

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/AlexZinkM/coinmaker/internal/common"
	"github.com/AlexZinkM/coinmaker/internal/config"
	"github.com/AlexZinkM/coinmaker/internal/crypto"
	"github.com/AlexZinkM/coinmaker/internal/wallet/keystore"

	"github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage the local keystore wallet and its session",
}

var walletGenerateCmd = &cobra.Command{
	Use:   "generate [path]",
	Short: "Generate a new encrypted .cwt keystore",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := keystorePath(args)
		if err != nil {
			return err
		}

		password, err := newPassword()
		if err != nil {
			return err
		}
		defer clear(password)

		address, err := keystore.Generate(path, password)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Wallet saved to %s\nAddress: %s\n", path, address)
		if qr, err := qrcode.New(address, qrcode.Medium); err == nil {
			fmt.Fprint(out, qr.ToSmallString(false))
		}
		return nil
	},
}

var walletPasswdCmd = &cobra.Command{
	Use:   "passwd [path]",
	Short: "Re-encrypt the keystore under a new password",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := keystorePath(args)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.ErrOrStderr(), "Current password")
		current, err := config.PromptForPassword()
		if err != nil {
			return err
		}
		defer clear(current)

		next, err := newPassword()
		if err != nil {
			return err
		}
		defer clear(next)

		if err := crypto.ReencryptWallet(path, current, next); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Password changed")
		return nil
	},
}

var walletStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the wallet session and balance",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		a.session.Initialize(cmd.Context())
		s := a.session.Snapshot()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Status:  %s\n", s.Status)
		if s.Address != "" {
			fmt.Fprintf(out, "Address: %s\n", s.Address)
			if lamports, err := a.adapter.Balance(cmd.Context()); err == nil {
				fmt.Fprintf(out, "Balance: %s SOL\n", common.DisplaySOL(lamports))
			} else {
				fmt.Fprintf(out, "Balance: unavailable (%v)\n", err)
			}
		}
		if s.Error != "" {
			fmt.Fprintf(out, "Error:   %s\n", s.Error)
		}
		return nil
	},
}

var walletConnectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Unlock the keystore and register the wallet with the backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.connected(cmd.Context()); err != nil {
			return err
		}
		s := a.session.Snapshot()
		fmt.Fprintf(cmd.OutOrStdout(), "Connected: %s\n", s.Address)
		if s.Error != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Warning: %s\n", s.Error)
		}
		return nil
	},
}

var walletDisconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "Unregister the wallet with the backend and lock the keystore",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		a.session.Initialize(cmd.Context())
		s, err := a.session.Disconnect(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Status: %s\n", s.Status)
		return nil
	},
}

func init() {
	walletCmd.AddCommand(walletGenerateCmd, walletPasswdCmd, walletStatusCmd, walletConnectCmd, walletDisconnectCmd)
}

func keystorePath(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if err := config.Init(); err != nil {
		return "", err
	}
	if path := config.GetWalletFile(); path != "" {
		return path, nil
	}
	return "", errors.New("no keystore path: pass one or set COINMAKER_WALLET_FILE")
}

func newPassword() ([]byte, error) {
	first, err := config.PromptForPassword()
	if err != nil {
		return nil, err
	}
	second, err := config.PromptForPassword()
	if err != nil {
		clear(first)
		return nil, err
	}
	defer clear(second)
	if !bytes.Equal(first, second) {
		clear(first)
		return nil, errors.New("passwords do not match")
	}
	return first, nil
}

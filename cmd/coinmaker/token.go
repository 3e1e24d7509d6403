package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AlexZinkM/coinmaker/internal/model"
	"github.com/AlexZinkM/coinmaker/internal/token"

	"github.com/spf13/cobra"
)

var (
	draft    = model.NewTokenDraft()
	logoPath string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Estimate and create tokens",
}

var tokenCostCmd = &cobra.Command{
	Use:   "cost",
	Short: "Show the advisory creation cost for the given options",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "Total: %s SOL\n", token.EstimateCost(draft).StringFixed(2))
	},
}

var tokenCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Pay the service fee and mint a new token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if logoPath != "" {
			data, err := os.ReadFile(logoPath)
			if err != nil {
				return fmt.Errorf("failed to read logo: %w", err)
			}
			draft.Logo = &model.LogoFile{Name: filepath.Base(logoPath), Data: data}
		}
		if err := token.Validate(draft); err != nil {
			return err
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		if err := a.connected(ctx); err != nil {
			return err
		}
		if err := a.wizard.UpdateDraft(draft); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		mint, err := a.wizard.PrepareMint()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Mint address: %s\nEstimated cost: %s SOL\n", mint, a.wizard.Cost().StringFixed(2))

		res, err := a.wizard.Submit(ctx)
		printProgress(cmd, a.wizard.Progress().Progress)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Token created: %s\nSignature: %s\n", res.MintAddress, res.Signature)
		return nil
	},
}

func printProgress(cmd *cobra.Command, p model.SubmissionProgress) {
	for i, s := range p.Stages {
		state := string(s.State)
		if s.Skipped {
			state += " (skipped)"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d. %-28s %s\n", i+1, s.Label, state)
	}
}

func init() {
	for _, c := range []*cobra.Command{tokenCostCmd, tokenCreateCmd} {
		f := c.Flags()
		f.BoolVar(&draft.ModifyCreator, "modify-creator", draft.ModifyCreator, "set custom creator info")
		f.BoolVar(&draft.CustomAddress, "custom-address", draft.CustomAddress, "use a custom address suffix")
		f.BoolVar(&draft.RevokeFreeze, "revoke-freeze", false, "revoke freeze authority")
		f.BoolVar(&draft.RevokeMint, "revoke-mint", false, "revoke mint authority")
		f.BoolVar(&draft.RevokeUpdate, "revoke-update", false, "revoke update authority")
	}

	f := tokenCreateCmd.Flags()
	f.StringVar(&draft.Name, "name", "", "token name")
	f.StringVar(&draft.Symbol, "symbol", "", "token symbol")
	f.IntVar(&draft.Decimals, "decimals", draft.Decimals, "token decimals (0-18)")
	f.StringVar(&draft.Supply, "supply", draft.Supply, "initial supply")
	f.StringVar(&draft.Description, "description", "", "token description")
	f.BoolVar(&draft.StoreDescription, "store-description", draft.StoreDescription, "store the description in metadata")
	f.BoolVar(&draft.EnableSocials, "socials", draft.EnableSocials, "include social links")
	f.StringVar(&draft.Website, "website", "", "website URL")
	f.StringVar(&draft.Twitter, "twitter", "", "twitter handle or URL")
	f.StringVar(&draft.Telegram, "telegram", "", "telegram link")
	f.StringVar(&draft.Discord, "discord", "", "discord invite")
	f.StringVar(&logoPath, "logo", "", "path to logo image")
	tokenCreateCmd.MarkFlagRequired("name")
	tokenCreateCmd.MarkFlagRequired("symbol")

	tokenCmd.AddCommand(tokenCostCmd, tokenCreateCmd)
}

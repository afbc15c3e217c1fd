package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gear-dapps/nft-marketplace/client"
	"github.com/gear-dapps/nft-marketplace/helpers"
	"github.com/gear-dapps/nft-marketplace/market/ft"
)

var (
	denomSymbol   string
	denomDecimals uint8

	transferSigner string
)

// denomination returns the fungible token denomination configured on the
// command line.
func denomination() *helpers.DenominationInfo {
	return &helpers.DenominationInfo{Symbol: denomSymbol, Decimals: denomDecimals}
}

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Fungible token account utilities for a local test node",
}

var balanceCmd = &cobra.Command{
	Use:   "balance <token-program> <account>",
	Short: "Query the fungible token balance of an account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		program, err := helpers.ResolveActorID(args[0])
		if err != nil {
			return err
		}
		account, err := helpers.ResolveActorID(args[1])
		if err != nil {
			return err
		}

		conn, err := client.Connect(cmd.Context(), cfg.Endpoint)
		if err != nil {
			return err
		}
		defer conn.Close()

		token := ft.NewV1(client.New(conn), *program)
		balance, err := token.Balance(cmd.Context(), client.RoundLatest, *account)
		if err != nil {
			return err
		}
		fmt.Println(helpers.FormatAmount(denomination(), *balance))
		return nil
	},
}

var transferCmd = &cobra.Command{
	Use:   "transfer <token-program> <to> <amount>",
	Short: "Transfer fungible tokens between test accounts",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		program, err := helpers.ResolveActorID(args[0])
		if err != nil {
			return err
		}
		to, err := helpers.ResolveActorID(args[1])
		if err != nil {
			return err
		}
		amount, err := helpers.ParseAmount(denomination(), args[2])
		if err != nil {
			return err
		}
		key, err := helpers.ResolveTestKey(transferSigner)
		if err != nil {
			return err
		}

		conn, err := client.Connect(cmd.Context(), cfg.Endpoint)
		if err != nil {
			return err
		}
		defer conn.Close()

		token := ft.NewV1(client.New(conn), *program)
		mb := token.Transfer(key.Address, *to, *amount).SetGasLimit(cfg.GasLimit)
		if err = mb.AppendSign(cmd.Context(), key.Signer); err != nil {
			return err
		}
		var ev ft.Event
		if err = mb.SubmitTx(cmd.Context(), &ev); err != nil {
			return err
		}
		if ev.Transfer == nil {
			return fmt.Errorf("unexpected transfer reply")
		}
		fmt.Printf("transferred %s to %s\n", helpers.FormatAmount(denomination(), ev.Transfer.Amount), ev.Transfer.To)
		return nil
	},
}

func init() {
	accountsCmd.PersistentFlags().StringVar(&denomSymbol, "symbol", "MCOIN", "token symbol")
	accountsCmd.PersistentFlags().Uint8Var(&denomDecimals, "decimals", 12, "token decimals")
	transferCmd.Flags().StringVar(&transferSigner, "signer", "test:alice", "signing test account")

	accountsCmd.AddCommand(balanceCmd)
	accountsCmd.AddCommand(transferCmd)
	rootCmd.AddCommand(accountsCmd)
}

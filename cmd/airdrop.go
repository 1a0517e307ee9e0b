package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var airdropAmount string

var airdropCmd = &cobra.Command{
	Use:   "airdrop [flags]",
	Short: "Request test SOL from the cluster faucet",
	Long: `Requests test funds for the wallet. Only clusters with a faucet accept
the request; mainnet-beta never does.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		res, err := rt.airdropService().RequestAirdrop(context.Background(), rt.session, airdropAmount)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Airdropped %s SOL to %s\nSignature: %s\n", res.Amount, res.To, res.Signature)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(airdropCmd)
	airdropCmd.Flags().StringVarP(&airdropAmount, "amount", "a", "", "amount in SOL (default from config)")
}

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mezonai/orion/service"
)

var balanceCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Show the SOL balance of an address or of the wallet",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		address := ""
		if len(args) == 1 {
			address = args[0]
		}
		res, err := service.NewBalanceService(rt.notifier).Balance(context.Background(), rt.session, address)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s SOL (%d lamports)\n", res.Address, res.Amount, res.Lamports)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}

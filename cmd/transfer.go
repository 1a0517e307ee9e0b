package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mezonai/orion/logx"
	"github.com/mezonai/orion/service"
)

type TransferConfig struct {
	To      string
	Amount  string
	WaitFor string
	Timeout time.Duration
}

var transferConfig TransferConfig

// transferCmd represents the transfer command
var transferCmd = &cobra.Command{
	Use:   "transfer [flags]",
	Short: "Transfer SOL to another account",
	Long: `This command sends SOL from the wallet to the specified recipient address.
The transaction is submitted once; a failed transfer is never retried.

Examples:
  # Transfer 2 SOL on devnet and wait until it is confirmed
  transfer -t 5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY -a 2 -f /path/to/key.txt --wait confirmed

  # Transfer 0.25 SOL using a key given directly
  transfer -t 5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY -a 0.25 -p "your-private-key-here"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return transferToken(cmd, transferConfig)
	},
}

func init() {
	rootCmd.AddCommand(transferCmd)

	transferCmd.Flags().StringVarP(&transferConfig.To, "to", "t", "", "address of recipient")
	transferCmd.Flags().StringVarP(&transferConfig.Amount, "amount", "a", "", "amount in SOL")
	transferCmd.Flags().StringVar(&transferConfig.WaitFor, "wait", "", "wait for commitment (processed, confirmed, finalized)")
	transferCmd.Flags().DurationVar(&transferConfig.Timeout, "timeout", time.Minute, "how long --wait may take")
}

func transferToken(cmd *cobra.Command, cfg TransferConfig) error {
	waitFor, err := parseCommitment(cfg.WaitFor)
	if err != nil {
		return err
	}
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	svc := service.NewTransferService(rt.inflight, rt.notifier, service.DefaultPollConfig())
	res, err := svc.Transfer(context.Background(), rt.session, cfg.To, cfg.Amount)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Sent %s SOL (%d lamports) to %s\n", res.Amount, res.Lamports, res.To)
	fmt.Fprintf(out, "Signature: %s\n", res.Signature)

	if waitFor == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()
	logx.Debug("TRANSFER CLI", "Waiting for ", waitFor, " commitment...")
	status, err := svc.AwaitConfirmation(ctx, rt.session.Ledger, res.Signature, waitFor)
	if err != nil {
		return fmt.Errorf("transfer sent but not confirmed: %w", err)
	}
	fmt.Fprintf(out, "Status: %s (slot %d)\n", status.ConfirmationStatus, status.Slot)
	return nil
}

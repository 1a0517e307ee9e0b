package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mezonai/orion/logx"
	"github.com/mezonai/orion/wallet"
)

var (
	keygenOutput string
	keygenForce  bool
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a new ed25519 wallet key",
	RunE: func(cmd *cobra.Command, args []string) error {
		if keygenOutput == "" {
			return fmt.Errorf("--output is required")
		}
		if _, err := os.Stat(keygenOutput); err == nil && !keygenForce {
			return fmt.Errorf("%s already exists, use --force to overwrite", keygenOutput)
		}
		key, err := wallet.GenerateKeypair()
		if err != nil {
			return err
		}
		if err := wallet.SaveKeypair(keygenOutput, key); err != nil {
			return err
		}
		logx.Info("KEYGEN", "Wrote key for ", key.Address(), " to ", keygenOutput)
		fmt.Fprintln(cmd.OutOrStdout(), key.Address().String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keygenCmd)
	keygenCmd.Flags().StringVarP(&keygenOutput, "output", "o", "", "file to write the hex seed to")
	keygenCmd.Flags().BoolVar(&keygenForce, "force", false, "overwrite an existing file")
}

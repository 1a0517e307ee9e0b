package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mezonai/orion/common"
	"github.com/mezonai/orion/service"
	"github.com/mezonai/orion/wallet"
)

type SignConfig struct {
	Message string
}

type VerifyConfig struct {
	Signer    string
	Message   string
	Signature string
}

var (
	signConfig   SignConfig
	verifyConfig VerifyConfig
)

var signCmd = &cobra.Command{
	Use:   "sign [flags]",
	Short: "Sign a message with the wallet and verify the signature",
	Long: `Signs the UTF-8 bytes of a message with the wallet key, verifies the
signature locally and prints it in base58.

Examples:
  sign -f /path/to/key.txt -m "hello"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		svc := service.NewSigningService(rt.inflight, rt.notifier)
		res, err := svc.SignMessage(context.Background(), rt.session, signConfig.Message)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Signer:    %s\n", res.Signer)
		fmt.Fprintf(out, "Signature: %s\n", res.Encoded)
		return nil
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify [flags]",
	Short: "Verify a base58 message signature offline",
	RunE: func(cmd *cobra.Command, args []string) error {
		signer, err := common.ParseAddress(verifyConfig.Signer)
		if err != nil {
			return err
		}
		sig, err := common.DecodeBase58ToBytes(verifyConfig.Signature)
		if err != nil {
			return fmt.Errorf("invalid signature encoding: %w", err)
		}
		if !wallet.VerifySignature(signer, []byte(verifyConfig.Message), sig) {
			return fmt.Errorf("signature is not valid for this message and signer")
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Signature OK")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(signCmd)
	rootCmd.AddCommand(verifyCmd)

	signCmd.Flags().StringVarP(&signConfig.Message, "message", "m", "", "message to sign")
	_ = signCmd.MarkFlagRequired("message")

	verifyCmd.Flags().StringVarP(&verifyConfig.Signer, "signer", "s", "", "signer address")
	verifyCmd.Flags().StringVarP(&verifyConfig.Message, "message", "m", "", "signed message")
	verifyCmd.Flags().StringVar(&verifyConfig.Signature, "signature", "", "base58 signature")
	_ = verifyCmd.MarkFlagRequired("signer")
	_ = verifyCmd.MarkFlagRequired("signature")
}

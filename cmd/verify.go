package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var verifyKey string

// verifyCmd checks a FIO API key and stores it when accepted.
var verifyCmd = &cobra.Command{
	Use:   "verify <username>",
	Short: "Verify a seller's FIO API key",
	Long: `Verify an API key against the seller's FIO account and store it when accepted.
Without --key the stored key is re-verified. A key FIO rejects is cleared.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(ctx context.Context, svc *services) error {
			account, err := svc.inventory.VerifyCredential(ctx, args[0], verifyKey)
			if err != nil {
				return fmt.Errorf("verification failed: %w", err)
			}
			fmt.Printf("Verified %s", account.Username)
			if account.CompanyCode != "" {
				fmt.Printf(" (%s, %s)", account.CompanyCode, account.CompanyName)
			}
			fmt.Printf(": %d sites\n", account.Sites)
			return nil
		})
	},
}

func init() {
	verifyCmd.Flags().StringVar(&verifyKey, "key", "", "API key to verify (defaults to the stored key)")
	RootCmd.AddCommand(verifyCmd)
}

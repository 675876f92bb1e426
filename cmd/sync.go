package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var forceSync bool

// syncCmd is the parent command for one-off syncs.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run a sync once and exit",
	Long: `Run one of the background syncs from the command line.

Examples:
  # Refresh CX prices
  sync prices

  # Reconcile one seller's offers, ignoring the staleness gate
  sync user Trader --force

  # Refresh planets and materials
  sync catalog`,
}

var syncPricesCmd = &cobra.Command{
	Use:   "prices",
	Short: "Fetch CX prices from FIO and store them",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(ctx context.Context, svc *services) error {
			summary, err := svc.job.Run(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Fetched: %d  Inserted: %d  Updated: %d  Skipped: %d\n",
				summary.Fetched, summary.Inserted, summary.Updated, summary.Skipped)
			if summary.Snapshot != "" {
				fmt.Printf("Snapshot: %s\n", summary.Snapshot)
			}
			return nil
		})
	},
}

var syncUserCmd = &cobra.Command{
	Use:   "user <username>",
	Short: "Reconcile a seller's offers against FIO storage",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(ctx context.Context, svc *services) error {
			username := args[0]
			if !svc.inventory.Sync(ctx, username, forceSync) {
				return fmt.Errorf("sync for %s did not complete", username)
			}
			staleness, err := svc.inventory.Staleness(ctx, username)
			if err != nil {
				return err
			}
			svc.logger.Info("User synced", zap.String("username", username), zap.String("staleness", staleness))
			return nil
		})
	},
}

var syncCatalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Refresh planets and materials from FIO",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(ctx context.Context, svc *services) error {
			planets, err := svc.catalog.SyncPlanets(ctx, forceSync)
			if err != nil {
				return fmt.Errorf("planet sync failed: %w", err)
			}
			materials, err := svc.catalog.SyncMaterials(ctx, forceSync)
			if err != nil {
				return fmt.Errorf("material sync failed: %w", err)
			}
			fmt.Printf("Planets:   skipped=%t inserted=%d updated=%d\n", planets.Skipped, planets.Inserted, planets.Updated)
			fmt.Printf("Materials: skipped=%t inserted=%d updated=%d\n", materials.Skipped, materials.Inserted, materials.Updated)
			return nil
		})
	},
}

// withServices bootstraps, migrates and runs fn, closing everything afterwards.
func withServices(cmd *cobra.Command, fn func(ctx context.Context, svc *services) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	svc, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer svc.close()

	if err := svc.migrate(); err != nil {
		return err
	}
	return fn(ctx, svc)
}

func init() {
	syncCmd.AddCommand(syncPricesCmd, syncUserCmd, syncCatalogCmd)
	syncUserCmd.Flags().BoolVar(&forceSync, "force", false, "Ignore the staleness gate")
	syncCatalogCmd.Flags().BoolVar(&forceSync, "force", false, "Ignore the staleness gate")
	RootCmd.AddCommand(syncCmd)
}

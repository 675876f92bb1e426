package cmd

import (
	"context"
	"fmt"

	"prunderground/core/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var checkOnly bool

// migrateCmd creates or updates the schema.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long:  `Migrates every table the service owns. With --check, only reports columns missing from the live schema.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		svc, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer svc.close()

		if !checkOnly {
			if err := svc.migrate(); err != nil {
				return err
			}
			svc.logger.Info("Schema migrated", zap.Int("tables", len(Models())))
			return nil
		}

		drift := 0
		for _, model := range Models() {
			table, expected, err := database.ExpectedColumns(svc.db, model)
			if err != nil {
				return err
			}
			missing, err := database.MissingColumns(svc.db, table, expected)
			if err != nil {
				svc.logger.Error("Inspection error", zap.String("table", table), zap.Error(err))
				drift++
				continue
			}
			if len(missing) > 0 {
				svc.logger.Warn("Missing columns", zap.String("table", table), zap.Strings("columns", missing))
				drift++
			}
		}

		if drift > 0 {
			return fmt.Errorf("schema drift in %d tables, run migrate to fix", drift)
		}
		svc.logger.Info("Schema matches models")
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&checkOnly, "check", false, "Report missing columns without migrating")
	RootCmd.AddCommand(migrateCmd)
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Produccion-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Produccion-api/pkg/config"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica las migraciones SQL pendientes",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, log, err := openBackend(cmd)
		if err != nil {
			return err
		}
		defer b.Close()
		if b.Driver != config.DriverPostgres {
			return fmt.Errorf("migrate requiere DB_DRIVER=postgres (actual: %s)", b.Driver)
		}
		n, err := postgres.Migrate(cmd.Context(), b.Pool, log)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d migraciones aplicadas\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Produccion-api/internal/infrastructure/storage"
	"github.com/jhoicas/Produccion-api/pkg/config"
	"github.com/jhoicas/Produccion-api/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "prodctl",
	Short: "Herramienta de operación de Produccion API",
	Long: `prodctl aplica migraciones y audita el ledger de inventario
usando la misma configuración (env / .env) que el servidor.`,
	SilenceUsage: true,
}

// Execute ejecuta el comando raíz.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "warn", "Nivel de log (debug, info, warn, error)")
}

// openBackend carga la configuración y abre el almacenamiento.
func openBackend(cmd *cobra.Command) (*storage.Backend, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	level, _ := cmd.Flags().GetString("log-level")
	log := logger.New(logger.Config{
		Env:     "development",
		Level:   level,
		Service: "prodctl",
		Out:     cmd.ErrOrStderr(),
	}).Zerolog()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	b, err := storage.Open(ctx, cfg.DB, log)
	if err != nil {
		return nil, log, err
	}
	return b, log, nil
}

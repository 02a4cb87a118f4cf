package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/application/inventory"
	"github.com/jhoicas/Produccion-api/internal/application/ports"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Auditoría del ledger de inventario",
}

var ledgerVerifyCmd = &cobra.Command{
	Use:   "verify <productID>",
	Short: "Reconstruye el stock desde el historial y lo compara con el almacenado",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ledger, closeFn, err := openLedger(cmd)
		if err != nil {
			return err
		}
		defer closeFn()
		business, _ := cmd.Flags().GetString("business")
		out, err := ledger.Verify(cmd.Context(), business, args[0])
		if err != nil {
			return err
		}
		if err := render(cmd, out); err != nil {
			return err
		}
		if !out.Balanced {
			return fmt.Errorf("ledger desbalanceado para %s", args[0])
		}
		return nil
	},
}

var ledgerHistoryCmd = &cobra.Command{
	Use:   "history <productID>",
	Short: "Lista los movimientos del producto, más reciente primero",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ledger, closeFn, err := openLedger(cmd)
		if err != nil {
			return err
		}
		defer closeFn()
		business, _ := cmd.Flags().GetString("business")
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		page, _ := cmd.Flags().GetInt("page")
		limit, _ := cmd.Flags().GetInt("limit")
		out, err := ledger.History(cmd.Context(), business, args[0],
			dto.DateRangeRequest{StartDate: from, EndDate: to},
			dto.PageRequest{Page: page, Limit: limit})
		if err != nil {
			return err
		}
		return render(cmd, out)
	},
}

func openLedger(cmd *cobra.Command) (*inventory.Ledger, func(), error) {
	b, log, err := openBackend(cmd)
	if err != nil {
		return nil, nil, err
	}
	l := inventory.NewLedger(b.TxRunner, b.Repos.Products, b.Repos.Transactions, ports.NopMetrics{}, log)
	return l, b.Close, nil
}

func render(cmd *cobra.Command, v any) error {
	format, _ := cmd.Flags().GetString("output")
	return encode(cmd.OutOrStdout(), format, v)
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	default:
		return fmt.Errorf("formato de salida %q no soportado (yaml|json)", format)
	}
}

func init() {
	ledgerCmd.PersistentFlags().StringP("business", "b", "", "ID del negocio dueño del producto")
	_ = ledgerCmd.MarkPersistentFlagRequired("business")
	ledgerCmd.PersistentFlags().StringP("output", "o", "yaml", "Formato de salida: yaml|json")

	ledgerHistoryCmd.Flags().String("from", "", "Fecha inicial (YYYY-MM-DD)")
	ledgerHistoryCmd.Flags().String("to", "", "Fecha final (YYYY-MM-DD)")
	ledgerHistoryCmd.Flags().Int("page", 1, "Página")
	ledgerHistoryCmd.Flags().Int("limit", 50, "Movimientos por página (máx. 100)")

	ledgerCmd.AddCommand(ledgerVerifyCmd, ledgerHistoryCmd)
	rootCmd.AddCommand(ledgerCmd)
}

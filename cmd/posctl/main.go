package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/TSaugineta225/vendendo-facil/src/pos/application/request"
	"github.com/TSaugineta225/vendendo-facil/src/pos/application/usecase"
	"github.com/TSaugineta225/vendendo-facil/src/pos/domain/port"
	"github.com/TSaugineta225/vendendo-facil/src/pos/infrastructure/cache"
	"github.com/TSaugineta225/vendendo-facil/src/pos/infrastructure/persistence"
	"github.com/TSaugineta225/vendendo-facil/src/shared/infrastructure/config"

	"github.com/google/uuid"
	_ "github.com/lib/pq" // Driver de PostgreSQL
	"github.com/spf13/cobra"
)

// backend son los repositorios sobre los que operan los comandos
type backend struct {
	products  port.ProductRepository
	sales     port.SaleRepository
	customers port.CustomerRepository
	settings  port.SettingsRepository
	close     func() error
}

// opener abre el backend a partir de la configuración
type opener func(cfg *config.Config) (*backend, error)

func openPostgres(cfg *config.Config) (*backend, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database %s not reachable: %w", cfg.Database.Name, err)
	}
	return &backend{
		products:  persistence.NewProductPostgresRepository(db),
		sales:     persistence.NewSalePostgresRepository(db),
		customers: persistence.NewCustomerPostgresRepository(db),
		settings:  persistence.NewSettingsPostgresRepository(db),
		close:     db.Close,
	}, nil
}

func main() {
	if err := newRootCmd(openPostgres).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(open opener) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "posctl",
		Short:        "Herramientas de caja: recibos, exportación y reportes",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", os.Getenv("POS_CONFIG_FILE"), "Archivo YAML de configuración")

	withBackend := func(cmd *cobra.Command, fn func(ctx context.Context, b *backend) error) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		b, err := open(cfg)
		if err != nil {
			return err
		}
		defer b.close()
		return fn(cmd.Context(), b)
	}

	root.AddCommand(
		newReceiptCmd(withBackend),
		newExportCmd(withBackend),
		newReportCmd(withBackend),
		newLowStockCmd(withBackend),
	)
	return root
}

type backendRunner func(cmd *cobra.Command, fn func(ctx context.Context, b *backend) error) error

// output abre el archivo destino o usa stdout si path es vacío
func output(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func newReceiptCmd(run backendRunner) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "receipt <sale-id>",
		Short: "Imprime el recibo de texto de una venta",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			saleID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid sale id %q: %w", args[0], err)
			}

			return run(cmd, func(ctx context.Context, b *backend) error {
				settings := cache.NewSettingsCache(b.settings)
				if err := settings.Load(ctx); err != nil {
					return err
				}
				history := usecase.NewSalesHistoryUseCase(b.sales, b.customers)
				text, _, err := usecase.NewSaleReceiptUseCase(history, settings).Execute(ctx, saleID)
				if err != nil {
					return err
				}

				w, closeFn, err := output(cmd, out)
				if err != nil {
					return err
				}
				defer closeFn()
				_, err = io.WriteString(w, text)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Archivo destino (default: stdout)")
	return cmd
}

func newExportCmd(run backendRunner) *cobra.Command {
	var (
		req    request.ListSalesRequest
		period string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Exporta el historial de ventas en CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, b *backend) error {
				if out == "-" {
					out = ""
				} else if out == "" {
					out = usecase.ExportFileName(period, time.Now())
				}

				w, closeFn, err := output(cmd, out)
				if err != nil {
					return err
				}
				defer closeFn()

				rows, err := usecase.NewExportSalesCSVUseCase(b.sales, b.customers).Execute(ctx, w, req)
				if err != nil {
					return err
				}
				if out != "" {
					fmt.Fprintf(cmd.ErrOrStderr(), "%d ventas exportadas a %s\n", rows, out)
				}
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.From, "from", "", "Fecha inicial YYYY-MM-DD")
	f.StringVar(&req.To, "to", "", "Fecha final YYYY-MM-DD (inclusiva)")
	f.StringVar(&req.PaymentMethod, "payment-method", "", "dinheiro, visa, mpesa o mmola")
	f.IntVar(&req.Limit, "limit", 0, "Máximo de ventas (default: 100)")
	f.StringVar(&period, "period", "", "Etiqueta del período para el nombre del archivo")
	f.StringVar(&out, "out", "", "Archivo destino; '-' = stdout (default: relatorio_vendas_<period>_<fecha>.csv)")
	return cmd
}

func newReportCmd(run backendRunner) *cobra.Command {
	report := &cobra.Command{
		Use:   "report",
		Short: "Reportes de ventas",
	}

	var date string
	daily := &cobra.Command{
		Use:   "daily",
		Short: "Reporte diario de ventas en JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if date == "" {
				date = time.Now().Format("2006-01-02")
			}
			return run(cmd, func(ctx context.Context, b *backend) error {
				resp, err := usecase.NewDailyReportUseCase(b.sales).Execute(ctx, date)
				if err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			})
		},
	}
	daily.Flags().StringVar(&date, "date", "", "Fecha YYYY-MM-DD (default: hoy)")

	report.AddCommand(daily)
	return report
}

func newLowStockCmd(run backendRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "low-stock",
		Short: "Lista los productos en o por debajo del stock mínimo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, b *backend) error {
				products, err := usecase.NewInventoryUseCase(b.products).LowStock(ctx)
				if err != nil {
					return err
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "PRODUTO\tCATEGORIA\tSTOCK\tMÍNIMO")
				for _, p := range products {
					minStock := "-"
					if p.MinStock != nil {
						minStock = fmt.Sprint(*p.MinStock)
					}
					fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", p.Name, p.Category, p.Stock, minStock)
				}
				return tw.Flush()
			})
		},
	}
}

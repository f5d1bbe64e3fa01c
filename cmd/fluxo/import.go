package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/rcfaria/fluxo/internal/importer"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.xlsx>",
		Short: "Import an uploaded sales report",
		Long: `Parse a department sales report (.xlsx) and replace the stored sales
data with its contents. The header row is located by name, so column
order does not matter; rows that fail to parse are skipped with a
warning.`,
		Example: `  fluxo import relatorio-vendas.xlsx`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open report: %w", err)
			}
			defer func() { _ = f.Close() }()

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			imp := importer.NewImporter(store, slog.Default())
			inserted, err := imp.Ingest(ctx, f)
			if err != nil {
				return err
			}

			fmt.Printf("%s Imported %d department rows from %s\n",
				successStyle.Render("✓"), inserted, args[0])
			return nil
		},
	}

	return cmd
}

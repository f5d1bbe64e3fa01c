package main

import (
	"fmt"
	"strings"

	"github.com/rcfaria/fluxo/internal/model"
	"github.com/spf13/cobra"
)

func monthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "month <sheet>",
		Short: "Show the KPI dashboard for one month sheet",
		Long: `Extract one month sheet and print its revenue, expenses, gross
profit, installments received and average ticket.`,
		Example: `  fluxo month SETEMBRO25`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sheetName := strings.ToUpper(args[0])

			eng, cleanup, err := newEngine(ctx, false)
			if err != nil {
				return err
			}
			defer cleanup()

			kpis, err := eng.MonthKPIs(ctx, sheetName)
			if err != nil {
				return err
			}

			printKPIs(sheetName, kpis)
			return nil
		},
	}

	return cmd
}

func yearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "year",
		Short: "Show the KPI dashboard aggregated over all month sheets",
		Long: `Extract every configured month sheet and print the summed figures.
Months that fail to load are skipped with a warning; the command only
fails when no sheet loads at all.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := newEngine(ctx, false)
			if err != nil {
				return err
			}
			defer cleanup()

			kpis, err := eng.YearKPIs(ctx, monthSheets())
			if err != nil {
				return err
			}

			printKPIs("Year to date", kpis)
			return nil
		},
	}

	return cmd
}

func printKPIs(title string, kpis model.MonthKPIs) {
	fmt.Println(titleStyle.Render("📊 " + title))

	rows := []struct {
		label string
		value string
	}{
		{"Revenue", formatBRL(kpis.Revenue)},
		{"Expenses", formatBRL(kpis.Expenses)},
		{"Gross profit", formatBRL(kpis.GrossProfit())},
		{"Installments received", formatBRL(kpis.InstallmentsReceived)},
		{"Sales", fmt.Sprintf("%d", kpis.SaleCount)},
		{"Average ticket", formatBRL(kpis.AverageTicket())},
	}

	for _, row := range rows {
		fmt.Printf("  %s %s\n", labelStyle.Render(fmt.Sprintf("%-22s", row.label)), row.value)
	}
}

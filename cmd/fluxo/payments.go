package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rcfaria/fluxo/internal/model"
	"github.com/spf13/cobra"
)

func paymentsCmd() *cobra.Command {
	var entries bool

	cmd := &cobra.Command{
		Use:   "payments <sheet>",
		Short: "Show the payment-method breakdown for one month sheet",
		Long: `Print how the month's receipts split across Dinheiro, Crediário,
Crédito, PIX and Débito. By default the split comes from the sheet's
method columns; --entries groups the extracted sale entries by their
payment-method cell instead.`,
		Example: `  fluxo payments SETEMBRO25
  fluxo payments SETEMBRO25 --entries`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sheetName := strings.ToUpper(args[0])

			eng, cleanup, err := newEngine(ctx, false)
			if err != nil {
				return err
			}
			defer cleanup()

			var shares []model.MethodShare
			if entries {
				shares, err = eng.EntryBreakdown(ctx, sheetName)
			} else {
				shares, err = eng.MethodBreakdown(ctx, sheetName)
			}
			if err != nil {
				return err
			}

			fmt.Println(titleStyle.Render("💳 Payments · " + sheetName))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, strings.Join([]string{
				headerStyle.Render("METHOD"),
				headerStyle.Render("AMOUNT"),
				headerStyle.Render("SHARE"),
			}, "\t"))

			var total float64
			for _, s := range shares {
				total += s.Amount
				fmt.Fprintf(w, "%s\t%s\t%s\n", s.Method, formatBRL(s.Amount), formatPercent(s.Percent))
			}
			_ = w.Flush()

			fmt.Printf("\n  %s %s\n", labelStyle.Render("Total"), formatBRL(total))
			return nil
		},
	}

	cmd.Flags().BoolVar(&entries, "entries", false, "Group extracted sale entries by method instead of reading the method columns")

	return cmd
}

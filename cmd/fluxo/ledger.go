package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rcfaria/fluxo/internal/model"
	"github.com/spf13/cobra"
)

func ledgerCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "ledger [client name]",
		Short: "Show the crediário client ledger with debt aging",
		Long: `Build the crediário ledger from the contract sheet, the balance sheet
and the month sheets. Without arguments the active clients are listed,
highest balance first. With a client name the full history for the best
matching client is shown.`,
		Example: `  fluxo ledger
  fluxo ledger "maria souza"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			rec, err := newReconciler(ctx)
			if err != nil {
				return err
			}

			clients, err := rec.BuildLedger(ctx)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				client, ok := rec.FindClient(clients, args[0])
				if !ok {
					return fmt.Errorf("no client matching %q", args[0])
				}
				printClient(client)
				return nil
			}

			printLedger(clients, limit)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Show at most this many clients (0 = all)")

	return cmd
}

func printLedger(clients []model.Client, limit int) {
	fmt.Println(titleStyle.Render("🗂 Crediário ledger"))

	if len(clients) == 0 {
		fmt.Println(subtleStyle.Render("No clients with outstanding balance."))
		return
	}

	shown := clients
	if limit > 0 && limit < len(shown) {
		shown = shown[:limit]
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join([]string{
		headerStyle.Render("CLIENT"),
		headerStyle.Render("BALANCE"),
		headerStyle.Render("LAST PAYMENT"),
		headerStyle.Render("STATUS"),
	}, "\t"))

	var totalBalance float64
	overdue := 0
	for _, c := range clients {
		totalBalance += c.OutstandingBalance
		if c.Overdue60 {
			overdue++
		}
	}

	for _, c := range shown {
		balance := formatBRL(c.OutstandingBalance)
		if c.BalanceEstimated {
			balance += subtleStyle.Render(" (est.)")
		}

		status := successStyle.Render("ok")
		if c.Overdue60 {
			status = errorStyle.Render("overdue")
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			c.Name, balance, formatAging(c.DaysSinceLastPayment), status)
	}
	_ = w.Flush()

	fmt.Printf("\n  %s %d clients, %d overdue, %s outstanding\n",
		labelStyle.Render("Total"), len(clients), overdue, formatBRL(totalBalance))
}

func printClient(c *model.Client) {
	fmt.Println(titleStyle.Render("👤 " + c.Name))

	balance := formatBRL(c.OutstandingBalance)
	if c.BalanceEstimated {
		balance += warningStyle.Render(" (estimated)")
	}

	fmt.Printf("  %s %s\n", labelStyle.Render(fmt.Sprintf("%-16s", "Balance")), balance)
	fmt.Printf("  %s %s\n", labelStyle.Render(fmt.Sprintf("%-16s", "Total purchases")), formatBRL(c.TotalSales))
	fmt.Printf("  %s %s\n", labelStyle.Render(fmt.Sprintf("%-16s", "Last payment")), formatAging(c.DaysSinceLastPayment))
	if c.Overdue60 {
		fmt.Printf("  %s %s\n", labelStyle.Render(fmt.Sprintf("%-16s", "Status")), errorStyle.Render("overdue"))
	}

	if len(c.Purchases) > 0 {
		fmt.Println("\n" + labelStyle.Render("  Purchases"))
		for _, p := range c.Purchases {
			fmt.Printf("    %-12s %s\n", p.Date, formatBRL(p.Amount))
		}
	}

	if len(c.Payments) > 0 {
		fmt.Println("\n" + labelStyle.Render("  Payments"))
		for _, p := range c.Payments {
			fmt.Printf("    %-12s %s\n", p.Date, formatBRL(p.Amount))
		}
	}
}

func formatAging(days int) string {
	if days >= 999 {
		return errorStyle.Render("never")
	}
	return fmt.Sprintf("~%d days ago", days)
}

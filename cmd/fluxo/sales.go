package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rcfaria/fluxo/internal/model"
	"github.com/spf13/cobra"
)

func salesCmd() *cobra.Command {
	var top int
	var all bool

	cmd := &cobra.Command{
		Use:   "sales",
		Short: "Show the imported sales report summary",
		Long: `Summarize the last imported department sales report: total sales,
mean margins and the top departments by sales. With --all every
department is listed instead of the summary.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if all {
				slices, err := store.DepartmentSlices(ctx)
				if err != nil {
					return err
				}
				if len(slices) == 0 {
					fmt.Println(subtleStyle.Render("No sales report imported yet. Run 'fluxo import' first."))
					return nil
				}
				printDepartments(slices)
				return nil
			}

			summary, err := store.SalesSummary(ctx, top)
			if err != nil {
				return err
			}
			if summary.DepartmentCount == 0 {
				fmt.Println(subtleStyle.Render("No sales report imported yet. Run 'fluxo import' first."))
				return nil
			}

			fmt.Println(titleStyle.Render("🏷 Sales report"))
			fmt.Printf("  %s %s\n", labelStyle.Render(fmt.Sprintf("%-16s", "Total sales")), formatBRL(summary.TotalSales))
			fmt.Printf("  %s %d\n", labelStyle.Render(fmt.Sprintf("%-16s", "Departments")), summary.DepartmentCount)
			fmt.Printf("  %s %s\n", labelStyle.Render(fmt.Sprintf("%-16s", "Mean margin 24")), formatPercent(summary.MeanMargin24))
			fmt.Printf("  %s %s\n", labelStyle.Render(fmt.Sprintf("%-16s", "Mean margin 25")), formatPercent(summary.MeanMargin25))
			fmt.Printf("  %s %s\n", labelStyle.Render(fmt.Sprintf("%-16s", "Mean variation")), formatPercent(summary.MeanVariation))

			if len(summary.TopDepartments) == 0 {
				return nil
			}

			fmt.Println("\n" + labelStyle.Render("  Top departments"))
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, strings.Join([]string{
				headerStyle.Render("  DEPT"),
				headerStyle.Render("SALES"),
				headerStyle.Render("MARGIN 25"),
				headerStyle.Render("VARIATION"),
			}, "\t"))
			for _, d := range summary.TopDepartments {
				fmt.Fprintf(w, "  %d\t%s\t%s\t%s\n",
					d.Department, formatBRL(d.Sales), formatPercent(d.Margin25), formatPercent(d.VariationPct))
			}
			_ = w.Flush()

			return nil
		},
	}

	cmd.Flags().IntVar(&top, "top", 5, "How many departments to list")
	cmd.Flags().BoolVar(&all, "all", false, "List every department instead of the summary")

	return cmd
}

func printDepartments(slices []model.DepartmentSlice) {
	fmt.Println(titleStyle.Render("🏷 Departments"))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join([]string{
		headerStyle.Render("DEPT"),
		headerStyle.Render("SALES"),
		headerStyle.Render("MARGIN 24"),
		headerStyle.Render("MARGIN 25"),
		headerStyle.Render("VARIATION"),
	}, "\t"))
	for _, d := range slices {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			d.Department, formatBRL(d.Sales), formatPercent(d.Margin24),
			formatPercent(d.Margin25), formatPercent(d.VariationPct))
	}
	_ = w.Flush()
}

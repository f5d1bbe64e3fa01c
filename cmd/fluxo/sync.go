package main

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func syncCmd() *cobra.Command {
	var watch bool
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Refresh every month sheet and store the extracted records",
		Long: `Fetch all configured month sheets, bypassing the cache, extract their
cash-flow records and replace the stored sheet data wholesale. With
--watch the refresh repeats on a fixed interval until interrupted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := newEngine(ctx, true)
			if err != nil {
				return err
			}
			defer cleanup()

			runOnce := func() {
				sheets := monthSheets()
				bar := progressbar.NewOptions(len(sheets),
					progressbar.OptionSetWriter(os.Stderr),
					progressbar.OptionShowCount(),
					progressbar.OptionSetWidth(40),
					progressbar.OptionSetDescription("Syncing sheets..."),
					progressbar.OptionOnCompletion(func() {
						fmt.Fprintln(os.Stderr)
					}),
				)

				status, ok := eng.SyncAll(ctx, func(sheet string, _, _ int) {
					bar.Describe(fmt.Sprintf("Syncing %s...", sheet))
					_ = bar.Add(1)
				})
				if !ok {
					fmt.Println(warningStyle.Render("⚠ sync already running, request dropped"))
					return
				}

				if status.SheetsFail > 0 {
					fmt.Printf("%s %s\n", warningStyle.Render("⚠"), status.LastResult)
				} else {
					fmt.Printf("%s %s\n", successStyle.Render("✓"), status.LastResult)
				}
			}

			runOnce()

			if !watch {
				return nil
			}

			fmt.Println(subtleStyle.Render(fmt.Sprintf("Watching, refreshing every %s. Ctrl-C to stop.", interval)))
			eng.StartBackground(ctx, interval)
			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep syncing on a fixed interval")
	cmd.Flags().DurationVar(&interval, "interval", 30*time.Minute, "Refresh interval for --watch")

	return cmd
}

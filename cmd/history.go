package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/apidash/internal/logging"
)

var (
	historyLimit int
	historyPanel string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent panel fetches",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		store, database, err := openHistory(cmd.Context(), cfg, logging.Nop())
		if err != nil {
			return err
		}
		defer database.Close()

		entries, err := store.Recent(cmd.Context(), historyPanel, historyLimit)
		if err != nil {
			return fmt.Errorf("reading history: %w", err)
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No fetches recorded yet.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TIME\tPANEL\tSOURCE\tRESULT\tDURATION")
		for _, e := range entries {
			result := "ok"
			if !e.OK {
				result = e.Message
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%dms\n",
				e.CreatedAt.Local().Format(time.DateTime), e.Panel, e.Source, result, e.DurationMS)
		}
		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of fetches to show")
	historyCmd.Flags().StringVar(&historyPanel, "panel", "", "only show fetches of this panel")
	rootCmd.AddCommand(historyCmd)
}

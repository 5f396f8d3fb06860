package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/apidash/internal/logging"
)

var panelsCmd = &cobra.Command{
	Use:   "panels",
	Short: "List the available panels",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		registry, err := buildRegistry(cfg, logging.Nop())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tINPUTS")
		for _, p := range registry.List() {
			var inputs []string
			for _, in := range p.Inputs {
				switch {
				case in.Default != "":
					inputs = append(inputs, fmt.Sprintf("%s=%s", in.Name, in.Default))
				case in.Optional:
					inputs = append(inputs, "["+in.Name+"]")
				default:
					inputs = append(inputs, in.Name+" (required)")
				}
			}
			if len(inputs) == 0 {
				inputs = []string{"-"}
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", p.ID, p.Title, strings.Join(inputs, ", "))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(panelsCmd)
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"chartmeta/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the chart site, MusicBrainz and log path are usable",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			results := preflight.RunAll(cmd.Context(), cfg)
			rows := make([][]string, 0, len(results))
			for _, r := range results {
				status := "ok"
				if !r.Passed {
					status = "FAIL"
				}
				rows = append(rows, []string{r.Name, status, r.Detail})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Check", "Status", "Detail"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))

			if failed := preflight.Failed(results); failed > 0 {
				return fmt.Errorf("%d of %d checks failed", failed, len(results))
			}
			return nil
		},
	}
}

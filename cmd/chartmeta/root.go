package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var opts chartOptions

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:   "chartmeta",
		Short: "Show a week of the Billboard 200 with MusicBrainz track counts",
		Long: "chartmeta downloads the Billboard 200 for a given week, looks up each album\n" +
			"on MusicBrainz, and prints rank, title, artist, weeks on chart and track count.\n" +
			"Missing --date or --count values are read from stdin.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.countSet = cmd.Flags().Changed("count")
			return runChart(cmd, ctx, opts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.Flags().StringVar(&opts.date, "date", "", "Chart week as YYYY-MM-DD (prompted when omitted)")
	rootCmd.Flags().IntVar(&opts.count, "count", 0, "Number of entries to show, 1-200 (prompted when omitted)")
	rootCmd.Flags().BoolVar(&opts.noEnrich, "no-enrich", false, "Skip MusicBrainz track count lookup")
	rootCmd.Flags().BoolVar(&opts.json, "json", false, "Print rows as JSON instead of a table")

	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))

	return rootCmd
}

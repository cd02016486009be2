package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"chartmeta/internal/chart"
	"chartmeta/internal/config"
	"chartmeta/internal/enrichment"
	"chartmeta/internal/httpclient"
	"chartmeta/internal/logging"
	"chartmeta/internal/musicbrainz"
)

const (
	datePrompt  = "Week date (YYYY-MM-DD): "
	countPrompt = "How many entries (max 200): "
)

type chartOptions struct {
	date     string
	count    int
	countSet bool
	noEnrich bool
	json     bool
}

func runChart(cmd *cobra.Command, cc *commandContext, opts chartOptions) error {
	cfg, err := cc.ensureConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	base, logCloser, err := cc.newLogger(cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logCloser.Close()
	ctx, _ := logging.WithRunID(cmd.Context())
	logger := logging.WithContext(ctx, base)
	logger.Debug("run started",
		logging.String("config_path", cc.configPath),
		logging.Bool("config_found", cc.configSeen),
	)

	date, count, err := resolveChartInputs(cmd, cfg, opts)
	if err != nil {
		return err
	}

	chartClient, err := chart.New(cfg.Chart.BaseURL, chart.WithHTTPClient(httpclient.New(httpclient.Options{
		Timeout:            cfg.ChartTimeout(),
		UserAgent:          cfg.Chart.UserAgent,
		InsecureSkipVerify: cfg.Chart.InsecureSkipVerify,
	})))
	if err != nil {
		return fmt.Errorf("chart client: %w", err)
	}
	if cfg.Chart.InsecureSkipVerify {
		logger.Warn("TLS verification disabled for chart requests",
			logging.String(logging.FieldEventType, "tls_verification_disabled"),
			logging.String("url", cfg.Chart.BaseURL),
		)
	}

	rows, err := chartClient.Fetch(ctx, date, count)
	if err != nil {
		return fmt.Errorf("fetch chart: %w", err)
	}
	logger.Info("chart fetched",
		logging.String("date", date),
		logging.Int("requested", count),
		logging.Int("rows", len(rows)),
	)

	if opts.noEnrich || !cfg.MusicBrainz.Enabled {
		logger.Debug("enrichment skipped", logging.Bool("flag", opts.noEnrich), logging.Bool("enabled", cfg.MusicBrainz.Enabled))
	} else {
		pipeline, err := newEnrichmentPipeline(cfg, base)
		if err != nil {
			return err
		}
		rows, _ = pipeline.Enrich(ctx, rows)
	}

	if err := writeRows(cmd, rows, opts.json); err != nil {
		return err
	}
	return ctx.Err()
}

func newEnrichmentPipeline(cfg *config.Config, logger *slog.Logger) (*enrichment.Pipeline, error) {
	client, err := musicbrainz.New(cfg.MusicBrainz.BaseURL, cfg.MusicBrainzUserAgent(),
		musicbrainz.WithHTTPClient(httpclient.New(httpclient.Options{
			Timeout:   cfg.MusicBrainzTimeout(),
			UserAgent: cfg.MusicBrainzUserAgent(),
		})),
	)
	if err != nil {
		return nil, fmt.Errorf("musicbrainz client: %w", err)
	}
	thresholds := enrichment.Thresholds{
		Title:  cfg.Matching.TitleThreshold,
		Artist: cfg.Matching.ArtistThreshold,
	}
	resolver := enrichment.NewResolver(client, thresholds, logger)
	return enrichment.NewPipeline(resolver, client, cfg.MusicBrainz.Includes, logger), nil
}

func resolveChartInputs(cmd *cobra.Command, cfg *config.Config, opts chartOptions) (string, int, error) {
	p := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())

	date := opts.date
	if date == "" {
		answer, err := p.ask(datePrompt)
		if err != nil {
			return "", 0, err
		}
		date = answer
	}
	if err := chart.ValidateDate(date); err != nil {
		return "", 0, err
	}

	count := opts.count
	switch {
	case opts.countSet:
	case cfg.Chart.DefaultCount > 0:
		count = cfg.Chart.DefaultCount
	default:
		answer, err := p.ask(countPrompt)
		if err != nil {
			return "", 0, err
		}
		parsed, err := strconv.Atoi(answer)
		if err != nil {
			return "", 0, fmt.Errorf("count must be a whole number, got %q", answer)
		}
		count = parsed
	}
	if count < 1 || count > config.MaxCount() {
		return "", 0, fmt.Errorf("count must be between 1 and %d, got %d", config.MaxCount(), count)
	}
	return date, count, nil
}

func writeRows(cmd *cobra.Command, rows []chart.Row, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), renderChartTable(rows))
	return err
}

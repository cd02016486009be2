package enrichment

import (
	"context"
	"log/slog"
	"strconv"

	"chartmeta/internal/chart"
	"chartmeta/internal/logging"
	"chartmeta/internal/musicbrainz"
)

// DefaultIncludes requests disc and track data with each release lookup.
var DefaultIncludes = []string{"discids", "recordings"}

// Summary counts what happened during one Enrich call.
type Summary struct {
	Rows     int `json:"rows"`
	Resolved int `json:"resolved"`
	Enriched int `json:"enriched"`
	Skipped  int `json:"skipped"`
}

// Pipeline resolves each chart row and copies in its track count.
type Pipeline struct {
	resolver ReleaseResolver
	details  musicbrainz.ReleaseGetter
	includes []string
	logger   *slog.Logger
}

// NewPipeline wires a resolver and a release lookup. Empty includes fall back
// to DefaultIncludes.
func NewPipeline(resolver ReleaseResolver, details musicbrainz.ReleaseGetter, includes []string, logger *slog.Logger) *Pipeline {
	if len(includes) == 0 {
		includes = DefaultIncludes
	}
	return &Pipeline{
		resolver: resolver,
		details:  details,
		includes: append([]string(nil), includes...),
		logger:   logging.NewComponentLogger(logger, "enrichment"),
	}
}

// Enrich annotates rows in place, in order, and returns them with a summary.
// Rows that cannot be resolved or whose detail lacks a track count are left
// unchanged. Cancellation stops the loop; remaining rows count as skipped.
func (p *Pipeline) Enrich(ctx context.Context, rows []chart.Row) ([]chart.Row, Summary) {
	logger := logging.WithContext(ctx, p.logger)
	summary := Summary{Rows: len(rows)}

	for i := range rows {
		if err := ctx.Err(); err != nil {
			summary.Skipped += len(rows) - i
			logger.Warn("enrichment interrupted",
				logging.String(logging.FieldEventType, "enrichment_cancelled"),
				logging.Int("remaining", len(rows)-i),
				logging.Error(err),
			)
			break
		}

		row := &rows[i]
		ref, ok := p.resolver.Resolve(ctx, row.Artist, row.Title)
		if !ok {
			summary.Skipped++
			continue
		}
		summary.Resolved++

		if p.enrichRow(ctx, logger, row, ref) {
			summary.Enriched++
		}
	}

	logger.Info("enrichment complete",
		logging.Int("rows", summary.Rows),
		logging.Int("resolved", summary.Resolved),
		logging.Int("enriched", summary.Enriched),
		logging.Int("skipped", summary.Skipped),
	)
	return rows, summary
}

func (p *Pipeline) enrichRow(ctx context.Context, logger *slog.Logger, row *chart.Row, ref ReleaseRef) bool {
	if p.details == nil {
		return false
	}
	detail, err := p.details.GetRelease(ctx, string(ref), p.includes...)
	if err != nil {
		logger.Warn("release lookup failed",
			logging.String(logging.FieldEventType, "release_lookup_failed"),
			logging.String("rank", row.Rank),
			logging.String("title", row.Title),
			logging.String("release_id", string(ref)),
			logging.Error(err),
		)
		return false
	}

	count, ok := detail.FirstTrackCount()
	if !ok {
		logger.Debug("release has no track count",
			logging.String("rank", row.Rank),
			logging.String("release_id", string(ref)),
		)
		return false
	}
	row.TrackCount = strconv.Itoa(count)
	return true
}

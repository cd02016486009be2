package enrichment

import (
	"context"
	"log/slog"
	"strings"

	"chartmeta/internal/logging"
	"chartmeta/internal/musicbrainz"
)

// ReleaseRef identifies a resolved release (a MusicBrainz MBID).
type ReleaseRef string

// ReleaseResolver maps an artist and title to a release.
type ReleaseResolver interface {
	Resolve(ctx context.Context, artist, title string) (ReleaseRef, bool)
}

// Resolver finds releases through a MusicBrainz search.
type Resolver struct {
	searcher   musicbrainz.Searcher
	thresholds Thresholds
	logger     *slog.Logger
}

var _ ReleaseResolver = (*Resolver)(nil)

// NewResolver builds a Resolver. A nil logger discards output.
func NewResolver(searcher musicbrainz.Searcher, thresholds Thresholds, logger *slog.Logger) *Resolver {
	return &Resolver{
		searcher:   searcher,
		thresholds: thresholds,
		logger:     logging.NewComponentLogger(logger, "resolver"),
	}
}

// Resolve searches for "title artist" and returns the first acceptable
// candidate. Search failures and empty results are reported as absence.
func (r *Resolver) Resolve(ctx context.Context, artist, title string) (ReleaseRef, bool) {
	logger := logging.WithContext(ctx, r.logger)
	if r.searcher == nil {
		return "", false
	}

	query := title + " " + artist
	if strings.TrimSpace(query) == "" {
		return "", false
	}

	resp, err := r.searcher.SearchReleases(ctx, query)
	if err != nil {
		logger.Warn("release search failed",
			logging.String(logging.FieldEventType, "release_search_failed"),
			logging.String("title", title),
			logging.String("artist", artist),
			logging.Error(err),
		)
		return "", false
	}
	if resp == nil || len(resp.Releases) == 0 {
		logger.Debug("release search returned no candidates",
			logging.String("title", title),
			logging.String("artist", artist),
		)
		return "", false
	}

	release, score, ok := Match(resp.Releases, artist, title, r.thresholds)
	if !ok {
		logger.Debug("no release candidate accepted",
			logging.String("title", title),
			logging.String("artist", artist),
			logging.Int("candidates", len(resp.Releases)),
		)
		return "", false
	}
	if strings.TrimSpace(release.ID) == "" {
		logger.Warn("accepted release has no id",
			logging.String(logging.FieldEventType, "release_missing_id"),
			logging.String("title", title),
		)
		return "", false
	}

	logger.Debug("release matched",
		logging.String("title", title),
		logging.String("artist", artist),
		logging.String("release_id", release.ID),
		logging.String("release_title", release.Title),
		logging.Float64("title_score", score.Title),
		logging.Float64("artist_score", score.Artist),
	)
	return ReleaseRef(release.ID), true
}

package enrichment

import (
	"chartmeta/internal/musicbrainz"
	"chartmeta/internal/textutil"
)

// Thresholds are the exclusive lower bounds a candidate must exceed.
type Thresholds struct {
	Title  float64
	Artist float64
}

// DefaultThresholds returns the stock title and artist bounds.
func DefaultThresholds() Thresholds {
	return Thresholds{Title: 0.5, Artist: 0.3}
}

// Score records how a candidate compared against the requested row.
type Score struct {
	Title  float64
	Artist float64
	// Names is the number of credited name sets considered; zero means the
	// artist check was skipped.
	Names int
}

// Accepted reports whether the score clears both thresholds.
func (s Score) Accepted(th Thresholds) bool {
	if s.Title <= th.Title {
		return false
	}
	return s.Names == 0 || s.Artist > th.Artist
}

// creditedNames collects one normalized set per credited artist name and
// alias. Credits without an artist entity contribute nothing.
func creditedNames(credits []musicbrainz.ArtistCredit) []textutil.TokenSet {
	var names []textutil.TokenSet
	for _, credit := range credits {
		if credit.Artist == nil {
			continue
		}
		names = append(names, textutil.Normalize(credit.Artist.Name))
		for _, alias := range credit.Artist.Aliases {
			names = append(names, textutil.Normalize(alias.AliasName()))
		}
	}
	return names
}

// scoreCandidate compares a release against pre-normalized input sets. The
// artist score is the best score over all credited names.
func scoreCandidate(release musicbrainz.Release, title, artist textutil.TokenSet) Score {
	score := Score{Title: textutil.Jaccard(textutil.Normalize(release.Title), title)}
	names := creditedNames(release.ArtistCredit)
	score.Names = len(names)
	for _, name := range names {
		if sim := textutil.Jaccard(name, artist); sim > score.Artist {
			score.Artist = sim
		}
	}
	return score
}

// Match returns the first candidate, in the given order, accepted under th.
func Match(candidates []musicbrainz.Release, artist, title string, th Thresholds) (musicbrainz.Release, Score, bool) {
	inArtist := textutil.Normalize(artist)
	inTitle := textutil.Normalize(title)
	for _, candidate := range candidates {
		score := scoreCandidate(candidate, inTitle, inArtist)
		if score.Accepted(th) {
			return candidate, score, true
		}
	}
	return musicbrainz.Release{}, Score{}, false
}

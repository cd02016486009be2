// Package musicbrainz is a small client for the MusicBrainz web service (v2,
// JSON). It covers release search and release lookup, which is all the
// enrichment pipeline needs to read track counts.
//
// MusicBrainz rejects anonymous traffic, so every request carries the
// User-Agent supplied to New.
package musicbrainz

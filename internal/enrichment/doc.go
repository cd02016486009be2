// Package enrichment adds MusicBrainz track counts to chart rows.
//
// Resolver turns an (artist, title) pair into a release reference by running
// a release search and scoring each candidate with Jaccard similarity over
// normalized token sets. The first candidate whose title clears the title
// threshold and whose credited names (or aliases) clear the artist threshold
// wins. Pipeline walks rows in order, resolves each one, fetches the release
// detail and copies the first medium's track count into the row.
//
// Lookup failures never abort a run; the affected row keeps an empty track
// count and the failure is logged.
package enrichment

// Package textutil provides the text normalization and set-similarity helpers
// used to match chart entries against metadata catalog results.
//
// The primary use cases are:
//   - Reducing display strings to comparable token sets (accents and
//     punctuation stripped, lowercased, split on whitespace)
//   - Computing Jaccard similarity between two token sets
//   - Collapsing the whitespace that surrounds scraped text nodes
//
// Normalization decomposes text canonically and drops combining marks, so
// "Beyoncé" and "Beyonce" produce the same tokens.
package textutil

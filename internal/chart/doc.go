// Package chart fetches a weekly Billboard 200 listing and extracts its rows.
//
// Client downloads the chart page for a given week and hands the markup to
// Parse, which walks the chart list elements with goquery and reads title,
// artist, rank and weeks-on-chart for each entry. Rows are returned in page
// order and truncated to the requested count. Any fetch or markup failure is
// returned to the caller unchanged in kind; there is no partial result.
package chart

// Package preflight provides readiness checks for the services and paths
// chartmeta depends on.
//
// The "chartmeta check" command runs RunAll and renders the results. Each
// check is gated by its config toggle; disabled features are skipped.
package preflight

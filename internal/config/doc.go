// Package config loads, normalizes, and validates chartmeta configuration.
//
// It supplies defaults, reads an optional TOML file, picks up a .env file from
// the working directory, and applies CHARTMETA_* environment overrides. Always
// obtain settings through Load so the chart and MusicBrainz clients receive
// trimmed URLs, positive timeouts, and thresholds inside [0,1].
package config

// Package main hosts the chartmeta CLI entrypoint and command graph.
//
// The root command downloads one week of the Billboard 200, optionally adds
// MusicBrainz track counts, and prints the rows as a table or JSON. The config
// subcommands scaffold, validate and display the TOML configuration.
//
// Keep this package lean: behavior lives in the internal packages and is only
// wired together here.
package main

// Package cmd implements the slab subcommands.
//
// Every command that reads a template embeds [Input]. A template document may
// hold its template and sample data in slk-template and slk-previewdata
// regions; see package section.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"
)

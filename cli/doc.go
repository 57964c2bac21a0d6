// Package cli contains the command line interface for slab.
//
// Compile is the default command, so a bare invocation renders a template
// from stdin to stdout:
//
//	slab < page.html > out.html
//	slab compile -t page.html -d data.yaml -o out.html
//	slab dev -t page.html --addr 127.0.0.1:3030
//	slab tree -t page.html -f yaml
//	slab query -t page.html 'len(items)'
//	slab repl -t page.html
//	slab init
//
// # Configuration
//
// Flags may be set in ~/.config/slab/config (YAML) or config.json beside
// it. Nested YAML mappings join keys with hyphens, so a "log" mapping with
// a "level" key sets --log-level. Command-line flags take precedence.
// The init command writes the current settings to the YAML file.
//
// # Logging Options
//
//   - --log-level: minimum level (trace, debug, info, warn, error)
//   - --log-format: output format (json, text)
//   - --log-time-layout: timestamp layout (RFC3339, Kitchen, none, ...)
//   - --[no-]log-caller: include source location
//   - --[no-]log-pretty: colorize output on terminals
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: enable a profile (allocs, block, clock, cpu, ...)
//   - --pprof-dir: output directory (default ~/.cache/slab/pprof)
package cli

// Package profile wraps [github.com/pkg/profile] for optional runtime
// profiling of slab.
//
// Profiling is compiled in only with the "pprof" build tag. Without it,
// [Modes] is empty and [Profiler.Start] returns a no-op stopper.
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/slab"}
//	defer p.Start().Stop()
//
// Profiles are written to Path with names matching the mode (cpu.pprof,
// mem.pprof, ...) and analyzed with "go tool pprof". With the tag enabled the
// package also registers the [net/http/pprof] handlers on
// [net/http.DefaultServeMux].
package profile

// Tag is the build tag required to enable profiling.
const Tag = `pprof`

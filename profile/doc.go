// Package profile provides optional runtime profiling for the translator.
//
// Profiling integrates [github.com/pkg/profile] and must be enabled at
// build time with the "pprof" build tag. Without the tag every operation
// is a no-op with zero overhead, so callers never need to guard their
// Start/Stop calls.
//
// With the tag, the translate and fmt commands accept --pprof-mode and
// --pprof-dir flags. Profile files are written to the chosen directory
// with names matching the mode (cpu.pprof, mem.pprof, and so on) and can
// be inspected with:
//
//	go tool pprof ./yconf <dir>/cpu.pprof
package profile

// Tag is the build tag required to enable profiling.
const Tag = `pprof`

// Package cli implements the command-line interface of the translator.
//
// The interface is declared as a [kong] grammar: one struct per command,
// with flags grouped into logging and profiling sections shared by all
// commands. Logger flags take effect while the command line is still
// being parsed, so parse errors are already reported in the requested
// format and level.
//
// [kong]: https://github.com/alecthomas/kong
package cli

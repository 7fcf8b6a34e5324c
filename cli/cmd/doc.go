// Package cmd implements the yconf subcommands.
//
// Every command reads configuration language source from the files named
// on the command line, or from stdin when none are given (or when "-" is
// named), runs it through the translation pipeline, and writes the
// rendered document to stdout.
package cmd

// Package shell runs external tools through the mvdan.cc/sh interpreter and
// records the outcome of every invocation as a Result.
// Commands are built as shell syntax trees so that the exact same command line
// can be printed for dry runs and log output.
package shell

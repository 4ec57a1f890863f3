// Package cli provides shared terminal output for the command-line
// tools: prefixed progress lines and end-of-run summary tables, with
// styling gated on whether stdout is a terminal.
package cli

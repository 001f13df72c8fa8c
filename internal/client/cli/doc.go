// Package cli implements the interactive Revume client: a REPL over the
// session, collection and editor layers. Commands print their own results and
// errors; the loop itself never terminates on a failed command.
package cli

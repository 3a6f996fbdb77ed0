package cmd

import (
	"fmt"
	"os"
)

// osExit is indirected so command tests can capture exit codes instead of
// killing the test process.
var osExit = os.Exit

// exitWith reports the failure on stderr and terminates with the given code.
func exitWith(code int, msg string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n%v\n", msg, err)
	} else if msg != "" {
		fmt.Fprintln(os.Stderr, msg)
	}

	osExit(code)
}

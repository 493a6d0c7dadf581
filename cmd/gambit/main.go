// Command gambit calls the Gambit Tools API from the command line.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newCLI().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// Package main provides the numgo command line tool: quick inspection
// and summary statistics for delimited data files.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "numgo:", err)
		os.Exit(1)
	}
}

// Package main starts the telemetry agent
package main

import (
	"fmt"
	"os"
)

var buildVersion, buildDate, buildCommit string = "N/A", "N/A", "N/A"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

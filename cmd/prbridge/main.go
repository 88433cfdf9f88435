// Package main is the entry point for prbridge.
package main

import (
	"fmt"
	"os"

	"github.com/prbridge/prbridge/cmd/prbridge/cmd"
)

// Version information (set by ldflags during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cmd.SetVersionInfo(Version, BuildTime, GitCommit)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

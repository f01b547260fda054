// Package main is the entry point for the lulc CLI.
package main

import (
	"os"

	"github.com/Jade2451/LULC-ISA/cmd/lulc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

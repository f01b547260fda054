// Package cmd provides the CLI commands for lulc.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Jade2451/LULC-ISA/internal/config"
	"github.com/Jade2451/LULC-ISA/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "lulc",
	Short: "Land-cover classification over a remote geospatial compute service",
	Long: `lulc orchestrates a remote geospatial compute service to produce a
land-cover classification map from a declarative job file.

Scene filtering, compositing, index computation and the Random Forest
classifier run on the service; lulc evaluates the cloud mask, aggregates
per-class areas and renders the report.

Examples:
  lulc classify job.hcl
  lulc classify --format json job.hcl
  lulc report 7d41b0e2-...`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.lulc/config.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("lulc version 0.1.0")
	},
}

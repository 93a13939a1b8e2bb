// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the emzconv CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the emzconv CLI.
var rootCmd = &cobra.Command{
	Use:   "emzconv",
	Short: "Batch-convert compressed Windows metafiles (.emz) to raster images",
	Long: `emzconv converts folders of compressed Enhanced Metafile images (.emz)
into a raster format such as PNG. Each .emz is relabeled as .wmf into a
transient staging directory and decoded with an installed imaging tool
(ImageMagick or Inkscape). Files that fail decoding are listed in a CSV
report; every run is recorded in a local history database.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./emzconv.yaml or ~/.config/emzconv/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("emzconv")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "emzconv"))
		}
	}

	viper.SetEnvPrefix("EMZCONV")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

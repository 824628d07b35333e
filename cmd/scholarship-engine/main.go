// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the scholarship-engine CLI.
// Subcommands cover the pipeline stages: dataset management, clustering,
// cluster-count recommendation, and run inspection.
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

// rootCmd is the base command for the scholarship-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "scholarship-engine",
	Short: "Cluster and explore scholarship data",
	Long: `scholarship-engine groups scholarship records into explorable clusters.
It loads records from data files or a local SQLite store, builds numeric
features from amounts, categories, demographics, GPA requirements, and
deadlines, and partitions them with k-means, hierarchical, or DBSCAN
clustering.

Each stage is a subcommand: dataset manages records, cluster runs a
partition, recommend suggests a cluster count, and runs lists saved runs.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./scholarship-engine.yaml or ~/.config/scholarship-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("scholarship-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "scholarship-engine"))
		}
	}

	viper.SetDefault("store.data_dir", "data")
	viper.SetDefault("cluster.seed", 42)
	viper.SetDefault("cluster.method", "kmeans")
	viper.SetDefault("cluster.clusters", 5)
	viper.SetDefault("cluster.features", []string{"amount", "category", "demographics"})

	viper.SetEnvPrefix("SCHOLARSHIP_ENGINE")
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

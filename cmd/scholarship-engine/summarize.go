// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scholarship-engine/pkg/types"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Print descriptive statistics for a scholarship dataset",
	Long: `Summarize reports amount, GPA, category, demographic, and deadline
statistics over the whole dataset, without clustering it first.`,
	RunE: runSummarize,
}

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project clustered scholarships onto two dimensions",
	Long: `Project clusters the records, reduces the feature matrix to its two
principal components, and writes the resulting chart payload as JSON.
It needs at least two feature columns.`,
	RunE: runProject,
}

func init() {
	for _, cmd := range []*cobra.Command{summarizeCmd, projectCmd} {
		cmd.Flags().String("input", "", "dataset file (.yaml or .json)")
		cmd.Flags().Bool("sample", false, "use the built-in sample dataset")
		cmd.Flags().String("category", "", "when loading from the store, filter by category")
	}
	summarizeCmd.Flags().Bool("json", false, "output as JSON")

	projectCmd.Flags().StringSlice("features", nil, "features to cluster on: amount, gpa_requirement, category, demographics, deadline")
	projectCmd.Flags().String("method", "", "clustering method: kmeans, hierarchical, dbscan")
	projectCmd.Flags().Int("clusters", 0, "cluster count (kmeans and hierarchical)")

	rootCmd.AddCommand(summarizeCmd)
	rootCmd.AddCommand(projectCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	records, err := loadRecords(cmd)
	if err != nil {
		return err
	}

	summary := newEngine().Summarize(records)

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	printSummary("All scholarships", summary)
	return nil
}

func runProject(cmd *cobra.Command, args []string) error {
	records, err := loadRecords(cmd)
	if err != nil {
		return err
	}

	method := types.Method(flagOrConfig(cmd, "method", "cluster.method"))
	clusters, _ := cmd.Flags().GetInt("clusters")
	if clusters == 0 && method.RequiresClusterCount() {
		clusters = viper.GetInt("cluster.clusters")
	}
	features, err := selectedFeatures(cmd)
	if err != nil {
		return err
	}

	engine := newEngine()
	result, err := engine.Cluster(records, method, clusters, features)
	if err != nil {
		return err
	}
	if result == nil {
		fmt.Fprintln(os.Stderr, "No scholarships to project.")
		return nil
	}

	projection := engine.Project(result)
	if projection == nil {
		return fmt.Errorf("projection needs at least two feature columns; got fewer from features %v", features)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(projection)
}

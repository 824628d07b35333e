// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scholarship-engine/internal/cluster"
	"github.com/pdiddy/scholarship-engine/internal/dataset"
	"github.com/pdiddy/scholarship-engine/internal/store"
	"github.com/pdiddy/scholarship-engine/pkg/types"
)

var clusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "Group scholarships into clusters",
	Long: `Cluster builds a numeric feature matrix from the selected features and
partitions the records with the chosen algorithm. Records come from a data
file (--input), the built-in sample set (--sample), or the local store.

kmeans and hierarchical need --clusters; dbscan derives the cluster count
from density and labels outliers -1.`,
	RunE: runCluster,
}

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend a cluster count by silhouette analysis",
	Long: `Recommend runs k-means for every candidate cluster count from 2 up to
min(10, n/2) and reports the count with the best silhouette score. Inputs
with fewer than 4 records get the fixed default of 2.`,
	RunE: runRecommend,
}

func init() {
	for _, cmd := range []*cobra.Command{clusterCmd, recommendCmd} {
		cmd.Flags().String("input", "", "dataset file (.yaml or .json)")
		cmd.Flags().Bool("sample", false, "use the built-in sample dataset")
		cmd.Flags().String("category", "", "when loading from the store, filter by category")
		cmd.Flags().StringSlice("features", nil, "features to cluster on: amount, gpa_requirement, category, demographics, deadline")
		cmd.Flags().Bool("json", false, "output as JSON")
	}

	clusterCmd.Flags().String("method", "", "clustering method: kmeans, hierarchical, dbscan")
	clusterCmd.Flags().Int("clusters", 0, "cluster count (kmeans and hierarchical)")
	clusterCmd.Flags().Bool("summaries", false, "print per-cluster summaries")
	clusterCmd.Flags().Bool("project", false, "include a 2D PCA projection in JSON output")
	clusterCmd.Flags().Bool("save", false, "save the run to the store")

	rootCmd.AddCommand(clusterCmd)
	rootCmd.AddCommand(recommendCmd)
}

func runCluster(cmd *cobra.Command, args []string) error {
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
		fmt.Fprintln(os.Stderr, "No scholarships to cluster.")
		return nil
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()
		id, err := s.SaveRun(context.Background(), result.Info, result.Records)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved run %d\n", id)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	withSummaries, _ := cmd.Flags().GetBool("summaries")
	withProjection, _ := cmd.Flags().GetBool("project")

	if jsonOutput {
		payload := struct {
			Info      types.RunInfo                `json:"info"`
			Records   []types.ClusteredScholarship `json:"records"`
			Summaries map[int]types.ClusterSummary `json:"summaries,omitempty"`
			Project   *types.Projection            `json:"projection,omitempty"`
		}{Info: result.Info, Records: result.Records}
		if withSummaries {
			payload.Summaries = engine.SummarizeClusters(result)
		}
		if withProjection {
			payload.Project = engine.Project(result)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}

	printRunInfo(result.Info)
	if withSummaries {
		printSummaries(engine.SummarizeClusters(result))
	}
	return nil
}

func runRecommend(cmd *cobra.Command, args []string) error {
	records, err := loadRecords(cmd)
	if err != nil {
		return err
	}
	features, err := selectedFeatures(cmd)
	if err != nil {
		return err
	}

	rec := newEngine().Recommend(records, features)

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}

	fmt.Printf("Recommended clusters: %d (%s)\n", rec.Clusters, rec.Basis)
	if len(rec.Scores) > 0 {
		counts := make([]int, 0, len(rec.Scores))
		for k := range rec.Scores {
			counts = append(counts, k)
		}
		sort.Ints(counts)
		for _, k := range counts {
			fmt.Printf("  k=%-2d  silhouette %.4f\n", k, rec.Scores[k])
		}
	}
	return nil
}

// --- shared helpers ---

// newEngine builds a clustering engine from config.
func newEngine() *cluster.Engine {
	return cluster.NewSeeded(viper.GetInt64("cluster.seed"))
}

// openStore opens the SQLite store from config.
func openStore() (*store.Store, error) {
	return store.NewStore(types.StoreConfig{
		DataDir:    viper.GetString("store.data_dir"),
		MaxResults: viper.GetInt("store.max_results"),
	})
}

// loadRecords resolves the record source: --input file, --sample, or the
// local store (optionally filtered by --category).
func loadRecords(cmd *cobra.Command) ([]types.Scholarship, error) {
	input, _ := cmd.Flags().GetString("input")
	sample, _ := cmd.Flags().GetBool("sample")

	switch {
	case input != "" && sample:
		return nil, fmt.Errorf("--input and --sample are mutually exclusive")
	case input != "":
		return dataset.Load(input)
	case sample:
		return dataset.Sample(), nil
	}

	s, err := openStore()
	if err != nil {
		return nil, err
	}
	defer s.Close()

	category, _ := cmd.Flags().GetString("category")
	return s.List(context.Background(), store.ListOptions{Category: category})
}

// selectedFeatures parses --features, falling back to the configured
// default selection.
func selectedFeatures(cmd *cobra.Command) ([]types.Feature, error) {
	names, _ := cmd.Flags().GetStringSlice("features")
	if len(names) == 0 {
		names = viper.GetStringSlice("cluster.features")
	}

	valid := make(map[types.Feature]bool, len(types.AllFeatures))
	for _, f := range types.AllFeatures {
		valid[f] = true
	}

	features := make([]types.Feature, 0, len(names))
	for _, name := range names {
		f := types.Feature(strings.ToLower(strings.TrimSpace(name)))
		if !valid[f] {
			return nil, fmt.Errorf("unknown feature %q: use amount, gpa_requirement, category, demographics, or deadline", name)
		}
		features = append(features, f)
	}
	return features, nil
}

// flagOrConfig returns the flag value when set, otherwise the config value.
func flagOrConfig(cmd *cobra.Command, flag, key string) string {
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		return v
	}
	return viper.GetString(key)
}

func printRunInfo(info types.RunInfo) {
	fmt.Printf("Method:       %s\n", info.Method)
	fmt.Printf("Scholarships: %d\n", info.Scholarships)
	fmt.Printf("Clusters:     %d\n", info.Clusters)
	fmt.Printf("Silhouette:   %.4f\n", info.Silhouette)
	if info.Method == types.MethodKMeans {
		fmt.Printf("Inertia:      %.4f\n", info.Inertia)
	}
	if info.Method == types.MethodDBSCAN {
		fmt.Printf("Eps:          %.4f\n", info.Eps)
		fmt.Printf("Noise points: %d\n", info.NoisePoints)
	}
}

func printSummaries(summaries map[int]types.ClusterSummary) {
	labels := make([]int, 0, len(summaries))
	for label := range summaries {
		labels = append(labels, label)
	}
	sort.Ints(labels)

	for _, label := range labels {
		name := fmt.Sprintf("Cluster %d", label)
		if label == -1 {
			name = "Noise"
		}
		printSummary(name, summaries[label])
	}
}

func printSummary(name string, s types.ClusterSummary) {
	fmt.Printf("\n%s (%d scholarships)\n", name, s.Size)
	fmt.Printf("  Amount:     avg $%.0f, range $%.0f-$%.0f, total $%.0f\n",
		s.AvgAmount, s.MinAmount, s.MaxAmount, s.TotalAmount)
	fmt.Printf("  GPA:        avg %.2f, range %.2f-%.2f\n", s.AvgGPA, s.MinGPA, s.MaxGPA)
	fmt.Printf("  Category:   %s\n", s.TopCategory)
	if len(s.TopDemographics) > 0 {
		parts := make([]string, len(s.TopDemographics))
		for i, d := range s.TopDemographics {
			parts[i] = fmt.Sprintf("%s (%d)", d.Label, d.Count)
		}
		fmt.Printf("  Targets:    %s\n", strings.Join(parts, ", "))
	}
	if s.AvgDaysToDeadline != nil {
		fmt.Printf("  Deadlines:  avg %.0f days out, %d due within 30 days\n",
			*s.AvgDaysToDeadline, s.UrgentDeadlines)
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholarship-engine/internal/dataset"
	"github.com/pdiddy/scholarship-engine/internal/store"
	"github.com/pdiddy/scholarship-engine/pkg/types"
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Manage scholarship records (import, export, sample, list)",
	Long: `Dataset manages the local scholarship store. Use subcommands to import
records from a file, export the store to a dataset file, write the built-in
sample set, or list stored records.`,
}

// --- import subcommand ---

var datasetImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import scholarship records into the store",
	Long: `Import reads a YAML or JSON dataset file, validates each record, and
upserts them into the SQLite store. Records without IDs get generated ones.
With --sample, the built-in sample set is imported instead of a file.`,
	RunE: runDatasetImport,
}

func runDatasetImport(cmd *cobra.Command, args []string) error {
	sample, _ := cmd.Flags().GetBool("sample")

	var records []types.Scholarship
	switch {
	case sample && len(args) > 0:
		return fmt.Errorf("provide a file or --sample, not both")
	case sample:
		records = dataset.Sample()
	case len(args) == 1:
		var err error
		records, err = dataset.Load(args[0])
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("dataset file required (or --sample)")
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	summary, err := s.Import(context.Background(), records, os.Stdout)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d record(s): %d added, %d updated, %d failed\n",
		summary.Total(), summary.Added, summary.Updated, summary.Failed)
	if summary.Failed > 0 {
		return fmt.Errorf("%d record(s) failed import", summary.Failed)
	}
	return nil
}

// --- export subcommand ---

var datasetExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored scholarships to YAML or JSON",
	RunE:  runDatasetExport,
}

func runDatasetExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	category, _ := cmd.Flags().GetString("category")

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	opts := store.ListOptions{Category: category}

	var path string
	switch format {
	case "yaml", "":
		path, err = s.ExportYAML(context.Background(), opts)
	case "json":
		path, err = s.ExportJSON(context.Background(), opts)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	fmt.Println("Exported to", path)
	return nil
}

// --- sample subcommand ---

var datasetSampleCmd = &cobra.Command{
	Use:   "sample [file]",
	Short: "Write the built-in sample dataset to a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := dataset.Write(args[0], dataset.Sample()); err != nil {
			return err
		}
		fmt.Printf("Wrote %d sample record(s) to %s\n", len(dataset.Sample()), args[0])
		return nil
	},
}

// --- list subcommand ---

var datasetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored scholarships",
	RunE:  runDatasetList,
}

func runDatasetList(cmd *cobra.Command, args []string) error {
	category, _ := cmd.Flags().GetString("category")
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	records, err := s.List(context.Background(), store.ListOptions{
		Category:   category,
		MaxResults: limit,
	})
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Println("No scholarships stored.")
		return nil
	}

	fmt.Printf("%-40s  %10s  %-16s  %4s  %s\n", "Title", "Amount", "Category", "GPA", "Deadline")
	for _, r := range records {
		title := r.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		category := r.Category
		if len(category) > 16 {
			category = category[:13] + "..."
		}
		fmt.Printf("%-40s  %10.0f  %-16s  %4.1f  %s\n",
			title, r.Amount, category, r.GPARequirement, r.Deadline)
	}
	fmt.Printf("\n%d scholarship(s)\n", len(records))
	return nil
}

// --- runs subcommand ---

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List saved clustering runs",
	RunE:  runRuns,
}

func runRuns(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	runs, err := s.ListRuns(context.Background())
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No saved runs.")
		return nil
	}

	fmt.Printf("%-4s  %-12s  %-8s  %-10s  %s\n", "ID", "Method", "Clusters", "Silhouette", "Created")
	for _, run := range runs {
		fmt.Printf("%-4d  %-12s  %-8d  %-10.4f  %s\n",
			run.ID, run.Info.Method, run.Info.Clusters, run.Info.Silhouette,
			run.CreatedAt.Format(time.RFC3339))
	}
	return nil
}

func init() {
	datasetImportCmd.Flags().Bool("sample", false, "import the built-in sample dataset")

	datasetExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	datasetExportCmd.Flags().String("category", "", "export only one category")

	datasetListCmd.Flags().String("category", "", "filter by category")
	datasetListCmd.Flags().Int("limit", 0, "maximum records to list")
	datasetListCmd.Flags().Bool("json", false, "output as JSON")

	runsCmd.Flags().Bool("json", false, "output as JSON")

	datasetCmd.AddCommand(datasetImportCmd)
	datasetCmd.AddCommand(datasetExportCmd)
	datasetCmd.AddCommand(datasetSampleCmd)
	datasetCmd.AddCommand(datasetListCmd)

	rootCmd.AddCommand(datasetCmd)
	rootCmd.AddCommand(runsCmd)
}

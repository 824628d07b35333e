// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DatasetConfig holds settings for the dataset boundary.
type DatasetConfig struct {
	// DataDir is the base directory for scholarship data files.
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// StoreConfig holds settings for the SQLite store.
type StoreConfig struct {
	// DataDir is the base directory for the store (contains index/).
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// MaxResults is the default maximum number of list results (default 100).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// ClusterConfig holds settings for the clustering stage.
type ClusterConfig struct {
	// Seed is the random seed for k-means initialization (default 42).
	Seed int64 `json:"seed" yaml:"seed"`

	// Method is the default clustering algorithm.
	Method Method `json:"method" yaml:"method"`

	// Clusters is the default cluster count for methods that need one.
	Clusters int `json:"clusters" yaml:"clusters"`

	// Features lists the default feature selection.
	Features []Feature `json:"features" yaml:"features"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Dataset DatasetConfig `json:"dataset" yaml:"dataset"`
	Store   StoreConfig   `json:"store" yaml:"store"`
	Cluster ClusterConfig `json:"cluster" yaml:"cluster"`
}

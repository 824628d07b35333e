// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Method identifies a clustering algorithm.
type Method string

const (
	MethodKMeans       Method = "kmeans"
	MethodHierarchical Method = "hierarchical"
	MethodDBSCAN       Method = "dbscan"
)

// RequiresClusterCount reports whether the method needs an explicit cluster
// count. DBSCAN derives its cluster count from density.
func (m Method) RequiresClusterCount() bool {
	return m == MethodKMeans || m == MethodHierarchical
}

// Feature identifies one clusterable dimension of a scholarship record.
type Feature string

const (
	FeatureAmount       Feature = "amount"
	FeatureGPA          Feature = "gpa_requirement"
	FeatureCategory     Feature = "category"
	FeatureDemographics Feature = "demographics"
	FeatureDeadline     Feature = "deadline"
)

// AllFeatures lists every feature in matrix column order.
var AllFeatures = []Feature{
	FeatureAmount,
	FeatureGPA,
	FeatureCategory,
	FeatureDemographics,
	FeatureDeadline,
}

// RunInfo records the parameters and quality metrics of one clustering run.
// Immutable after the run completes.
type RunInfo struct {
	// Method is the algorithm that produced the run.
	Method Method `json:"method" yaml:"method"`

	// Features lists the features used to build the matrix, in column order.
	Features []Feature `json:"features_used" yaml:"features_used"`

	// Scholarships is the number of input records.
	Scholarships int `json:"n_scholarships" yaml:"n_scholarships"`

	// RequestedClusters is the caller-supplied cluster count. Zero for DBSCAN.
	RequestedClusters int `json:"requested_clusters,omitempty" yaml:"requested_clusters,omitempty"`

	// Clusters is the achieved cluster count, excluding noise.
	Clusters int `json:"n_clusters" yaml:"n_clusters"`

	// Silhouette is the silhouette coefficient of the partition, in [-1, 1].
	Silhouette float64 `json:"silhouette_score" yaml:"silhouette_score"`

	// Inertia is the k-means sum of squared distances to assigned centroids.
	// Zero for other methods.
	Inertia float64 `json:"inertia,omitempty" yaml:"inertia,omitempty"`

	// Eps is the DBSCAN neighborhood radius actually used.
	Eps float64 `json:"eps,omitempty" yaml:"eps,omitempty"`

	// NoisePoints is the number of records DBSCAN left unassigned.
	NoisePoints int `json:"n_noise_points,omitempty" yaml:"n_noise_points,omitempty"`
}

// Recommendation is the outcome of silhouette-based cluster-count selection.
type Recommendation struct {
	// Clusters is the recommended cluster count.
	Clusters int `json:"recommended_clusters" yaml:"recommended_clusters"`

	// Scores maps each evaluated candidate count to its silhouette score.
	// Empty when the input was too small to evaluate candidates.
	Scores map[int]float64 `json:"scores" yaml:"scores"`

	// Basis is "silhouette_analysis" when candidates were evaluated, or
	// "default" when the fixed fallback of 2 was returned.
	Basis string `json:"method" yaml:"method"`
}

// LabelCount pairs a text label with its occurrence count.
type LabelCount struct {
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
}

// ClusterSummary holds descriptive statistics for one cluster.
type ClusterSummary struct {
	// Size is the number of records in the cluster.
	Size int `json:"size" yaml:"size"`

	// Amount statistics over the cluster.
	AvgAmount   float64 `json:"avg_amount" yaml:"avg_amount"`
	TotalAmount float64 `json:"total_value" yaml:"total_value"`
	MinAmount   float64 `json:"min_amount" yaml:"min_amount"`
	MaxAmount   float64 `json:"max_amount" yaml:"max_amount"`

	// GPA requirement statistics over the cluster.
	AvgGPA float64 `json:"avg_gpa" yaml:"avg_gpa"`
	MinGPA float64 `json:"min_gpa" yaml:"min_gpa"`
	MaxGPA float64 `json:"max_gpa" yaml:"max_gpa"`

	// TopCategory is the most frequent category label, or "N/A" for an
	// empty cluster.
	TopCategory string `json:"most_common_category" yaml:"most_common_category"`

	// CategoryCounts is the full category distribution.
	CategoryCounts map[string]int `json:"category_distribution" yaml:"category_distribution"`

	// TopDemographics lists the five most frequent demographic labels with
	// counts, most frequent first.
	TopDemographics []LabelCount `json:"most_common_demographics" yaml:"most_common_demographics"`

	// AvgDaysToDeadline is the mean days until deadline over records with a
	// parseable deadline, or nil when none parse.
	AvgDaysToDeadline *float64 `json:"avg_days_until_deadline,omitempty" yaml:"avg_days_until_deadline,omitempty"`

	// UrgentDeadlines counts records due within 30 days.
	UrgentDeadlines int `json:"urgent_deadlines" yaml:"urgent_deadlines"`
}

// Projection is a 2D reduction of a run's feature matrix for charting.
// Parallel slices share indexing with the run's input records.
type Projection struct {
	X        []float64 `json:"x" yaml:"x"`
	Y        []float64 `json:"y" yaml:"y"`
	Cluster  []int     `json:"cluster" yaml:"cluster"`
	Title    []string  `json:"title" yaml:"title"`
	Amount   []float64 `json:"amount" yaml:"amount"`
	Category []string  `json:"category" yaml:"category"`

	// ExplainedVariance holds the variance fraction captured by each of the
	// two retained principal components.
	ExplainedVariance [2]float64 `json:"explained_variance_ratio" yaml:"explained_variance_ratio"`

	// TotalVariance is the summed variance fraction of both components.
	TotalVariance float64 `json:"total_variance_explained" yaml:"total_variance_explained"`
}

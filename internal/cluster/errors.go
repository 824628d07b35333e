// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cluster

import "errors"

// Sentinel errors categorizing run failures. Every failure returned by the
// engine wraps exactly one of these, so callers can distinguish bad
// configuration from data that yielded no usable features from numerical
// failure inside an algorithm.
var (
	// ErrConfiguration marks requests rejected before any computation:
	// empty feature selection, unsupported method, or a cluster count that
	// is non-positive or not less than the record count.
	ErrConfiguration = errors.New("invalid clustering configuration")

	// ErrNoFeatures marks runs where the feature matrix ended up with zero
	// columns after per-feature fallbacks.
	ErrNoFeatures = errors.New("no usable features")

	// ErrAlgorithm marks numerical failure inside a clustering routine.
	// The run produces no partial labels.
	ErrAlgorithm = errors.New("clustering algorithm failed")
)

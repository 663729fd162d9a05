// Package catalog holds the artifact collection the optimizer runs against:
// value/weight pairs plus the hall weight capacity, guarded for concurrent
// access by the HTTP layer.
package catalog

import (
	"errors"
	"sync"
)

const (
	maxArtifacts = 50
	maxCapacity  = 1_000_000
)

var (
	// ErrInvalidArtifacts indicates the provided artifacts violate validation rules.
	ErrInvalidArtifacts = errors.New("catalog must contain between 1 and 50 artifacts with non-negative values and weights")
	// ErrInvalidCapacity indicates the capacity is outside the supported range.
	ErrInvalidCapacity = errors.New("capacity must be between 0 and 1000000")
)

var defaultCatalog = Catalog{
	Artifacts: []Artifact{
		{Value: 60, Weight: 10},
		{Value: 100, Weight: 20},
		{Value: 120, Weight: 30},
	},
	Capacity: 50,
}

// Artifact is a single catalog entry: an appraisal value and a display weight.
type Artifact struct {
	Value  int `json:"value" yaml:"value"`
	Weight int `json:"weight" yaml:"weight"`
}

// Catalog pairs the artifact collection with the capacity constraint.
type Catalog struct {
	Artifacts []Artifact
	Capacity  int
}

// Values returns the artifact values as a slice parallel to Weights:
// artifact i (1-based) sits at index i-1.
func (c Catalog) Values() []int {
	values := make([]int, len(c.Artifacts))
	for i, a := range c.Artifacts {
		values[i] = a.Value
	}
	return values
}

// Weights returns the artifact weights as a slice parallel to Values.
func (c Catalog) Weights() []int {
	weights := make([]int, len(c.Artifacts))
	for i, a := range c.Artifacts {
		weights[i] = a.Weight
	}
	return weights
}

// Storage provides access to the catalog used by the optimizer.
type Storage interface {
	GetCatalog() (Catalog, error)
	SetCatalog(c Catalog) error
}

// MemoryStorage keeps the catalog in-memory and guards access with a RWMutex.
type MemoryStorage struct {
	mu      sync.RWMutex
	catalog Catalog
}

// NewMemoryStorage initialises storage with a copy of the default catalog.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		catalog: clone(defaultCatalog),
	}
}

// DefaultCatalog returns a copy of the default catalog.
func DefaultCatalog() Catalog {
	return clone(defaultCatalog)
}

// GetCatalog returns a defensive copy of the current catalog.
func (s *MemoryStorage) GetCatalog() (Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return clone(s.catalog), nil
}

// SetCatalog validates and stores the provided catalog.
func (s *MemoryStorage) SetCatalog(c Catalog) error {
	if err := Validate(c); err != nil {
		return err
	}

	s.mu.Lock()
	s.catalog = clone(c)
	s.mu.Unlock()

	return nil
}

// Validate checks a catalog against the service guardrails: 1 to 50 artifacts
// with non-negative values and weights, and a capacity within 0..1000000. The
// capacity ceiling bounds the DP table allocation at roughly n*capacity cells;
// the artifact ceiling keeps the possible-subset count within uint64 range.
func Validate(c Catalog) error {
	if len(c.Artifacts) == 0 || len(c.Artifacts) > maxArtifacts {
		return ErrInvalidArtifacts
	}
	for _, a := range c.Artifacts {
		if a.Value < 0 || a.Weight < 0 {
			return ErrInvalidArtifacts
		}
	}
	if c.Capacity < 0 || c.Capacity > maxCapacity {
		return ErrInvalidCapacity
	}
	return nil
}

// ValidateCapacity checks a capacity value alone, for per-request overrides.
func ValidateCapacity(capacity int) error {
	if capacity < 0 || capacity > maxCapacity {
		return ErrInvalidCapacity
	}
	return nil
}

func clone(c Catalog) Catalog {
	artifacts := make([]Artifact, len(c.Artifacts))
	copy(artifacts, c.Artifacts)
	return Catalog{Artifacts: artifacts, Capacity: c.Capacity}
}

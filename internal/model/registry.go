package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Artifact layout: <baseDir>/<version>/model.json plus an optional
// metadata.json written at export time.
const (
	artifactFile = "model.json"
	metadataFile = "metadata.json"
)

// artifact is the on-disk model format.
type artifact struct {
	ModelType    string    `json:"model_type"`
	Classes      []string  `json:"classes"`
	Features     []string  `json:"features"`
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
	Scaler       *struct {
		Mean  []float64 `json:"mean"`
		Scale []float64 `json:"scale"`
	} `json:"scaler,omitempty"`
}

// Metadata describes an exported model version.
type Metadata struct {
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Notes     string    `json:"notes,omitempty"`
}

// Registry loads versioned model artifacts from a base directory.
type Registry struct {
	baseDir string
}

// NewRegistry points at the artifact directory.
func NewRegistry(baseDir string) *Registry {
	return &Registry{baseDir: baseDir}
}

// Load reads and validates one model version. The artifact must declare its
// classes as exactly [repaid, defaulted]; anything else is refused so a
// mislabeled artifact can never silently invert scores.
func (r *Registry) Load(version string) (*LogisticModel, *Metadata, error) {
	path := filepath.Join(r.baseDir, version, artifactFile)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read model artifact %s: %w", path, err)
	}

	var art artifact
	if err := json.Unmarshal(raw, &art); err != nil {
		return nil, nil, fmt.Errorf("decode model artifact %s: %w", path, err)
	}

	if art.ModelType != "logistic_regression" {
		return nil, nil, fmt.Errorf("unsupported model type %q in %s", art.ModelType, path)
	}
	if len(art.Classes) != 2 || Class(art.Classes[0]) != ClassRepaid || Class(art.Classes[1]) != ClassDefaulted {
		return nil, nil, fmt.Errorf("artifact %s declares classes %v, want [%s %s]", path, art.Classes, ClassRepaid, ClassDefaulted)
	}

	var mean, scale []float64
	if art.Scaler != nil {
		mean, scale = art.Scaler.Mean, art.Scaler.Scale
	}
	m, err := NewLogisticModel(art.Features, art.Coefficients, art.Intercept, mean, scale)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid model artifact %s: %w", path, err)
	}

	meta := &Metadata{Version: version}
	metaRaw, err := os.ReadFile(filepath.Join(r.baseDir, version, metadataFile))
	if err == nil {
		// Metadata is best-effort; a malformed file falls back to defaults.
		_ = json.Unmarshal(metaRaw, meta)
		meta.Version = version
	}

	return m, meta, nil
}

// Save exports a model as a new version. Used by offline export tooling and
// tests; the server only loads.
func (r *Registry) Save(version string, m *LogisticModel, meta *Metadata) error {
	dir := filepath.Join(r.baseDir, version)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create version dir: %w", err)
	}

	art := artifact{
		ModelType:    "logistic_regression",
		Classes:      []string{string(ClassRepaid), string(ClassDefaulted)},
		Features:     m.featureNames,
		Intercept:    m.intercept,
		Coefficients: m.coefficients,
	}
	if m.scalerMean != nil {
		art.Scaler = &struct {
			Mean  []float64 `json:"mean"`
			Scale []float64 `json:"scale"`
		}{Mean: m.scalerMean, Scale: m.scalerScale}
	}

	raw, err := json.MarshalIndent(art, "", "  ")
	if err != nil {
		return fmt.Errorf("encode model artifact: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, artifactFile), raw, 0o644); err != nil {
		return fmt.Errorf("write model artifact: %w", err)
	}

	if meta != nil {
		meta.Version = version
		if meta.Timestamp.IsZero() {
			meta.Timestamp = time.Now().UTC()
		}
		metaRaw, err := json.MarshalIndent(meta, "", "  ")
		if err != nil {
			return fmt.Errorf("encode metadata: %w", err)
		}
		if err := os.WriteFile(filepath.Join(dir, metadataFile), metaRaw, 0o644); err != nil {
			return fmt.Errorf("write metadata: %w", err)
		}
	}
	return nil
}

package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"altscore/internal/features"
)

func TestRegistryRoundTrip(t *testing.T) {
	dir := t.TempDir()
	reg := NewRegistry(dir)

	m, err := NewLogisticModel(
		features.Columns(),
		make([]float64, len(features.Columns())),
		0.25,
		nil, nil,
	)
	require.NoError(t, err)

	require.NoError(t, reg.Save("v1", m, &Metadata{Notes: "baseline"}))

	loaded, meta, err := reg.Load("v1")
	require.NoError(t, err)
	assert.Equal(t, features.Columns(), loaded.FeatureNames())
	assert.Equal(t, "v1", meta.Version)
	assert.Equal(t, "baseline", meta.Notes)

	// Zero weights with intercept 0.25: identical predictions regardless of input.
	p, err := loaded.PredictProba(features.Vector{}.Row())
	require.NoError(t, err)
	assert.InDelta(t, 1.0, p.Repay+p.Default, 1e-9)
}

func TestRegistryLoadMissingVersion(t *testing.T) {
	reg := NewRegistry(t.TempDir())
	_, _, err := reg.Load("v9")
	assert.Error(t, err)
}

func TestRegistryRefusesMislabeledClasses(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "v1"), 0o755))

	// Classes swapped: a loader that accepted this would invert every score.
	artifact := `{
		"model_type": "logistic_regression",
		"classes": ["defaulted", "repaid"],
		"features": ["txn_count"],
		"intercept": 0,
		"coefficients": [0.1]
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "v1", "model.json"), []byte(artifact), 0o644))

	_, _, err := NewRegistry(dir).Load("v1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "classes")
}

func TestRegistryRefusesUnknownModelType(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "v1"), 0o755))
	artifact := `{"model_type": "gradient_boosting", "classes": ["repaid", "defaulted"], "features": ["x"], "coefficients": [1]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "v1", "model.json"), []byte(artifact), 0o644))

	_, _, err := NewRegistry(dir).Load("v1")
	assert.Error(t, err)
}

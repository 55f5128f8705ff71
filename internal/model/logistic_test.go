package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"altscore/internal/features"
)

func TestNewLogisticModel(t *testing.T) {
	t.Run("coefficient count must match features", func(t *testing.T) {
		_, err := NewLogisticModel([]string{"a", "b"}, []float64{1}, 0, nil, nil)
		assert.Error(t, err)
	})

	t.Run("scaler halves must come together", func(t *testing.T) {
		_, err := NewLogisticModel([]string{"a"}, []float64{1}, 0, []float64{0}, nil)
		assert.Error(t, err)
	})

	t.Run("zero scale is refused", func(t *testing.T) {
		_, err := NewLogisticModel([]string{"a"}, []float64{1}, 0, []float64{0}, []float64{0})
		assert.Error(t, err)
	})

	t.Run("no features is refused", func(t *testing.T) {
		_, err := NewLogisticModel(nil, nil, 0, nil, nil)
		assert.Error(t, err)
	})
}

func TestPredictProba(t *testing.T) {
	// Single feature, weight 1, no intercept: p(default) = sigmoid(x).
	m, err := NewLogisticModel([]string{"x"}, []float64{1}, 0, nil, nil)
	require.NoError(t, err)

	t.Run("zero input splits evenly", func(t *testing.T) {
		p, err := m.PredictProba(features.Row{Columns: []string{"x"}, Values: []float64{0}})
		require.NoError(t, err)
		assert.InDelta(t, 0.5, p.Default, 1e-9)
		assert.InDelta(t, 0.5, p.Repay, 1e-9)
	})

	t.Run("probabilities sum to one", func(t *testing.T) {
		p, err := m.PredictProba(features.Row{Columns: []string{"x"}, Values: []float64{2.3}})
		require.NoError(t, err)
		assert.InDelta(t, 1.0, p.Repay+p.Default, 1e-9)
	})

	t.Run("extreme score saturates without overflow", func(t *testing.T) {
		p, err := m.PredictProba(features.Row{Columns: []string{"x"}, Values: []float64{1e9}})
		require.NoError(t, err)
		assert.InDelta(t, 0.0, p.Repay, 1e-12)
		assert.InDelta(t, 1.0, p.Default, 1e-12)
	})

	t.Run("shape mismatch is an error", func(t *testing.T) {
		_, err := m.PredictProba(features.Row{Columns: []string{"x", "y"}, Values: []float64{1, 2}})
		assert.Error(t, err)
	})

	t.Run("column mismatch is an error", func(t *testing.T) {
		_, err := m.PredictProba(features.Row{Columns: []string{"y"}, Values: []float64{1}})
		assert.Error(t, err)
	})

	t.Run("scaler standardizes inputs", func(t *testing.T) {
		scaled, err := NewLogisticModel([]string{"x"}, []float64{1}, 0, []float64{10}, []float64{2})
		require.NoError(t, err)

		// x=10 standardizes to 0 -> p(default)=0.5
		p, err := scaled.PredictProba(features.Row{Columns: []string{"x"}, Values: []float64{10}})
		require.NoError(t, err)
		assert.InDelta(t, 0.5, p.Default, 1e-9)
	})
}

func TestProbabilitiesOf(t *testing.T) {
	p := Probabilities{Repay: 0.7, Default: 0.3}

	repay, err := p.Of(ClassRepaid)
	require.NoError(t, err)
	assert.InDelta(t, 0.7, repay, 1e-9)

	def, err := p.Of(ClassDefaulted)
	require.NoError(t, err)
	assert.InDelta(t, 0.3, def, 1e-9)

	_, err = p.Of(Class("fraud"))
	assert.Error(t, err)
}

package model

import (
	"fmt"
	"math"

	"altscore/internal/features"
)

// LogisticModel is a standardized logistic regression over the canonical
// feature schema. It is the artifact format the training pipeline exports:
// inputs are standardized with the stored scaler, then passed through a
// linear decision function whose positive class is "defaulted".
type LogisticModel struct {
	featureNames []string
	coefficients []float64
	intercept    float64
	scalerMean   []float64
	scalerScale  []float64
}

// NewLogisticModel validates and builds a model from its raw parameters.
// scalerMean/scalerScale may be nil for an unscaled model.
func NewLogisticModel(
	featureNames []string,
	coefficients []float64,
	intercept float64,
	scalerMean, scalerScale []float64,
) (*LogisticModel, error) {
	if len(featureNames) == 0 {
		return nil, fmt.Errorf("model declares no features")
	}
	if len(coefficients) != len(featureNames) {
		return nil, fmt.Errorf("model has %d coefficients for %d features", len(coefficients), len(featureNames))
	}
	if (scalerMean == nil) != (scalerScale == nil) {
		return nil, fmt.Errorf("scaler mean and scale must be provided together")
	}
	if scalerMean != nil {
		if len(scalerMean) != len(featureNames) || len(scalerScale) != len(featureNames) {
			return nil, fmt.Errorf("scaler length does not match feature count")
		}
		for i, s := range scalerScale {
			if s == 0 {
				return nil, fmt.Errorf("scaler scale for %s is zero", featureNames[i])
			}
		}
	}
	return &LogisticModel{
		featureNames: append([]string(nil), featureNames...),
		coefficients: append([]float64(nil), coefficients...),
		intercept:    intercept,
		scalerMean:   append([]float64(nil), scalerMean...),
		scalerScale:  append([]float64(nil), scalerScale...),
	}, nil
}

// FeatureNames declares the expected input columns.
func (m *LogisticModel) FeatureNames() []string {
	return append([]string(nil), m.featureNames...)
}

// PredictProba computes the class probabilities for one aligned row. The row
// must carry exactly the declared columns in declared order; the decision
// engine's schema alignment guarantees this.
func (m *LogisticModel) PredictProba(row features.Row) (Probabilities, error) {
	if len(row.Values) != len(m.featureNames) {
		return Probabilities{}, fmt.Errorf("row has %d values, model expects %d", len(row.Values), len(m.featureNames))
	}
	for i, col := range row.Columns {
		if col != m.featureNames[i] {
			return Probabilities{}, fmt.Errorf("row column %d is %q, model expects %q", i, col, m.featureNames[i])
		}
	}

	z := m.intercept
	for i, x := range row.Values {
		if m.scalerMean != nil {
			x = (x - m.scalerMean[i]) / m.scalerScale[i]
		}
		z += m.coefficients[i] * x
	}

	pDefault := sigmoid(z)
	return Probabilities{Repay: 1 - pDefault, Default: pDefault}, nil
}

func sigmoid(z float64) float64 {
	// Guard against overflow for extreme linear scores.
	if z > 35 {
		return 1
	}
	if z < -35 {
		return 0
	}
	return 1 / (1 + math.Exp(-z))
}

// Package model defines the classifier capability the decision engine is
// parameterized with, plus the shipped logistic-regression artifact.
//
// The trained model's two classes are addressed by name, never by position.
// The historical "column 0 is repaid" convention lives only inside artifact
// files, where it is validated at load time.
package model

import (
	"fmt"

	"altscore/internal/features"
)

// Class names one of the two outcome classes.
type Class string

const (
	ClassRepaid    Class = "repaid"
	ClassDefaulted Class = "defaulted"
)

// Probabilities is a two-class membership distribution. Repay and Default
// always sum to 1 for a well-formed classifier.
type Probabilities struct {
	Repay   float64
	Default float64
}

// Of returns the probability of the named class.
func (p Probabilities) Of(c Class) (float64, error) {
	switch c {
	case ClassRepaid:
		return p.Repay, nil
	case ClassDefaulted:
		return p.Default, nil
	}
	return 0, fmt.Errorf("unknown class %q", c)
}

// Classifier is the capability the decision engine consumes. Any trained
// model that can produce a class-membership distribution for a schema-aligned
// feature row is substitutable.
type Classifier interface {
	// PredictProba returns the class-membership probabilities for one row.
	PredictProba(row features.Row) (Probabilities, error)

	// FeatureNames declares the exact input columns the model expects, or nil
	// when the model accepts the canonical schema as-is. The engine aligns
	// feature vectors to this declaration before predicting.
	FeatureNames() []string
}

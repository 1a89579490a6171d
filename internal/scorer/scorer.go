package scorer

import (
	"context"
	"errors"
	"fmt"
	"math"

	"tradify-bot/internal/interfaces"
	"tradify-bot/internal/types"
)

// ErrBadFeatureVector is returned when the vector does not match the
// model's expected dimensionality or contains non-finite values. The
// candidate is aborted, not the cycle.
var ErrBadFeatureVector = errors.New("malformed feature vector")

// Logistic scores feature vectors with a logistic model loaded from a
// trained artifact.
type Logistic struct {
	art *Artifact
}

var _ interfaces.Scorer = (*Logistic)(nil)

// NewLogistic wraps a loaded artifact as a Scorer.
func NewLogistic(art *Artifact) *Logistic {
	return &Logistic{art: art}
}

func (l *Logistic) Version() string { return l.art.Version }

// Score maps the vector to a confidence in [0,1].
func (l *Logistic) Score(_ context.Context, features types.FeatureVector) (float64, error) {
	if len(features) != len(l.art.Weights) {
		return 0, fmt.Errorf("%w: got %d features, model %s expects %d",
			ErrBadFeatureVector, len(features), l.art.Version, len(l.art.Weights))
	}
	z := l.art.Bias
	for i, f := range features {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("%w: feature %d is not finite", ErrBadFeatureVector, i)
		}
		z += l.art.Weights[i] * f
	}
	return 1.0 / (1.0 + math.Exp(-z)), nil
}

// Constant always returns the same confidence. It stands in when no
// model artifact is configured, keeping the decision path exercisable
// without a trained model.
type Constant struct {
	value float64
}

var _ interfaces.Scorer = (*Constant)(nil)

// NewConstant creates a fixed-confidence scorer.
func NewConstant(v float64) *Constant { return &Constant{value: v} }

func (c *Constant) Version() string { return "constant" }

func (c *Constant) Score(_ context.Context, features types.FeatureVector) (float64, error) {
	if len(features) == 0 {
		return 0, ErrBadFeatureVector
	}
	return c.value, nil
}

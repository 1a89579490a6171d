package interfaces

import (
	"context"

	"tradify-bot/internal/types"
)

// Scorer is the opaque confidence function applied to a feature vector.
// Implementations are loaded from a persisted artifact keyed by version.
type Scorer interface {
	Score(ctx context.Context, features types.FeatureVector) (float64, error)
	Version() string
}

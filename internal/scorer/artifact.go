package scorer

import (
	"encoding/json"
	"fmt"
	"os"
)

// Artifact is the persisted form of a trained scoring model. Training
// happens offline; the engine only ever loads the artifact. Version
// identifies the training run and FeatureNames pin the vector ordering
// the weights were fitted against.
type Artifact struct {
	Version      string    `json:"version"`
	FeatureNames []string  `json:"feature_names"`
	Weights      []float64 `json:"weights"`
	Bias         float64   `json:"bias"`
}

// LoadArtifact reads a model artifact from disk.
func LoadArtifact(path string) (*Artifact, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}
	var a Artifact
	if err := json.Unmarshal(b, &a); err != nil {
		return nil, fmt.Errorf("parse model artifact: %w", err)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// Save writes the artifact to disk.
func (a *Artifact) Save(path string) error {
	if err := a.Validate(); err != nil {
		return err
	}
	b, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// Validate checks internal consistency of the artifact.
func (a *Artifact) Validate() error {
	if a.Version == "" {
		return fmt.Errorf("model artifact missing version")
	}
	if len(a.Weights) == 0 {
		return fmt.Errorf("model artifact %s has no weights", a.Version)
	}
	if len(a.FeatureNames) != len(a.Weights) {
		return fmt.Errorf("model artifact %s: %d feature names for %d weights",
			a.Version, len(a.FeatureNames), len(a.Weights))
	}
	return nil
}

package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Artifact file names inside the model directory.
const (
	ModelFile      = "model.json"
	VectorizerFile = "vectorizer.json"
)

// modelArtifact is the on-disk form of model.json.
// For estimator artifacts Type is the estimator kind and the linear fields
// are set; for pipeline artifacts Type is "pipeline" and Vectorizer and
// Estimator are embedded.
type modelArtifact struct {
	LinearEstimator

	Vectorizer *Vectorizer       `json:"vectorizer,omitempty"`
	Estimator  *LinearEstimator `json:"estimator,omitempty"`
}

// LoadModel reads the classifier artifacts from dir.
//
// When both model.json and vectorizer.json exist, model.json must be a
// linear estimator and the pair forms a vectorized model. When only
// model.json exists it must be a self-contained pipeline. A missing
// model.json returns ErrModelNotFound.
func LoadModel(dir string) (Model, error) {
	modelPath := filepath.Join(dir, ModelFile)
	vectorizerPath := filepath.Join(dir, VectorizerFile)

	var artifact modelArtifact
	if err := readJSON(modelPath, &artifact); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, modelPath)
		}
		return nil, err
	}

	var vec Vectorizer
	err := readJSON(vectorizerPath, &vec)
	switch {
	case err == nil:
		if artifact.Kind == KindPipeline {
			return nil, fmt.Errorf("%w: %s is a pipeline but %s also exists",
				ErrInvalidArtifact, ModelFile, VectorizerFile)
		}
		est := artifact.LinearEstimator
		return NewVectorizedModel(&vec, &est)

	case errors.Is(err, os.ErrNotExist):
		if artifact.Kind != KindPipeline {
			return nil, fmt.Errorf("%w: %s has type %q and no %s was found",
				ErrInvalidArtifact, ModelFile, artifact.Kind, VectorizerFile)
		}
		if artifact.Vectorizer == nil || artifact.Estimator == nil {
			return nil, fmt.Errorf("%w: pipeline requires vectorizer and estimator", ErrInvalidArtifact)
		}
		return NewPipelineModel(artifact.Vectorizer, artifact.Estimator)

	default:
		return nil, err
	}
}

// readJSON decodes a JSON file. Decode errors wrap ErrInvalidArtifact;
// missing files keep os.ErrNotExist in the chain.
func readJSON(path string, v any) error {
	data, err := os.ReadFile(path) //nolint:gosec // Model directory is operator-provided
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidArtifact, filepath.Base(path), err)
	}
	return nil
}

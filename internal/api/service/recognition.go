package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/orchardhq/fruitdex/internal/api/domain"
	"github.com/orchardhq/fruitdex/internal/api/store"
	"github.com/orchardhq/fruitdex/internal/api/vision"
	"github.com/orchardhq/fruitdex/pkg/slogx"
)

var (
	// ErrRecognitionUnavailable means no vision provider is configured.
	ErrRecognitionUnavailable = errors.New("recognition not configured")

	// ErrRecognitionUpstream means the configured provider was reached
	// but failed to produce a classification.
	ErrRecognitionUpstream = errors.New("recognition provider failed")
)

// Classifier is the slice of the vision client the recognition service
// needs. *vision.Client satisfies it.
type Classifier interface {
	Classify(ctx context.Context, image string) (vision.Classification, error)
}

// RecognitionResult pairs the provider's raw classification with the
// catalog fruit it matched, when it matched one.
type RecognitionResult struct {
	Label      string
	Confidence float64
	Fruit      *domain.Fruit
}

// RecognitionService runs an image past the vision provider and maps the
// returned label onto the fruit catalog. Classifier is nil when no
// provider is configured.
type RecognitionService struct {
	Store      store.Store
	Classifier Classifier
}

// Recognize classifies the image and, when the label names a fruit we
// know (case-insensitive), attaches the catalog entry.
func (s *RecognitionService) Recognize(ctx context.Context, image string) (*RecognitionResult, error) {
	if s.Classifier == nil {
		return nil, ErrRecognitionUnavailable
	}

	cls, err := s.Classifier.Classify(ctx, image)
	if err != nil {
		slogx.FromContext(ctx).Warn("vision provider call failed", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrRecognitionUpstream, err)
	}

	result := &RecognitionResult{
		Label:      cls.Label,
		Confidence: cls.Confidence,
	}

	// Name column is COLLATE NOCASE, so the lookup itself is the
	// case-insensitive match.
	fruit, err := s.Store.Fruits().GetFruitByName(ctx, cls.Label)
	switch {
	case err == nil:
		result.Fruit = &fruit
	case errors.Is(err, store.ErrNotFound):
		// Provider saw something we don't catalog; label alone is fine.
	default:
		return nil, err
	}

	return result, nil
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/orchardhq/fruitdex/internal/api/domain"
	"github.com/orchardhq/fruitdex/internal/api/store"
	"github.com/orchardhq/fruitdex/internal/api/vision"
	"github.com/orchardhq/fruitdex/pkg/idx"
)

type fakeClassifier struct {
	result vision.Classification
	err    error
}

func (f *fakeClassifier) Classify(ctx context.Context, image string) (vision.Classification, error) {
	return f.result, f.err
}

func TestRecognizeUnconfigured(t *testing.T) {
	svc := &RecognitionService{Store: newTestStore(t), Classifier: nil}

	_, err := svc.Recognize(context.Background(), "img")
	require.ErrorIs(t, err, ErrRecognitionUnavailable)
}

func TestRecognizeProviderFailure(t *testing.T) {
	svc := &RecognitionService{
		Store:      newTestStore(t),
		Classifier: &fakeClassifier{err: vision.ErrProvider},
	}

	_, err := svc.Recognize(context.Background(), "img")
	require.ErrorIs(t, err, ErrRecognitionUpstream)
}

func TestRecognizeMatchesCatalogCaseInsensitively(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mango := domain.Fruit{
		ID:     idx.New().String(),
		Name:   "Mango",
		Season: "summer",
	}
	require.NoError(t, s.Fruits().CreateFruit(ctx, mango))

	svc := &RecognitionService{
		Store:      s,
		Classifier: &fakeClassifier{result: vision.Classification{Label: "mango", Confidence: 0.91}},
	}

	res, err := svc.Recognize(ctx, "img")
	require.NoError(t, err)
	require.Equal(t, "mango", res.Label)
	require.InDelta(t, 0.91, res.Confidence, 1e-9)
	require.NotNil(t, res.Fruit)
	require.Equal(t, mango.ID, res.Fruit.ID)
}

func TestRecognizeUnknownLabel(t *testing.T) {
	svc := &RecognitionService{
		Store:      newTestStore(t),
		Classifier: &fakeClassifier{result: vision.Classification{Label: "durian", Confidence: 0.5}},
	}

	res, err := svc.Recognize(context.Background(), "img")
	require.NoError(t, err)
	require.Equal(t, "durian", res.Label)
	require.Nil(t, res.Fruit)
}

func TestRecognizeStoreErrorPropagates(t *testing.T) {
	// Closed store makes the catalog lookup fail with something other
	// than not-found; that error must surface, not be swallowed.
	s := newTestStore(t)
	require.NoError(t, s.Close())

	svc := &RecognitionService{
		Store:      s,
		Classifier: &fakeClassifier{result: vision.Classification{Label: "mango"}},
	}

	_, err := svc.Recognize(context.Background(), "img")
	require.Error(t, err)
	require.False(t, errors.Is(err, store.ErrNotFound))
}

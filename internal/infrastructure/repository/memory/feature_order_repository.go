package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/fbref-teamfit/internal/domain/featureorder"
)

type FeatureOrderRepository struct {
	mu       sync.RWMutex
	features []featureorder.Feature
}

func NewFeatureOrderRepository() *FeatureOrderRepository {
	return &FeatureOrderRepository{}
}

func (r *FeatureOrderRepository) EnsureSchema(context.Context) error {
	return nil
}

func (r *FeatureOrderRepository) Replace(_ context.Context, features []featureorder.Feature) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.features = append([]featureorder.Feature(nil), features...)
	return nil
}

func (r *FeatureOrderRepository) List(context.Context) ([]featureorder.Feature, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]featureorder.Feature(nil), r.features...), nil
}

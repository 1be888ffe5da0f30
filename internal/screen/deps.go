package screen

import (
	"context"

	"github.com/vmunix/roulette/internal/recommend"
)

//go:generate mockgen -source=deps.go -destination=mocks/mock_recommender.go -package=mocks

// Recommender fetches one recommendation for a query.
type Recommender interface {
	Fetch(ctx context.Context, q recommend.Query) (*recommend.Recommendation, error)
}

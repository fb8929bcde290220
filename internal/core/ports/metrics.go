package ports

import (
	"time"

	"go.trai.ch/mesha/internal/core/domain"
)

// QueryOutcome describes how a feature query was served.
type QueryOutcome string

const (
	// OutcomeHit means a fresh cache entry was returned.
	OutcomeHit QueryOutcome = "hit"
	// OutcomeMiss means the feature was classified from a new snapshot.
	OutcomeMiss QueryOutcome = "miss"
	// OutcomeRevived means a stale entry was confirmed against an unchanged snapshot.
	OutcomeRevived QueryOutcome = "revived"
	// OutcomeStale means the object disappeared during the query.
	OutcomeStale QueryOutcome = "stale"
)

// Metrics records engine activity.
//
//go:generate mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	// ObserveQuery counts one feature query.
	ObserveQuery(feature domain.FeatureID, outcome QueryOutcome)
	// ObserveClassification records one classifier run.
	ObserveClassification(feature domain.FeatureID, elapsed time.Duration, elements int)
	// ObserveEviction counts one object dropped from the cache.
	ObserveEviction()
	// SetTrackedObjects reports the number of objects held by the cache.
	SetTrackedObjects(n int)
}

package ports

import "powerboard/internal/domain"

// AnalyticsSink receives fire-and-forget usage metrics. Implementations
// must never block the caller or surface delivery failures.
type AnalyticsSink interface {
	// Report publishes the power aggregates derived from a refresh.
	Report(agg domain.PowerAggregates)

	// ReportEvent publishes a discrete UI event.
	ReportEvent(category, action, label string)
}

// Package analytics is a fire-and-forget usage reporter. Delivery failures
// are swallowed: losing a metric must never affect the app.
package analytics

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"powerboard/internal/domain"
	"powerboard/internal/ports"
)

const defaultEndpoint = "https://www.google-analytics.com/collect"

// Reporter implements ports.AnalyticsSink over the Measurement Protocol.
type Reporter struct {
	http       *http.Client
	endpoint   string
	trackingID string
	clientID   string // per-session, not persisted
	enabled    bool
	log        *zap.Logger
}

var _ ports.AnalyticsSink = (*Reporter)(nil)

// ReporterOption configures a Reporter.
type ReporterOption func(*Reporter)

// WithEndpoint points the reporter at a different collector. Used by tests.
func WithEndpoint(u string) ReporterOption {
	return func(r *Reporter) { r.endpoint = u }
}

// WithReporterLogger sets the reporter logger.
func WithReporterLogger(log *zap.Logger) ReporterOption {
	return func(r *Reporter) { r.log = log }
}

// NewReporter creates a reporter. When enabled is false every call is a
// no-op, which keeps call sites unconditional.
func NewReporter(trackingID string, enabled bool, opts ...ReporterOption) *Reporter {
	r := &Reporter{
		http:       &http.Client{Timeout: 5 * time.Second},
		endpoint:   defaultEndpoint,
		trackingID: trackingID,
		clientID:   uuid.NewString(),
		enabled:    enabled && trackingID != "",
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Report publishes the power aggregates as custom dimensions.
func (r *Reporter) Report(agg domain.PowerAggregates) {
	r.send(url.Values{
		"t":   {"event"},
		"ec":  {"power"},
		"ea":  {"refresh"},
		"cd1": {strconv.Itoa(agg.Overall)},
		"cd2": {strconv.Itoa(agg.Artifact)},
		"cd3": {strconv.Itoa(agg.Total)},
	})
}

// ReportEvent publishes a discrete UI event.
func (r *Reporter) ReportEvent(category, action, label string) {
	r.send(url.Values{
		"t":  {"event"},
		"ec": {category},
		"ea": {action},
		"el": {label},
	})
}

func (r *Reporter) send(values url.Values) {
	if !r.enabled {
		return
	}
	values.Set("v", "1")
	values.Set("tid", r.trackingID)
	values.Set("cid", r.clientID)

	go func() {
		resp, err := r.http.PostForm(r.endpoint, values)
		if err != nil {
			r.log.Debug("analytics send failed", zap.Error(err))
			return
		}
		resp.Body.Close()
	}()
}

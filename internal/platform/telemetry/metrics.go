package telemetry

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Round outcomes recorded on quotebot.rounds.
const (
	OutcomeSent     = "sent"
	OutcomeNotFound = "not_found"
	OutcomeDryRun   = "dry_run"
	OutcomeFailed   = "failed"
)

// BotMetrics records poster loop activity to OTLP and to a Prometheus registry.
// A nil *BotMetrics records nothing.
type BotMetrics struct {
	rounds metric.Int64Counter
	sent   metric.Int64Counter
	sleep  metric.Float64Histogram

	promRounds *prometheus.CounterVec
	promSent   prometheus.Counter
	promSleep  prometheus.Histogram
}

// NewBotMetrics creates the bot instruments and registers the Prometheus
// collectors with reg.
func NewBotMetrics(reg prometheus.Registerer) (*BotMetrics, error) {
	meter := otel.Meter(instrumentationName)

	rounds, err := meter.Int64Counter(
		"quotebot.rounds",
		metric.WithDescription("Post rounds by outcome"),
	)
	if err != nil {
		return nil, err
	}

	sent, err := meter.Int64Counter(
		"quotebot.quotes.sent",
		metric.WithDescription("Quotes posted as replies"),
	)
	if err != nil {
		return nil, err
	}

	sleep, err := meter.Float64Histogram(
		"quotebot.sleep.hours",
		metric.WithDescription("Hours slept between rounds"),
		metric.WithUnit("h"),
	)
	if err != nil {
		return nil, err
	}

	m := &BotMetrics{
		rounds: rounds,
		sent:   sent,
		sleep:  sleep,
		promRounds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quotebot_rounds_total",
			Help: "Post rounds by outcome.",
		}, []string{"outcome"}),
		promSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quotebot_quotes_sent_total",
			Help: "Quotes posted as replies.",
		}),
		promSleep: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "quotebot_sleep_hours",
			Help:    "Hours slept between rounds.",
			Buckets: []float64{1, 2, 3, 4, 5, 6, 8, 12},
		}),
	}

	for _, c := range []prometheus.Collector{m.promRounds, m.promSent, m.promSleep} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// RoundFinished counts one round with its outcome.
func (m *BotMetrics) RoundFinished(ctx context.Context, outcome string) {
	if m == nil {
		return
	}

	m.rounds.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	m.promRounds.WithLabelValues(outcome).Inc()

	if outcome == OutcomeSent {
		m.sent.Add(ctx, 1)
		m.promSent.Inc()
	}
}

// SleepScheduled records the chosen sleep interval.
func (m *BotMetrics) SleepScheduled(ctx context.Context, d time.Duration) {
	if m == nil {
		return
	}

	m.sleep.Record(ctx, d.Hours())
	m.promSleep.Observe(d.Hours())
}

package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mezonai/orion/logx"
)

// Action labels the user-facing workflow a metric belongs to.
type Action string

const (
	ActionSign     Action = "sign"
	ActionTransfer Action = "transfer"
	ActionAirdrop  Action = "airdrop"
	ActionBalance  Action = "balance"
)

// Outcome is success or the error code of a failed action.
type Outcome string

const OutcomeSuccess Outcome = "success"

type walletPromMetrics struct {
	upUnixSeconds       prometheus.Gauge
	actionCount         *prometheus.CounterVec
	actionDuration      *prometheus.HistogramVec
	verificationFailure prometheus.Counter
	timeToConfirmation  prometheus.Histogram
	lamportsTransferred prometheus.Counter
	panicCount          prometheus.Counter
}

func newWalletPromMetrics() *walletPromMetrics {
	return &walletPromMetrics{
		upUnixSeconds: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "orion_up_timestamp_unix_seconds",
				Help: "Unix timestamp of process start",
			},
		),
		actionCount: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orion_action_total",
				Help: "Wallet actions by outcome",
			},
			[]string{"action", "outcome"},
		),
		actionDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "orion_action_duration_seconds",
				Help: "Latency of wallet actions, wallet approval included",
			},
			[]string{"action"},
		),
		verificationFailure: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "orion_signature_verification_failures_total",
				Help: "Signatures returned by a wallet that did not verify locally",
			},
		),
		timeToConfirmation: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name: "orion_time_to_confirmation_seconds",
				Help: "Latency from submission until the target commitment is observed",
			},
		),
		lamportsTransferred: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "orion_lamports_transferred_total",
				Help: "Lamports moved by accepted transfers",
			},
		),
		panicCount: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "orion_panic_total",
				Help: "Recovered panics in background goroutines",
			},
		),
	}
}

var (
	walletMetrics *walletPromMetrics
	initOnce      sync.Once
)

// InitMetrics registers the collectors with the default registry. Safe to
// call more than once.
func InitMetrics() {
	initOnce.Do(func() {
		walletMetrics = newWalletPromMetrics()
		walletMetrics.upUnixSeconds.SetToCurrentTime()
	})
}

func metrics() *walletPromMetrics {
	InitMetrics()
	return walletMetrics
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

func RegisterMetrics(mux *http.ServeMux) {
	logx.Info("MONITORING", "Registering prometheus metrics")
	mux.Handle("/metrics", Handler())
}

func RecordAction(action Action, outcome Outcome, elapsed time.Duration) {
	m := metrics()
	m.actionCount.With(prometheus.Labels{
		"action":  string(action),
		"outcome": string(outcome),
	}).Inc()
	m.actionDuration.With(prometheus.Labels{"action": string(action)}).Observe(elapsed.Seconds())
}

func IncreaseVerificationFailure() {
	metrics().verificationFailure.Inc()
}

func RecordTimeToConfirmation(duration time.Duration) {
	metrics().timeToConfirmation.Observe(duration.Seconds())
}

func AddLamportsTransferred(lamports uint64) {
	metrics().lamportsTransferred.Add(float64(lamports))
}

func IncreasePanicCount() {
	metrics().panicCount.Inc()
}

package utils

import (
	"strconv"
	"time"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	txCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "custody",
			Subsystem: "tx",
			Name:      "processed_total",
			Help:      "Number of processed transactions, by message path and result code.",
		},
		[]string{"phase", "path", "code"},
	)
	txDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "custody",
			Subsystem: "tx",
			Name:      "duration_seconds",
			Help:      "Transaction processing time, by message path.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
		[]string{"phase", "path"},
	)
)

func init() {
	prometheus.MustRegister(txCount, txDuration)
}

// Metrics is a decorator that reports the count and processing time of
// transactions to prometheus.
type Metrics struct{}

var _ custody.Decorator = Metrics{}

// NewMetrics creates a Metrics decorator
func NewMetrics() Metrics {
	return Metrics{}
}

func (Metrics) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Checker) (*custody.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	observe("check", custody.GetPath(tx), start, err)
	return res, err
}

func (Metrics) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Deliverer) (*custody.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	observe("deliver", custody.GetPath(tx), start, err)
	return res, err
}

func observe(phase, path string, start time.Time, err error) {
	txCount.WithLabelValues(phase, path, resultCode(err)).Inc()
	txDuration.WithLabelValues(phase, path).Observe(time.Since(start).Seconds())
}

func resultCode(err error) string {
	if err == nil {
		return "ok"
	}
	code, _ := errors.ABCIInfo(err, false)
	return strconv.FormatUint(uint64(code), 10)
}

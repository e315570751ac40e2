package keeper

import (
	"strconv"
	"sync"

	"cosmossdk.io/math"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the AMM engine
type Metrics struct {
	// Swap metrics
	SwapsTotal  *prometheus.CounterVec
	SwapVolume  *prometheus.CounterVec
	SwapLatency prometheus.Histogram

	// Liquidity metrics
	LiquidityAdded   *prometheus.CounterVec
	LiquidityRemoved *prometheus.CounterVec

	// Pool metrics
	PoolsTotal prometheus.Gauge

	// Routing metrics
	RoutesExecuted *prometheus.CounterVec
	RouteHops      prometheus.Histogram

	// Pricing metrics
	ConvergencePasses prometheus.Histogram
	DegeneratePrices  prometheus.Counter

	// Capital analysis metrics
	CascadeRuns prometheus.Counter
}

var (
	metricsOnce sync.Once
	metrics     *Metrics
)

// GetMetrics creates and registers engine metrics (singleton pattern)
func GetMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = &Metrics{
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "simdex",
					Subsystem: "amm",
					Name:      "swaps_total",
					Help:      "Total number of swaps executed",
				},
				[]string{"pool_id", "direction", "status"},
			),
			SwapVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "simdex",
					Subsystem: "amm",
					Name:      "swap_volume_total",
					Help:      "Total swap input volume in pair-asset units",
				},
				[]string{"pool_id"},
			),
			SwapLatency: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "simdex",
					Subsystem: "amm",
					Name:      "swap_latency_seconds",
					Help:      "Swap execution latency in seconds",
					Buckets:   prometheus.DefBuckets,
				},
			),
			LiquidityAdded: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "simdex",
					Subsystem: "amm",
					Name:      "liquidity_added_total",
					Help:      "Total pair-side liquidity added to pools",
				},
				[]string{"pool_id"},
			),
			LiquidityRemoved: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "simdex",
					Subsystem: "amm",
					Name:      "liquidity_removed_total",
					Help:      "Total pair-side liquidity removed from pools",
				},
				[]string{"pool_id"},
			),
			PoolsTotal: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "simdex",
					Subsystem: "amm",
					Name:      "pools_total",
					Help:      "Total number of liquidity pools",
				},
			),
			RoutesExecuted: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "simdex",
					Subsystem: "amm",
					Name:      "routes_executed_total",
					Help:      "Multi-hop routes executed",
				},
				[]string{"status"},
			),
			RouteHops: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "simdex",
					Subsystem: "amm",
					Name:      "route_hops",
					Help:      "Hops per executed route",
					Buckets:   []float64{1, 2, 3, 4, 5},
				},
			),
			ConvergencePasses: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "simdex",
					Subsystem: "amm",
					Name:      "price_convergence_passes",
					Help:      "Passes used by the price convergence loop",
					Buckets:   []float64{1, 2, 3, 5, 8, 10},
				},
			),
			DegeneratePrices: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "simdex",
					Subsystem: "amm",
					Name:      "degenerate_prices_total",
					Help:      "Price resolutions that hit a circular pairing chain",
				},
			),
			CascadeRuns: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "simdex",
					Subsystem: "amm",
					Name:      "cascade_runs_total",
					Help:      "Cascade impact simulations executed",
				},
			),
		}
	})
	return metrics
}

func poolLabel(poolId uint64) string {
	return strconv.FormatUint(poolId, 10)
}

// decToFloat converts a decimal to the float64 prometheus wants.
// Observation values only; reserve math never goes through floats.
func decToFloat(d math.LegacyDec) float64 {
	f, err := d.Float64()
	if err != nil {
		return 0
	}
	return f
}

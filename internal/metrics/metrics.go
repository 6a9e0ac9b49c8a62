package metrics

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Collector struct {
	mutex     sync.Mutex
	registry  *prometheus.Registry
	observers []Observer

	ScanSessions       *prometheus.CounterVec
	ScanSessionsActive prometheus.Gauge
	ScanPages          prometheus.Counter
	ScanServers        prometheus.Counter

	LocateSessions  *prometheus.CounterVec
	LocatePages     prometheus.Counter
	LocateDurations prometheus.Histogram

	RegionProbes         prometheus.Counter
	RegionProbeErrors    prometheus.Counter
	RegionProbeDurations prometheus.Histogram
	RegionGeoFallbacks   prometheus.Counter

	ResolverWorkersBusy      prometheus.Gauge
	ResolverWorkersAvailable prometheus.Gauge
	ResolverQueueRejected    prometheus.Counter

	RegionCacheSize   prometheus.Gauge
	SnapshotStoreSize prometheus.Gauge

	PlatformRequestDurations *prometheus.HistogramVec
	PlatformRequestErrors    *prometheus.CounterVec
}

func New() *Collector {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewGoCollector())

	c := &Collector{
		registry: registry,

		ScanSessions: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "scan_sessions_total",
			Help: "The total number of finished scan sessions partitioned by outcome",
		}, []string{"outcome"}),
		ScanSessionsActive: promauto.With(registry).NewGauge(prometheus.GaugeOpts{
			Name: "scan_sessions_active",
			Help: "The number of scan sessions currently walking pages",
		}),
		ScanPages: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "scan_pages_total",
			Help: "The total number of listing pages fetched by scan sessions",
		}),
		ScanServers: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "scan_servers_total",
			Help: "The total number of server records accumulated by scan sessions",
		}),

		LocateSessions: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "locate_sessions_total",
			Help: "The total number of finished locate sessions partitioned by outcome",
		}, []string{"outcome"}),
		LocatePages: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "locate_pages_total",
			Help: "The total number of listing pages visited by locate sessions",
		}),
		LocateDurations: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "locate_duration_seconds",
			Help:    "The time it takes for a locate session to reach a terminal outcome",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),

		RegionProbes: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "region_probes_total",
			Help: "The total number of join-instance probes issued to resolve regions",
		}),
		RegionProbeErrors: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "region_probe_errors_total",
			Help: "The total number of region probes that failed in transport",
		}),
		RegionProbeDurations: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "region_probe_duration_seconds",
			Help:    "The time it takes to fully resolve a server region",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		RegionGeoFallbacks: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "region_geo_fallbacks_total",
			Help: "The total number of resolutions that fell back to the raw address",
		}),

		ResolverWorkersBusy: promauto.With(registry).NewGauge(prometheus.GaugeOpts{
			Name: "resolver_workers_busy",
			Help: "The number of region resolver workers currently busy",
		}),
		ResolverWorkersAvailable: promauto.With(registry).NewGauge(prometheus.GaugeOpts{
			Name: "resolver_workers_available",
			Help: "The number of region resolver workers currently available",
		}),
		ResolverQueueRejected: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "resolver_queue_rejected_total",
			Help: "The total number of resolutions rejected because the queue was full",
		}),

		RegionCacheSize: promauto.With(registry).NewGauge(prometheus.GaugeOpts{
			Name: "region_cache_size",
			Help: "The number of entries in the region cache",
		}),
		SnapshotStoreSize: promauto.With(registry).NewGauge(prometheus.GaugeOpts{
			Name: "snapshot_store_size",
			Help: "The number of places with a stored scan snapshot",
		}),

		PlatformRequestDurations: promauto.With(registry).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "platform_request_duration_seconds",
			Help:    "The time spent on platform API requests partitioned by endpoint",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),
		PlatformRequestErrors: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "platform_request_errors_total",
			Help: "The total number of failed platform API requests partitioned by endpoint",
		}, []string{"endpoint"}),
	}

	return c
}

func (c *Collector) GetRegistry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) AddObserver(observer Observer) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.observers = append(c.observers, observer)
}

func (c *Collector) Observe(ctx context.Context) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	for _, observer := range c.observers {
		observer.Observe(ctx, c)
	}
}

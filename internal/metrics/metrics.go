package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the engine's prometheus metrics behind a private
// registry so tests can build isolated instances.
type Collector struct {
	reg *prometheus.Registry

	TripsHeld prometheus.Gauge

	StoreSaveErrs prometheus.Counter

	Publishes   prometheus.Counter
	PublishErrs prometheus.Counter
	Retracts    prometheus.Counter

	RoutingRequests  prometheus.Counter
	RoutingFallbacks prometheus.Counter
	ProviderCalls    prometheus.Counter
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		TripsHeld: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tripfolio_trips_held",
			Help: "Number of trips in the local repository.",
		}),
		StoreSaveErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tripfolio_store_save_errors_total",
			Help: "Total failed writes of the trip collection to local storage.",
		}),
		Publishes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tripfolio_remote_publishes_total",
			Help: "Total publish/republish attempts against the remote authority.",
		}),
		PublishErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tripfolio_remote_publish_errors_total",
			Help: "Total publish/republish attempts that failed.",
		}),
		Retracts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tripfolio_remote_retracts_total",
			Help: "Total retract attempts against the remote authority.",
		}),
		RoutingRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tripfolio_routing_requests_total",
			Help: "Total route geometry requests.",
		}),
		RoutingFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tripfolio_routing_fallbacks_total",
			Help: "Total route requests that fell back to straight-line geometry.",
		}),
		ProviderCalls: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tripfolio_routing_provider_calls_total",
			Help: "Total HTTP calls made to the routing provider.",
		}),
	}

	reg.MustRegister(
		c.TripsHeld,
		c.StoreSaveErrs,
		c.Publishes, c.PublishErrs, c.Retracts,
		c.RoutingRequests, c.RoutingFallbacks, c.ProviderCalls,
	)

	return c
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}

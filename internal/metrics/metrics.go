// Package metrics exposes prometheus counters for codec and genetic
// operator activity. All methods are safe on a nil *Collector.
package metrics

import (
	"net/http"

	"genelab/internal/dna"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "genelab"

// Collector owns a private registry so independent instances never collide.
type Collector struct {
	registry *prometheus.Registry

	decodes   *prometheus.CounterVec
	failures  *prometheus.CounterVec
	offspring prometheus.Counter
	mutations prometheus.Counter
	splices   *prometheus.CounterVec
}

// New creates a collector with its own registry.
func New() *Collector {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Collector{
		registry: reg,
		decodes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decode_total",
			Help:      "Genome decode attempts by result",
		}, []string{"result"}),
		failures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decode_failures_total",
			Help:      "Genome decode failures by reason",
		}, []string{"reason"}),
		offspring: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "offspring_total",
			Help:      "Child genomes produced by recombination",
		}),
		mutations: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_total",
			Help:      "Mutation events applied to genes",
		}),
		splices: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "splices_total",
			Help:      "Splice events by kind",
		}, []string{"kind"}),
	}
}

// Registry returns the collector's registry.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// Handler serves the registry in the prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// ObserveDecode records the outcome of one genome decode.
func (c *Collector) ObserveDecode(err error) {
	if c == nil {
		return
	}
	if err == nil {
		c.decodes.WithLabelValues("ok").Inc()
		return
	}
	c.decodes.WithLabelValues("invalid").Inc()
	reason := dna.Reason(err)
	if reason == "" {
		reason = "other"
	}
	c.failures.WithLabelValues(reason).Inc()
}

// ObserveOffspring records one child genome.
func (c *Collector) ObserveOffspring() {
	if c == nil {
		return
	}
	c.offspring.Inc()
}

// ObserveMutations records n mutation events.
func (c *Collector) ObserveMutations(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.mutations.Add(float64(n))
}

// ObserveSplice records one splice event of the given kind.
func (c *Collector) ObserveSplice(kind string) {
	if c == nil {
		return
	}
	c.splices.WithLabelValues(kind).Inc()
}

// Package metrics exports relation store activity as Prometheus metrics.
// A Collector owns its own registry so several stores, or several test
// runs, never share counters.
package metrics

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"

	"github.com/mesh-intelligence/hgraph/internal/memory"
	"github.com/mesh-intelligence/hgraph/pkg/types"
)

const namespace = "hgraph"

var _ memory.Observer = (*Collector)(nil)

// Collector records admitted and rejected relations and the current size of
// each collection. It implements memory.Observer.
type Collector struct {
	registry *prometheus.Registry

	admitted *prometheus.CounterVec
	rejected *prometheus.CounterVec
	entities *prometheus.GaugeVec
}

// NewCollector creates a collector with a private registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Collector{
		registry: reg,
		admitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "relations_admitted_total",
				Help:      "Total number of entities stored, by kind and operation",
			},
			[]string{"kind", "op"},
		),
		rejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "constraint_violations_total",
				Help:      "Total number of relations refused by the validator, by kind and rule",
			},
			[]string{"kind", "rule"},
		),
		entities: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "entities",
				Help:      "Current number of stored entities, by kind",
			},
			[]string{"kind"},
		),
	}
}

// Registry returns the registry the collector's metrics live in.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Admitted implements memory.Observer.
func (c *Collector) Admitted(kind types.Kind, op string) {
	c.admitted.WithLabelValues(string(kind), op).Inc()
}

// Rejected implements memory.Observer.
func (c *Collector) Rejected(kind types.Kind, rule types.Rule) {
	c.rejected.WithLabelValues(string(kind), string(rule)).Inc()
}

// Resized implements memory.Observer.
func (c *Collector) Resized(kind types.Kind, n int) {
	c.entities.WithLabelValues(string(kind)).Set(float64(n))
}

// Sample is one gathered metric value.
type Sample struct {
	Name   string            `json:"name"`
	Labels map[string]string `json:"labels,omitempty"`
	Value  float64           `json:"value"`
}

// Gather returns every counter and gauge sample, sorted by name and then
// label values.
func (c *Collector) Gather() ([]Sample, error) {
	families, err := c.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}
	var out []Sample
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			s := Sample{Name: mf.GetName(), Value: value(mf.GetType(), m)}
			if len(m.GetLabel()) > 0 {
				s.Labels = make(map[string]string, len(m.GetLabel()))
				for _, lp := range m.GetLabel() {
					s.Labels[lp.GetName()] = lp.GetValue()
				}
			}
			out = append(out, s)
		}
	}
	slices.SortStableFunc(out, func(a, b Sample) int {
		if n := strings.Compare(a.Name, b.Name); n != 0 {
			return n
		}
		return strings.Compare(labelString(a.Labels), labelString(b.Labels))
	})
	return out, nil
}

// Print writes the gathered samples in the Prometheus text style, one per
// line.
func (c *Collector) Print(w io.Writer) error {
	samples, err := c.Gather()
	if err != nil {
		return err
	}
	for _, s := range samples {
		if _, err := fmt.Fprintf(w, "%s%s %g\n", s.Name, labelString(s.Labels), s.Value); err != nil {
			return err
		}
	}
	return nil
}

func value(t dto.MetricType, m *dto.Metric) float64 {
	switch t {
	case dto.MetricType_COUNTER:
		return m.GetCounter().GetValue()
	case dto.MetricType_GAUGE:
		return m.GetGauge().GetValue()
	case dto.MetricType_UNTYPED:
		return m.GetUntyped().GetValue()
	}
	return 0
}

func labelString(labels map[string]string) string {
	if len(labels) == 0 {
		return ""
	}
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%q", k, labels[k])
	}
	return "{" + strings.Join(parts, ",") + "}"
}

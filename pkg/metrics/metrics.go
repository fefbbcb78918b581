// Package metrics implements a small in-process metrics registry with
// Prometheus text exposition. The engine registers request counters and
// store-size gauges; nothing here depends on an external metrics backend.
package metrics

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
)

// Counter is a monotonically increasing metric, optionally partitioned by
// label values.
type Counter struct {
	name   string
	help   string
	labels []string

	mu     sync.Mutex
	values map[string]float64
}

// Inc increments the counter by one for the given label values.
func (c *Counter) Inc(labelValues ...string) {
	c.Add(1, labelValues...)
}

// Add increments the counter by delta for the given label values. Negative
// deltas and mismatched label counts are ignored.
func (c *Counter) Add(delta float64, labelValues ...string) {
	if delta < 0 || len(labelValues) != len(c.labels) {
		return
	}
	key := strings.Join(labelValues, "\x00")
	c.mu.Lock()
	c.values[key] += delta
	c.mu.Unlock()
}

// Value returns the current count for the given label values.
func (c *Counter) Value(labelValues ...string) float64 {
	key := strings.Join(labelValues, "\x00")
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[key]
}

// GaugeFunc reports a value computed at scrape time.
type GaugeFunc struct {
	name string
	help string
	fn   func() float64
}

// Registry holds the registered metrics.
type Registry struct {
	mu       sync.Mutex
	counters []*Counter
	gauges   []*GaugeFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// NewCounter registers a counter with the given name, help text, and label
// names.
func (r *Registry) NewCounter(name, help string, labels ...string) *Counter {
	c := &Counter{name: name, help: help, labels: labels, values: make(map[string]float64)}
	r.mu.Lock()
	r.counters = append(r.counters, c)
	r.mu.Unlock()
	return c
}

// NewGaugeFunc registers a gauge whose value is computed at scrape time.
func (r *Registry) NewGaugeFunc(name, help string, fn func() float64) *GaugeFunc {
	g := &GaugeFunc{name: name, help: help, fn: fn}
	r.mu.Lock()
	r.gauges = append(r.gauges, g)
	r.mu.Unlock()
	return g
}

// Expose renders all metrics in the Prometheus text format.
func (r *Registry) Expose() string {
	r.mu.Lock()
	counters := append([]*Counter(nil), r.counters...)
	gauges := append([]*GaugeFunc(nil), r.gauges...)
	r.mu.Unlock()

	var b strings.Builder
	for _, c := range counters {
		fmt.Fprintf(&b, "# HELP %s %s\n", c.name, c.help)
		fmt.Fprintf(&b, "# TYPE %s counter\n", c.name)

		c.mu.Lock()
		keys := make([]string, 0, len(c.values))
		for k := range c.values {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString(c.name)
			if len(c.labels) > 0 {
				parts := strings.Split(k, "\x00")
				pairs := make([]string, len(c.labels))
				for i, label := range c.labels {
					pairs[i] = fmt.Sprintf("%s=%q", label, parts[i])
				}
				fmt.Fprintf(&b, "{%s}", strings.Join(pairs, ","))
			}
			fmt.Fprintf(&b, " %g\n", c.values[k])
		}
		c.mu.Unlock()
	}
	for _, g := range gauges {
		fmt.Fprintf(&b, "# HELP %s %s\n", g.name, g.help)
		fmt.Fprintf(&b, "# TYPE %s gauge\n", g.name)
		fmt.Fprintf(&b, "%s %g\n", g.name, g.fn())
	}
	return b.String()
}

// Handler serves the registry over HTTP in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		_, _ = w.Write([]byte(r.Expose()))
	})
}

package metric

import "github.com/prometheus/client_golang/prometheus"

// RecordCounter reports how many records each collection holds.
type RecordCounter interface {
	RecordCounts() map[string]int
}

// Collector exports record counts as a gauge at scrape time.
type Collector struct {
	source RecordCounter
	desc   *prometheus.Desc
}

// NewCollector creates a collector reading from source.
func NewCollector(source RecordCounter) *Collector {
	return &Collector{
		source: source,
		desc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "store", "records"),
			"Records held per collection.",
			[]string{"collection"}, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for name, n := range c.source.RecordCounts() {
		ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(n), name)
	}
}

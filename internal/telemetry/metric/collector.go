package metric

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yndnr/ota-go/internal/infra/buildinfo"
)

// Collector reports static build information as ota_build_info.
type Collector struct {
	desc *prometheus.Desc
}

// NewCollector creates a build info collector.
func NewCollector() *Collector {
	return &Collector{
		desc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "build_info"),
			"Build information of the ota binary.",
			[]string{"version", "commit", "goversion"}, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	info := buildinfo.Get()
	ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, 1, info.Version, info.Commit, info.GoVersion)
}

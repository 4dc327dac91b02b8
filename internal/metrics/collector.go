package metrics

import (
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/livp123/trainplot/internal/summary"
	"github.com/livp123/trainplot/internal/utils/fileutil"
)

// Collector holds per-series gauges on a private registry so a run can be
// dumped to a node-exporter textfile. Nothing is served over HTTP.
// Collector 在私有注册表上保存每个序列的指标，用于导出 textfile。
type Collector struct {
	registry *prometheus.Registry

	Records         *prometheus.GaugeVec
	FinalStep       *prometheus.GaugeVec
	FinalLoss       *prometheus.GaugeVec
	MinLoss         *prometheus.GaugeVec
	ThresholdStep   *prometheus.GaugeVec
	CumulativeHours *prometheus.GaugeVec
	LossThreshold   prometheus.Gauge
}

// NewCollector registers every gauge on a fresh registry.
// NewCollector 在新的注册表上注册所有指标。
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	labels := []string{"series"}

	return &Collector{
		registry: reg,
		Records: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "trainplot_series_records",
				Help: "Validation records parsed from the log",
			},
			labels,
		),
		FinalStep: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "trainplot_series_final_step",
				Help: "Step of the last validation record",
			},
			labels,
		),
		FinalLoss: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "trainplot_series_final_loss",
				Help: "Validation loss of the last record",
			},
			labels,
		),
		MinLoss: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "trainplot_series_min_loss",
				Help: "Lowest validation loss seen",
			},
			labels,
		),
		ThresholdStep: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "trainplot_series_threshold_step",
				Help: "First step at or below the loss threshold, -1 if never reached",
			},
			labels,
		),
		CumulativeHours: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "trainplot_series_cumulative_hours",
				Help: "Cumulative training time at the last record",
			},
			labels,
		),
		LossThreshold: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "trainplot_loss_threshold",
				Help: "Reference validation loss",
			},
		),
	}
}

// Observe records one summary row per series. Series without records only
// report their record count.
// Observe 为每个序列记录摘要指标。
func (c *Collector) Observe(rows []summary.Row, threshold float64) {
	c.LossThreshold.Set(threshold)
	for _, r := range rows {
		c.Records.WithLabelValues(r.Label).Set(float64(r.Records))
		if r.Records == 0 {
			continue
		}
		c.FinalStep.WithLabelValues(r.Label).Set(float64(r.FinalStep))
		c.FinalLoss.WithLabelValues(r.Label).Set(r.FinalLoss)
		c.MinLoss.WithLabelValues(r.Label).Set(r.MinLoss)
		c.CumulativeHours.WithLabelValues(r.Label).Set(r.FinalHours)

		step := -1.0
		if r.Reached {
			step = float64(r.ThresholdStep)
		}
		c.ThresholdStep.WithLabelValues(r.Label).Set(step)
	}
}

// Registry exposes the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// WriteTextfile dumps the registry to path in the text exposition format.
// WriteTextfile 以文本格式将指标写入文件。
func (c *Collector) WriteTextfile(path string) error {
	if err := fileutil.EnsureDir(filepath.Dir(filepath.Clean(path))); err != nil {
		return err
	}
	return prometheus.WriteToTextfile(path, c.registry)
}

package commands

import (
	"context"
	stderrors "errors"

	"github.com/spf13/cobra"

	"github.com/livp123/trainplot/internal/chart"
	"github.com/livp123/trainplot/internal/config"
	"github.com/livp123/trainplot/internal/metrics"
	"github.com/livp123/trainplot/internal/runtime"
	"github.com/livp123/trainplot/internal/summary"
	"github.com/livp123/trainplot/internal/trainlog"
	"github.com/livp123/trainplot/internal/utils/logger"
	"github.com/livp123/trainplot/pkg/errors"
)

// configPath resolves the configuration file path. explicit is true when it
// came from --config.
// configPath 解析配置文件路径，来自 --config 时 explicit 为 true。
func configPath() (path string, explicit bool) {
	if runtime.ConfigPath != "" {
		return runtime.ConfigPath, true
	}
	return config.DefaultConfigPath, false
}

// loadConfig loads the config file. A missing default file falls back to
// defaults; a missing explicit file is an error.
// loadConfig 加载配置文件，默认路径不存在时使用默认值，显式指定的文件不存在则报错。
func loadConfig() (*config.Config, error) {
	path, explicit := configPath()
	cfg, err := config.LoadConfig(path)
	if err != nil {
		if !explicit && stderrors.Is(err, errors.ErrConfigNotFound) {
			return config.Defaults(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// seriesFlags are the flags shared by plot and summary.
// seriesFlags 是 plot 和 summary 共用的标志。
type seriesFlags struct {
	labels      []string
	threshold   float64
	timeSource  string
	filter      string
	metricsFile string
}

func (f *seriesFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.labels, "label", "l", nil, "Legend label for each log file, in order (repeat per file)")
	cmd.Flags().Float64Var(&f.threshold, "threshold", config.DefaultLossThreshold, "Reference validation loss")
	cmd.Flags().StringVar(&f.timeSource, "time-source", config.DefaultTimeSource, "Cumulative time source: step_avg or train_time")
	cmd.Flags().StringVar(&f.filter, "filter", "", `Record filter expression, e.g. "step >= 500"`)
	cmd.Flags().StringVar(&f.metricsFile, "metrics-file", "", "Write per-series gauges to a Prometheus textfile")
}

// apply overrides cfg with every flag set on the command line.
// apply 用命令行中显式设置的标志覆盖配置。
func (f *seriesFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("threshold") {
		cfg.LossThreshold = f.threshold
	}
	if cmd.Flags().Changed("time-source") {
		cfg.TimeSource = f.timeSource
	}
	if cmd.Flags().Changed("filter") {
		cfg.Filter = f.filter
	}
	if cmd.Flags().Changed("metrics-file") {
		cfg.MetricsFile = f.metricsFile
	}
}

// resolveSeries picks the series from positional args when given, otherwise
// from the config file.
// resolveSeries 优先使用位置参数中的日志文件，否则使用配置文件中的序列。
func (f *seriesFlags) resolveSeries(cfg *config.Config, args []string) ([]chart.SeriesSpec, error) {
	if len(args) > 0 || len(f.labels) > 0 {
		return chart.Pair(args, f.labels)
	}
	if len(cfg.Series) == 0 {
		return nil, errors.ErrNoSeries
	}
	specs := make([]chart.SeriesSpec, len(cfg.Series))
	for i, s := range cfg.Series {
		specs[i] = chart.SeriesSpec{Path: s.Path, Label: s.Label}
	}
	return specs, nil
}

// prepare loads and overrides the config, then builds the series list and parser.
// prepare 加载并覆盖配置，然后构建序列列表和解析器。
func (f *seriesFlags) prepare(cmd *cobra.Command, args []string, extra func(*config.Config)) (*config.Config, []chart.SeriesSpec, *trainlog.Parser, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	f.apply(cmd, cfg)
	if extra != nil {
		extra(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}

	specs, err := f.resolveSeries(cfg, args)
	if err != nil {
		return nil, nil, nil, err
	}

	ts, err := trainlog.ParseTimeSource(cfg.TimeSource)
	if err != nil {
		return nil, nil, nil, err
	}
	parser, err := trainlog.NewParser(trainlog.Options{
		TimeSource: ts,
		Filter:     cfg.Filter,
		Logger:     logger.Get(cmd.Context()),
	})
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, specs, parser, nil
}

// writeMetrics dumps per-series gauges when a metrics file is configured.
// writeMetrics 在配置了指标文件时导出每个序列的指标。
func writeMetrics(ctx context.Context, cfg *config.Config, rows []summary.Row) error {
	if cfg.MetricsFile == "" {
		return nil
	}
	c := metrics.NewCollector()
	c.Observe(rows, cfg.LossThreshold)
	if err := c.WriteTextfile(cfg.MetricsFile); err != nil {
		return errors.ClassifyFSError(cfg.MetricsFile, err)
	}
	logger.Get(ctx).Infof("[METRICS] Wrote %s", cfg.MetricsFile)
	return nil
}

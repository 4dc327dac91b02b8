package config

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/livp123/trainplot/internal/trainlog"
	"github.com/livp123/trainplot/internal/utils/fileutil"
	"github.com/livp123/trainplot/internal/utils/logger"
	"github.com/livp123/trainplot/pkg/errors"
)

// SeriesConfig pairs a log file with its legend label.
// SeriesConfig 将日志文件与图例标签配对。
type SeriesConfig struct {
	Path  string `yaml:"path"`
	Label string `yaml:"label"`
}

// Config is the full trainplot configuration.
// Config 是 trainplot 的完整配置。
type Config struct {
	OutputDir     string               `yaml:"output_dir"`
	LossThreshold float64              `yaml:"loss_threshold"`
	DPI           int                  `yaml:"dpi"`
	WidthIn       float64              `yaml:"width_in"`
	HeightIn      float64              `yaml:"height_in"`
	TimeSource    string               `yaml:"time_source"`
	Filter        string               `yaml:"filter"`
	MetricsFile   string               `yaml:"metrics_file"`
	Series        []SeriesConfig       `yaml:"series"`
	Logging       logger.LoggingConfig `yaml:"logging"`
}

// DefaultConfigTemplate is written by `trainplot init`. It must stay in sync with DefaultConfig.
// DefaultConfigTemplate 由 `trainplot init` 写入，需要与 DefaultConfig 保持一致。
const DefaultConfigTemplate = `# trainplot configuration / trainplot 配置文件

# Directory for validation_vs_steps.png and validation_vs_time.png.
# 图片输出目录。
output_dir: "plots"

# Reference validation loss drawn as a horizontal line on both charts.
# 两张图上绘制的参考验证损失水平线。
loss_threshold: 3.28

# Figure size in inches and output resolution.
# 图像尺寸（英寸）和输出分辨率。
dpi: 300
width_in: 8
height_in: 6

# How cumulative time is derived: "step_avg" (step_avg * step, an approximation)
# or "train_time" (the literal train_time field).
# 累计时间来源："step_avg"（step_avg * step，近似值）或 "train_time"（日志中的 train_time 字段）。
time_source: "step_avg"

# Optional record filter, e.g. "step >= 500 && loss < 4".
# Variables: step, total, loss, train_time_ms, step_avg_ms, cumulative_ms.
# 可选的记录过滤表达式。
filter: ""

# Optional Prometheus textfile with per-series summary gauges.
# 可选的 Prometheus textfile 输出路径。
metrics_file: ""

# Log files to plot, in legend order.
# 要绘制的日志文件，按图例顺序排列。
series:
  - path: "records/110824_CastBf16/a833bed8-2fa8-4cfe-af05-58c1cc48bc30.txt"
    label: "Previous Record"
  - path: "records/110924_Unet/b096c044-a704-4779-9ada-290bdac74191.txt"
    label: "Attention UNet"

logging:
  # Also write logs to a rotated file.
  # 同时写入轮转日志文件。
  enabled: false
  level: "info"
  path: ""
  max_size: 10
  max_backups: 3
  max_age: 7
  compress: false
`

// Defaults returns a configuration with every default applied and no series.
// Defaults 返回应用了所有默认值且不含序列的配置。
func Defaults() *Config {
	return &Config{
		OutputDir:     DefaultOutputDir,
		LossThreshold: DefaultLossThreshold,
		DPI:           DefaultDPI,
		WidthIn:       DefaultWidthIn,
		HeightIn:      DefaultHeightIn,
		TimeSource:    DefaultTimeSource,
		Logging: logger.LoggingConfig{
			Enabled:    false,
			Level:      "info",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     7,
		},
	}
}

// DefaultConfig returns Defaults plus the two example record series.
// DefaultConfig 返回默认值加上两个示例记录序列。
func DefaultConfig() *Config {
	cfg := Defaults()
	cfg.Series = []SeriesConfig{
		{Path: "records/110824_CastBf16/a833bed8-2fa8-4cfe-af05-58c1cc48bc30.txt", Label: "Previous Record"},
		{Path: "records/110924_Unet/b096c044-a704-4779-9ada-290bdac74191.txt", Label: "Attention UNet"},
	}
	return cfg
}

// LoadConfig reads path on top of Defaults and validates the result.
// LoadConfig 在默认值基础上读取配置文件并校验。
func LoadConfig(path string) (*Config, error) {
	safePath := filepath.Clean(path) // Sanitize path to prevent directory traversal
	data, err := os.ReadFile(safePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", errors.ErrConfigNotFound, path)
		}
		return nil, errors.ClassifyFSError(path, err)
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errors.ErrConfigInvalid, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes cfg as YAML, atomically replacing path.
// SaveConfig 以 YAML 格式原子写入配置。
func SaveConfig(path string, cfg *Config) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return WriteFile(path, buf.Bytes())
}

// WriteFile writes raw config bytes to path, creating the parent directory.
// WriteFile 将配置内容写入文件，必要时创建父目录。
func WriteFile(path string, data []byte) error {
	safePath := filepath.Clean(path)
	if err := fileutil.EnsureDir(filepath.Dir(safePath)); err != nil {
		return errors.ClassifyFSError(path, err)
	}
	return fileutil.AtomicWriteFile(safePath, data, 0644)
}

// Validate checks value ranges. Series may be empty here; commands that
// need series check that themselves.
// Validate 检查取值范围，序列可以为空。
func (c *Config) Validate() error {
	if strings.TrimSpace(c.OutputDir) == "" {
		return errors.NewConfigError("output_dir", c.OutputDir)
	}
	if math.IsNaN(c.LossThreshold) || math.IsInf(c.LossThreshold, 0) {
		return errors.NewConfigError("loss_threshold", c.LossThreshold)
	}
	if c.DPI <= 0 {
		return errors.NewConfigError("dpi", c.DPI)
	}
	if !(c.WidthIn > 0) {
		return errors.NewConfigError("width_in", c.WidthIn)
	}
	if !(c.HeightIn > 0) {
		return errors.NewConfigError("height_in", c.HeightIn)
	}
	if _, err := trainlog.ParseTimeSource(c.TimeSource); err != nil {
		return err
	}
	if _, err := trainlog.CompileFilter(c.Filter); err != nil {
		return err
	}
	for i, s := range c.Series {
		if strings.TrimSpace(s.Path) == "" {
			return errors.NewConfigError(fmt.Sprintf("series[%d].path", i), s.Path)
		}
		if strings.TrimSpace(s.Label) == "" {
			return errors.NewConfigError(fmt.Sprintf("series[%d].label", i), s.Label)
		}
	}
	return nil
}

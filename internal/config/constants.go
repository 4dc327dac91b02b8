package config

const (
	// DefaultConfigPath is where trainplot looks for its configuration file.
	// DefaultConfigPath 是 trainplot 配置文件的默认位置。
	DefaultConfigPath = "trainplot.yaml"

	// DefaultOutputDir is where images are written when nothing else is given.
	// DefaultOutputDir 是默认的图片输出目录。
	DefaultOutputDir = "plots"

	// DefaultLossThreshold is the reference validation loss drawn on both charts.
	// DefaultLossThreshold 是两张图上绘制的参考验证损失。
	DefaultLossThreshold = 3.28

	// Figure geometry. 8x6 inches at 300 DPI is 2400x1800 pixels.
	// 图像尺寸，8x6 英寸 300 DPI 即 2400x1800 像素。
	DefaultDPI      = 300
	DefaultWidthIn  = 8.0
	DefaultHeightIn = 6.0

	// DefaultTimeSource keeps the step_avg * step approximation.
	DefaultTimeSource = "step_avg"
)

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/livp123/trainplot/internal/chart"
	"github.com/livp123/trainplot/internal/config"
	"github.com/livp123/trainplot/internal/summary"
)

func newPlotCmd() *cobra.Command {
	var (
		flags     seriesFlags
		outputDir string
		dpi       int
	)

	cmd := &cobra.Command{
		Use:   "plot [log files...]",
		Short: "Render validation loss charts",
		// Short: 绘制验证损失图
		Long: `Render validation_vs_steps.png and validation_vs_time.png.
Log files come from the arguments (one --label per file) or from the config file.
绘制两张验证损失图，日志文件来自参数（每个文件一个 --label）或配置文件。`,
		Example: `  trainplot plot run_a.txt run_b.txt -l "Previous Record" -l "Attention UNet"
  trainplot plot -c trainplot.yaml --threshold 3.28 -o plots`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, specs, parser, err := flags.prepare(cmd, args, func(cfg *config.Config) {
				if cmd.Flags().Changed("output") {
					cfg.OutputDir = outputDir
				}
				if cmd.Flags().Changed("dpi") {
					cfg.DPI = dpi
				}
			})
			if err != nil {
				return err
			}

			res, err := chart.Render(cmd.Context(), chart.Options{
				Series:        specs,
				OutputDir:     cfg.OutputDir,
				LossThreshold: cfg.LossThreshold,
				WidthIn:       cfg.WidthIn,
				HeightIn:      cfg.HeightIn,
				DPI:           cfg.DPI,
				Parser:        parser,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, f := range res.Files {
				fmt.Fprintf(out, "✅ Wrote %s\n", f)
			}
			return writeMetrics(cmd.Context(), cfg, summary.Build(res.Series, cfg.LossThreshold))
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&outputDir, "output", "o", config.DefaultOutputDir, "Output directory for the charts")
	cmd.Flags().IntVar(&dpi, "dpi", config.DefaultDPI, "Output resolution in dots per inch")
	return cmd
}

package commands

import (
	"github.com/spf13/cobra"

	"github.com/livp123/trainplot/internal/chart"
	"github.com/livp123/trainplot/internal/summary"
)

func newSummaryCmd() *cobra.Command {
	var flags seriesFlags

	cmd := &cobra.Command{
		Use:   "summary [log files...]",
		Short: "Print per-series validation statistics",
		// Short: 打印每个序列的验证统计
		Long: `Parse the logs and print final loss, minimum loss and when each run
first reached the loss threshold. No images are written.
解析日志并打印最终损失、最小损失以及首次达到阈值的步数，不生成图片。`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, specs, parser, err := flags.prepare(cmd, args, nil)
			if err != nil {
				return err
			}

			series, err := chart.Load(cmd.Context(), specs, parser)
			if err != nil {
				return err
			}

			rows := summary.Build(series, cfg.LossThreshold)
			if err := summary.Render(cmd.OutOrStdout(), rows, cfg.LossThreshold); err != nil {
				return err
			}
			return writeMetrics(cmd.Context(), cfg, rows)
		},
	}

	flags.register(cmd)
	return cmd
}

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/livp123/trainplot/internal/config"
	"github.com/livp123/trainplot/internal/runtime"
	"github.com/livp123/trainplot/internal/utils/logger"
)

// RootCmd is the command tree used by Execute.
var RootCmd = NewRootCmd()

// NewRootCmd builds a fresh command tree. Tests build their own so flag state
// never leaks between runs.
// NewRootCmd 构建新的命令树，测试中各自构建以避免标志状态泄漏。
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "trainplot",
		Short: "Plot validation loss curves from training logs",
		// Short: 根据训练日志绘制验证损失曲线
		Long: `trainplot reads training logs, extracts lines of the form

  step:<N>/<TOTAL> val_loss:<FLOAT> train_time:<N>ms step_avg:<FLOAT>ms

and renders validation loss against steps and against training time.
trainplot 读取训练日志，提取验证行，并绘制验证损失随步数和训练时间变化的曲线。`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load configuration to get logging settings
			// 加载配置以获取日志设置
			logCfg := config.Defaults().Logging
			if cfg, err := loadConfig(); err == nil {
				logCfg = cfg.Logging
			}
			if runtime.LogLevel != "" {
				logCfg.Level = runtime.LogLevel
			}
			logger.Init(logCfg)

			// 将 Logger 注入 Context
			ctx := logger.WithContext(cmd.Context(), logger.Get(nil))
			cmd.SetContext(ctx)
		},
	}

	root.PersistentFlags().StringVarP(&runtime.ConfigPath, "config", "c", "", fmt.Sprintf("Path to configuration file (default: %s)", config.DefaultConfigPath))
	root.PersistentFlags().StringVar(&runtime.LogLevel, "log-level", "", "Log level: debug, info, warn, error")

	root.AddCommand(newPlotCmd())
	root.AddCommand(newSummaryCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newVersionCmd())

	root.CompletionOptions.DisableDescriptions = true
	return root
}

func Execute() {
	err := RootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

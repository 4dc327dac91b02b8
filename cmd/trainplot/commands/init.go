package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/livp123/trainplot/internal/config"
	"github.com/livp123/trainplot/internal/utils/fileutil"
	"github.com/livp123/trainplot/internal/utils/logger"
	"github.com/livp123/trainplot/pkg/errors"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		// Short: 生成默认配置文件
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := configPath()
			if fileutil.Exists(path) && !force {
				return fmt.Errorf("%w: %s (use --force to overwrite)", errors.ErrConfigExists, path)
			}
			if err := config.WriteFile(path, []byte(config.DefaultConfigTemplate)); err != nil {
				return err
			}
			logger.Get(cmd.Context()).Infof("[CONFIG] Wrote default config to %s", path)
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Created %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")
	return cmd
}

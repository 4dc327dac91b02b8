package commands

import (
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/livp123/trainplot/internal/config"
	"github.com/livp123/trainplot/internal/utils/fileutil"
	"github.com/livp123/trainplot/pkg/errors"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration file and its log files",
		// Short: 检查配置文件及其日志文件
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := configPath()
			cfg, err := config.LoadConfig(path)
			if err != nil {
				return err
			}
			for _, s := range cfg.Series {
				if !fileutil.Exists(s.Path) {
					return errors.NewFileError(s.Path, fs.ErrNotExist)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ %s is valid (%d series)\n", path, len(cfg.Series))
			return nil
		},
	}
}

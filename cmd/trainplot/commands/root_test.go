package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/livp123/trainplot/internal/chart"
	"github.com/livp123/trainplot/pkg/errors"
)

const logA = `step:0/3000 val_loss:10.8258 train_time:0ms step_avg:0.00ms
step:125/3000 loss:4.1 train_time:23000ms step_avg:184.00ms
step:125/3000 val_loss:4.3935 train_time:23000ms step_avg:184.00ms
step:3000/3000 val_loss:3.2756 train_time:552000ms step_avg:184.00ms
`

const logB = `step:0/2000 val_loss:10.8258 train_time:0ms step_avg:0.00ms
step:2000/2000 val_loss:3.3101 train_time:400000ms step_avg:200.00ms
`

// executeCommand executes a cobra command and returns output.
// executeCommand 执行 cobra 命令并返回输出。
func executeCommand(cmd *cobra.Command, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// writeLogs creates two sample logs in a temp dir.
// writeLogs 在临时目录中创建两个示例日志。
func writeLogs(t *testing.T) (dir, a, b string) {
	t.Helper()
	dir = t.TempDir()
	a = filepath.Join(dir, "a.txt")
	b = filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(a, []byte(logA), 0644))
	require.NoError(t, os.WriteFile(b, []byte(logB), 0644))
	return dir, a, b
}

// writeConfig writes a config referencing the sample logs.
// writeConfig 写入引用示例日志的配置。
func writeConfig(t *testing.T, dir, a, b string) string {
	t.Helper()
	path := filepath.Join(dir, "trainplot.yaml")
	data := fmt.Sprintf(`output_dir: %q
loss_threshold: 3.28
dpi: 20
metrics_file: %q
series:
  - path: %q
    label: "Previous Record"
  - path: %q
    label: "Attention UNet"
`, filepath.Join(dir, "out"), filepath.Join(dir, "metrics", "trainplot.prom"), a, b)
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

// TestRootCommandHelp tests root command help output.
// TestRootCommandHelp 测试根命令帮助输出。
func TestRootCommandHelp(t *testing.T) {
	output, err := executeCommand(NewRootCmd(), "--help")
	assert.NoError(t, err)
	assert.Contains(t, output, "Usage:")
	assert.Contains(t, output, "Available Commands:")
	assert.Contains(t, output, "plot")
	assert.Contains(t, output, "summary")
}

// TestInvalidCommand tests invalid command handling.
// TestInvalidCommand 测试无效命令处理。
func TestInvalidCommand(t *testing.T) {
	_, err := executeCommand(NewRootCmd(), "invalid-command")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	output, err := executeCommand(NewRootCmd(), "version")
	require.NoError(t, err)
	assert.Contains(t, output, "trainplot dev")
}

// TestPlotCommand_Args tests plotting files given on the command line
// TestPlotCommand_Args 测试使用命令行参数绘图
func TestPlotCommand_Args(t *testing.T) {
	dir, a, b := writeLogs(t)
	out := filepath.Join(dir, "plots")

	output, err := executeCommand(NewRootCmd(), "plot", a, b,
		"-l", "Previous Record", "-l", "Attention UNet",
		"-o", out, "--dpi", "20")
	require.NoError(t, err)

	assert.Contains(t, output, chart.StepsImage)
	assert.Contains(t, output, chart.TimeImage)
	assert.FileExists(t, filepath.Join(out, chart.StepsImage))
	assert.FileExists(t, filepath.Join(out, chart.TimeImage))
}

// TestPlotCommand_Mismatch tests that unequal files and labels fail
// TestPlotCommand_Mismatch 测试文件与标签数量不一致时报错
func TestPlotCommand_Mismatch(t *testing.T) {
	dir, a, b := writeLogs(t)
	out := filepath.Join(dir, "plots")

	_, err := executeCommand(NewRootCmd(), "plot", a, b, "-l", "only one", "-o", out)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrSeriesMismatch)
	assert.NoDirExists(t, out)
}

// TestPlotCommand_NoSeries tests that a run without series is rejected
// TestPlotCommand_NoSeries 测试没有序列时报错
func TestPlotCommand_NoSeries(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("dpi: 20\n"), 0644))

	_, err := executeCommand(NewRootCmd(), "plot", "-c", cfg)
	assert.ErrorIs(t, err, errors.ErrNoSeries)
}

// TestPlotCommand_Config tests plotting from a config file with a metrics textfile
// TestPlotCommand_Config 测试使用配置文件绘图并输出指标文件
func TestPlotCommand_Config(t *testing.T) {
	dir, a, b := writeLogs(t)
	cfg := writeConfig(t, dir, a, b)

	_, err := executeCommand(NewRootCmd(), "plot", "--config", cfg)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "out", chart.StepsImage))
	assert.FileExists(t, filepath.Join(dir, "out", chart.TimeImage))

	data, err := os.ReadFile(filepath.Join(dir, "metrics", "trainplot.prom"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `trainplot_series_records{series="Previous Record"} 3`)
	assert.Contains(t, string(data), `trainplot_series_threshold_step{series="Attention UNet"} -1`)
}

// TestPlotCommand_MissingFile tests that a missing log aborts the run
// TestPlotCommand_MissingFile 测试日志文件缺失时终止
func TestPlotCommand_MissingFile(t *testing.T) {
	dir, a, _ := writeLogs(t)
	out := filepath.Join(dir, "plots")

	_, err := executeCommand(NewRootCmd(), "plot", a, filepath.Join(dir, "missing.txt"),
		"-l", "A", "-l", "B", "-o", out, "--dpi", "20")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrFileNotFound)
	assert.NoFileExists(t, filepath.Join(out, chart.StepsImage))
}

func TestPlotCommand_BadFilter(t *testing.T) {
	_, a, _ := writeLogs(t)
	_, err := executeCommand(NewRootCmd(), "plot", a, "-l", "A", "--filter", "step >=")
	assert.ErrorIs(t, err, errors.ErrInvalidExpression)
}

// TestSummaryCommand tests the summary table
// TestSummaryCommand 测试摘要表格
func TestSummaryCommand(t *testing.T) {
	_, a, b := writeLogs(t)

	output, err := executeCommand(NewRootCmd(), "summary", a, b,
		"-l", "Previous Record", "-l", "Attention UNet")
	require.NoError(t, err)
	assert.Contains(t, output, "Validation summary")
	assert.Contains(t, output, "Previous Record")
	assert.Contains(t, output, "step 3000")
	assert.Contains(t, output, "not reached")
}

func TestSummaryCommand_Filter(t *testing.T) {
	_, a, _ := writeLogs(t)

	output, err := executeCommand(NewRootCmd(), "summary", a, "-l", "A", "--filter", "step > 0")
	require.NoError(t, err)
	assert.Contains(t, output, "A")
	assert.Contains(t, output, "step 3000")
}

// TestInitCommand tests writing the default config
// TestInitCommand 测试生成默认配置
func TestInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "trainplot.yaml")

	output, err := executeCommand(NewRootCmd(), "init", "-c", path)
	require.NoError(t, err)
	assert.Contains(t, output, path)
	assert.FileExists(t, path)

	_, err = executeCommand(NewRootCmd(), "init", "-c", path)
	assert.ErrorIs(t, err, errors.ErrConfigExists)

	_, err = executeCommand(NewRootCmd(), "init", "-c", path, "--force")
	assert.NoError(t, err)
}

// TestValidateCommand tests config validation
// TestValidateCommand 测试配置校验
func TestValidateCommand(t *testing.T) {
	dir, a, b := writeLogs(t)
	cfg := writeConfig(t, dir, a, b)

	output, err := executeCommand(NewRootCmd(), "validate", "-c", cfg)
	require.NoError(t, err)
	assert.Contains(t, output, "2 series")

	require.NoError(t, os.Remove(b))
	_, err = executeCommand(NewRootCmd(), "validate", "-c", cfg)
	assert.ErrorIs(t, err, errors.ErrFileNotFound)

	_, err = executeCommand(NewRootCmd(), "validate", "-c", filepath.Join(dir, "nope.yaml"))
	assert.ErrorIs(t, err, errors.ErrConfigNotFound)
}

package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/livp123/trainplot/internal/summary"
)

func rows() []summary.Row {
	return []summary.Row{
		{
			Label: "Previous Record", Records: 3, FinalStep: 3000, FinalLoss: 3.27,
			MinLoss: 3.27, Reached: true, ThresholdStep: 3000, FinalHours: 1,
		},
		{
			Label: "Attention UNet", Records: 2, FinalStep: 2000, FinalLoss: 3.31,
			MinLoss: 3.31, FinalHours: 0.5,
		},
		{Label: "Broken"},
	}
}

// TestCollector_Observe tests gauge values per series
// TestCollector_Observe 测试每个序列的指标值
func TestCollector_Observe(t *testing.T) {
	c := NewCollector()
	c.Observe(rows(), 3.28)

	assert.Equal(t, 3.28, testutil.ToFloat64(c.LossThreshold))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.Records.WithLabelValues("Previous Record")))
	assert.Equal(t, 3000.0, testutil.ToFloat64(c.ThresholdStep.WithLabelValues("Previous Record")))
	assert.Equal(t, -1.0, testutil.ToFloat64(c.ThresholdStep.WithLabelValues("Attention UNet")))
	assert.Equal(t, 3.31, testutil.ToFloat64(c.FinalLoss.WithLabelValues("Attention UNet")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.Records.WithLabelValues("Broken")))

	// Empty series only report the record count.
	// 空序列只记录数量。
	assert.Equal(t, 2, testutil.CollectAndCount(c.FinalLoss))
}

// TestCollector_WriteTextfile tests the textfile output
// TestCollector_WriteTextfile 测试 textfile 输出
func TestCollector_WriteTextfile(t *testing.T) {
	c := NewCollector()
	c.Observe(rows(), 3.28)

	path := filepath.Join(t.TempDir(), "textfile", "trainplot.prom")
	require.NoError(t, c.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "# TYPE trainplot_series_records gauge")
	assert.Contains(t, out, `trainplot_series_min_loss{series="Previous Record"} 3.27`)
	assert.Contains(t, out, `trainplot_series_threshold_step{series="Attention UNet"} -1`)
	assert.Contains(t, out, "trainplot_loss_threshold 3.28")
}

package trainlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSeries() Series {
	return Series{
		Source: "run.log",
		Records: []Record{
			{Step: 0, ValLoss: 10.8, StepAvgMs: 0},
			{Step: 100, ValLoss: 3.5, StepAvgMs: 200, CumulativeMs: 20000},
			{Step: 200, ValLoss: 3.27, StepAvgMs: 200, CumulativeMs: 40000},
			{Step: 300, ValLoss: 3.27, StepAvgMs: 200, CumulativeMs: 60000},
			{Step: 400, ValLoss: 3.29, StepAvgMs: 200, CumulativeMs: 80000},
		},
	}
}

func TestSeries_Last(t *testing.T) {
	r, ok := sampleSeries().Last()
	require.True(t, ok)
	assert.Equal(t, int64(400), r.Step)

	_, ok = Series{}.Last()
	assert.False(t, ok)
}

// TestSeries_MinLoss tests that ties keep the earliest record
// TestSeries_MinLoss 测试并列时保留最早的记录
func TestSeries_MinLoss(t *testing.T) {
	r, ok := sampleSeries().MinLoss()
	require.True(t, ok)
	assert.Equal(t, int64(200), r.Step)

	_, ok = Series{}.MinLoss()
	assert.False(t, ok)
}

func TestSeries_FirstBelow(t *testing.T) {
	s := sampleSeries()

	r, ok := s.FirstBelow(3.28)
	require.True(t, ok)
	assert.Equal(t, int64(200), r.Step)

	// Inclusive threshold
	// 阈值包含等于
	r, ok = s.FirstBelow(3.5)
	require.True(t, ok)
	assert.Equal(t, int64(100), r.Step)

	_, ok = s.FirstBelow(1.0)
	assert.False(t, ok)
}

func TestSeries_Filter(t *testing.T) {
	s := sampleSeries()
	out := s.Filter(func(r Record) bool { return r.Step%200 == 0 })

	assert.Equal(t, []float64{0, 200, 400}, out.Steps())
	assert.Equal(t, "run.log", out.Source)
	// 原序列不变
	assert.Equal(t, 5, s.Len())
}

// TestSeries_ColumnsEqualLength tests that the projected columns stay aligned
// TestSeries_ColumnsEqualLength 测试投影出的列长度一致
func TestSeries_ColumnsEqualLength(t *testing.T) {
	s := sampleSeries()
	assert.Len(t, s.Steps(), s.Len())
	assert.Len(t, s.Losses(), s.Len())
	assert.Len(t, s.CumulativeTimes(), s.Len())
	assert.Equal(t, []float64{0, 20000, 40000, 60000, 80000}, s.CumulativeTimes())
}

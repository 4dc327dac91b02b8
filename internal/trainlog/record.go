package trainlog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/livp123/trainplot/pkg/errors"
)

// Record is one matched validation line.
// Record 表示一条匹配成功的验证日志行。
type Record struct {
	Step         int64   `json:"step" yaml:"step"`
	TotalSteps   int64   `json:"total_steps" yaml:"total_steps"`
	ValLoss      float64 `json:"val_loss" yaml:"val_loss"`
	TrainTimeMs  int64   `json:"train_time_ms" yaml:"train_time_ms"`
	StepAvgMs    float64 `json:"step_avg_ms" yaml:"step_avg_ms"`
	CumulativeMs float64 `json:"cumulative_ms" yaml:"cumulative_ms"` // depends on TimeSource
}

// CumulativeHours returns CumulativeMs in hours.
func (r Record) CumulativeHours() float64 {
	return r.CumulativeMs / MsPerHour
}

// MsPerHour converts milliseconds to hours.
const MsPerHour = 1000 * 60 * 60

// TimeSource selects how cumulative time is derived from a line.
// TimeSource 决定累计时间的计算方式。
type TimeSource string

const (
	// TimeSourceStepAvg approximates elapsed time as step_avg * step.
	// This is the default; it is not a running sum of real step times.
	TimeSourceStepAvg TimeSource = "step_avg"
	// TimeSourceTrainTime uses the literal train_time field.
	TimeSourceTrainTime TimeSource = "train_time"
)

// ParseTimeSource validates s. An empty string selects TimeSourceStepAvg.
// ParseTimeSource 校验时间来源，空字符串使用默认值。
func ParseTimeSource(s string) (TimeSource, error) {
	switch TimeSource(strings.ToLower(strings.TrimSpace(s))) {
	case "", TimeSourceStepAvg:
		return TimeSourceStepAvg, nil
	case TimeSourceTrainTime:
		return TimeSourceTrainTime, nil
	default:
		return "", errors.NewTimeSourceError(s)
	}
}

func (ts TimeSource) cumulative(step int64, trainTimeMs int64, stepAvgMs float64) float64 {
	if ts == TimeSourceTrainTime {
		return float64(trainTimeMs)
	}
	return stepAvgMs * float64(step)
}

// Format renders r back into the log line shape that Pattern matches.
// Format 将记录重新格式化为可被 Pattern 匹配的日志行。
func Format(r Record) string {
	return fmt.Sprintf("step:%d/%d val_loss:%s train_time:%dms step_avg:%sms",
		r.Step,
		r.TotalSteps,
		strconv.FormatFloat(r.ValLoss, 'f', -1, 64),
		r.TrainTimeMs,
		strconv.FormatFloat(r.StepAvgMs, 'f', -1, 64),
	)
}

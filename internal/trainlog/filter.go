package trainlog

import (
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"go.uber.org/zap"

	"github.com/livp123/trainplot/pkg/errors"
)

// FilterEnv is the environment a filter expression sees.
// FilterEnv 是过滤表达式可以访问的变量。
type FilterEnv struct {
	Step         int64   `expr:"step"`
	Total        int64   `expr:"total"`
	Loss         float64 `expr:"loss"`
	TrainTimeMs  int64   `expr:"train_time_ms"`
	StepAvgMs    float64 `expr:"step_avg_ms"`
	CumulativeMs float64 `expr:"cumulative_ms"`
}

// Filter is a compiled record predicate such as `step >= 500 && loss < 4`.
// A nil *Filter accepts every record.
type Filter struct {
	Source  string
	program *vm.Program
}

// CompileFilter compiles src. An empty src yields a nil filter.
// CompileFilter 编译过滤表达式，空表达式返回 nil。
func CompileFilter(src string) (*Filter, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, nil
	}

	program, err := expr.Compile(src, expr.Env(FilterEnv{}), expr.AsBool())
	if err != nil {
		return nil, errors.NewExpressionError(src, err)
	}
	return &Filter{Source: src, program: program}, nil
}

// Match reports whether r passes the filter. Evaluation errors reject the record.
// Match 判断记录是否通过过滤，求值出错时视为不通过。
func (f *Filter) Match(r Record, log *zap.SugaredLogger) bool {
	if f == nil {
		return true
	}

	out, err := expr.Run(f.program, FilterEnv{
		Step:         r.Step,
		Total:        r.TotalSteps,
		Loss:         r.ValLoss,
		TrainTimeMs:  r.TrainTimeMs,
		StepAvgMs:    r.StepAvgMs,
		CumulativeMs: r.CumulativeMs,
	})
	if err != nil {
		if log != nil {
			log.Debugf("[FILTER] %q failed at step %d: %v", f.Source, r.Step, err)
		}
		return false
	}

	ok, _ := out.(bool)
	return ok
}

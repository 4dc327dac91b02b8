package trainlog

import (
	"regexp"
	"strconv"

	"go.uber.org/zap"

	"github.com/livp123/trainplot/internal/utils/logger"
)

// Pattern matches a validation progress line. It is anchored at the start of the
// line only; anything after step_avg is ignored.
// Groups: step, total, val_loss, train_time, step_avg.
const Pattern = `^step:(\d+)/(\d+) val_loss:([\d.]+) train_time:(\d+)ms step_avg:([\d.]+)ms`

var lineRe = regexp.MustCompile(Pattern)

// Options configures a Parser.
// Options 配置解析器。
type Options struct {
	TimeSource TimeSource
	// Filter is an optional boolean expression, see CompileFilter.
	Filter string
	Logger *zap.SugaredLogger
}

// Parser extracts Records from training logs.
// Parser 从训练日志中提取记录。
type Parser struct {
	re         *regexp.Regexp
	timeSource TimeSource
	filter     *Filter
	log        *zap.SugaredLogger
}

// NewParser builds a Parser. It fails only if the filter expression does not compile.
// NewParser 创建解析器，仅在过滤表达式编译失败时返回错误。
func NewParser(opts Options) (*Parser, error) {
	filter, err := CompileFilter(opts.Filter)
	if err != nil {
		return nil, err
	}

	ts := opts.TimeSource
	if ts == "" {
		ts = TimeSourceStepAvg
	}

	log := opts.Logger
	if log == nil {
		log = logger.Get(nil)
	}

	return &Parser{
		re:         lineRe,
		timeSource: ts,
		filter:     filter,
		log:        log,
	}, nil
}

// ParseLine parses a single line. ok is false for lines that do not match,
// including matches whose numbers do not fit their types.
// ParseLine 解析单行日志，不匹配时 ok 为 false。
func (p *Parser) ParseLine(line string) (Record, bool) {
	m := p.re.FindStringSubmatch(line)
	if m == nil {
		return Record{}, false
	}

	step, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		p.log.Debugf("[SKIP] bad step %q: %v", m[1], err)
		return Record{}, false
	}
	total, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		p.log.Debugf("[SKIP] bad total %q: %v", m[2], err)
		return Record{}, false
	}
	loss, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		p.log.Debugf("[SKIP] bad val_loss %q: %v", m[3], err)
		return Record{}, false
	}
	trainTime, err := strconv.ParseInt(m[4], 10, 64)
	if err != nil {
		p.log.Debugf("[SKIP] bad train_time %q: %v", m[4], err)
		return Record{}, false
	}
	avg, err := strconv.ParseFloat(m[5], 64)
	if err != nil {
		p.log.Debugf("[SKIP] bad step_avg %q: %v", m[5], err)
		return Record{}, false
	}

	return Record{
		Step:         step,
		TotalSteps:   total,
		ValLoss:      loss,
		TrainTimeMs:  trainTime,
		StepAvgMs:    avg,
		CumulativeMs: p.timeSource.cumulative(step, trainTime, avg),
	}, true
}

// ParseFile reads path to EOF and returns every matching record in file order.
// Non-matching lines are skipped. A missing or unreadable file is an error.
// ParseFile 读取整个文件并按顺序返回所有匹配记录。
func (p *Parser) ParseFile(path string) (Series, error) {
	series := Series{Source: path}

	err := readLines(path, func(line string) {
		r, ok := p.ParseLine(line)
		if !ok {
			return
		}
		if !p.filter.Match(r, p.log) {
			return
		}
		series.Records = append(series.Records, r)
	})
	if err != nil {
		return Series{}, err
	}

	p.log.Debugf("[PARSE] %s: %d records", path, len(series.Records))
	return series, nil
}

// ParseLine parses line with the default step_avg parser.
func ParseLine(line string) (Record, bool) {
	return defaultParser().ParseLine(line)
}

// ParseFile parses path with the default step_avg parser and no filter.
func ParseFile(path string) (Series, error) {
	return defaultParser().ParseFile(path)
}

func defaultParser() *Parser {
	return &Parser{
		re:         lineRe,
		timeSource: TimeSourceStepAvg,
		log:        logger.Get(nil),
	}
}

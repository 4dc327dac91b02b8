package chart

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot/vg"

	"github.com/livp123/trainplot/internal/trainlog"
	"github.com/livp123/trainplot/internal/utils/fileutil"
	"github.com/livp123/trainplot/internal/utils/logger"
	"github.com/livp123/trainplot/pkg/errors"
)

// SeriesSpec names one log file and its legend label.
// SeriesSpec 指定一个日志文件及其图例标签。
type SeriesSpec struct {
	Path  string
	Label string
}

// LabeledSeries is a parsed log file with its legend label.
// LabeledSeries 是带图例标签的已解析日志。
type LabeledSeries struct {
	Label  string
	Series trainlog.Series
}

// Options holds everything Render needs. Zero geometry fields fall back to
// 8x6 inches at 300 DPI.
// Options 包含 Render 所需的全部参数。
type Options struct {
	Series        []SeriesSpec
	OutputDir     string
	LossThreshold float64
	WidthIn       float64
	HeightIn      float64
	DPI           int
	// Parser is optional; nil uses the default step_avg parser.
	Parser *trainlog.Parser
}

// Result reports what Render produced.
// Result 记录 Render 的输出。
type Result struct {
	Files  []string
	Series []LabeledSeries
}

// Pair zips parallel path and label lists. Unequal lengths are rejected
// rather than truncated.
// Pair 将路径和标签列表配对，长度不一致时直接报错而不是截断。
func Pair(paths, labels []string) ([]SeriesSpec, error) {
	if len(paths) != len(labels) {
		return nil, errors.NewMismatchError(len(paths), len(labels))
	}
	specs := make([]SeriesSpec, len(paths))
	for i := range paths {
		specs[i] = SeriesSpec{Path: paths[i], Label: labels[i]}
	}
	return specs, nil
}

// Render creates the output directory, parses every series and writes the
// loss-vs-step and loss-vs-time charts. The first error aborts the run.
// Render 创建输出目录、解析所有序列并写出两张图，遇到第一个错误即终止。
func Render(ctx context.Context, opts Options) (*Result, error) {
	log := logger.Get(ctx)

	if err := opts.normalize(); err != nil {
		return nil, err
	}

	if err := fileutil.EnsureDir(opts.OutputDir); err != nil {
		return nil, errors.ClassifyFSError(opts.OutputDir, err)
	}

	series, err := Load(ctx, opts.Series, opts.Parser)
	if err != nil {
		return nil, err
	}

	res := &Result{Series: series}
	for _, f := range []figure{stepsFigure, timeFigure} {
		if err := checkCanceled(ctx); err != nil {
			return nil, err
		}

		path := filepath.Join(opts.OutputDir, f.file)
		if err := opts.save(f, series, path); err != nil {
			return nil, errors.NewRenderError(path, err)
		}
		log.Infof("[CHART] Wrote %s", path)
		res.Files = append(res.Files, path)
	}

	return res, nil
}

// Load parses each spec in order.
// Load 按顺序解析每个序列。
func Load(ctx context.Context, specs []SeriesSpec, parser *trainlog.Parser) ([]LabeledSeries, error) {
	log := logger.Get(ctx)

	out := make([]LabeledSeries, 0, len(specs))
	for _, spec := range specs {
		if err := checkCanceled(ctx); err != nil {
			return nil, err
		}

		var (
			s   trainlog.Series
			err error
		)
		if parser != nil {
			s, err = parser.ParseFile(spec.Path)
		} else {
			s, err = trainlog.ParseFile(spec.Path)
		}
		if err != nil {
			return nil, err
		}

		if s.Len() == 0 {
			log.Warnf("[WARN]  No validation lines found in %s (%s)", spec.Path, spec.Label)
		}
		out = append(out, LabeledSeries{Label: spec.Label, Series: s})
	}
	return out, nil
}

func (o *Options) normalize() error {
	if len(o.Series) == 0 {
		return errors.ErrNoSeries
	}
	for i, s := range o.Series {
		if strings.TrimSpace(s.Path) == "" {
			return fmt.Errorf("%w: series %d has no path", errors.ErrInvalidFilePath, i)
		}
	}
	if o.OutputDir == "" {
		o.OutputDir = "plots"
	}
	if o.WidthIn <= 0 {
		o.WidthIn = 8
	}
	if o.HeightIn <= 0 {
		o.HeightIn = 6
	}
	if o.DPI <= 0 {
		o.DPI = 300
	}
	return nil
}

func (o *Options) save(f figure, series []LabeledSeries, path string) error {
	p, err := f.build(series, o.LossThreshold)
	if err != nil {
		return err
	}
	data, err := encodePNG(p, vg.Length(o.WidthIn)*vg.Inch, vg.Length(o.HeightIn)*vg.Inch, o.DPI)
	if err != nil {
		return err
	}
	return fileutil.AtomicWriteFile(path, data, 0644)
}

func checkCanceled(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrCanceled, err)
	}
	return nil
}

package chart

import (
	"bytes"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/livp123/trainplot/internal/trainlog"
)

// Output image names.
const (
	StepsImage = "validation_vs_steps.png"
	TimeImage  = "validation_vs_time.png"
)

var (
	gridStyle = draw.LineStyle{
		Color:  color.NRGBA{R: 128, G: 128, B: 128, A: 178},
		Width:  vg.Points(0.5),
		Dashes: []vg.Length{vg.Points(4), vg.Points(2)},
	}
	dotted = []vg.Length{vg.Points(1), vg.Points(3)}
)

// figure describes one of the two charts. Only the x projection, the
// labels and the threshold style differ between them.
type figure struct {
	file      string
	title     string
	xLabel    string
	x         func(trainlog.Record) float64
	threshold draw.LineStyle
}

var (
	stepsFigure = figure{
		file:   StepsImage,
		title:  "Validation Loss vs Steps",
		xLabel: "Training Steps",
		x:      func(r trainlog.Record) float64 { return float64(r.Step) },
		threshold: draw.LineStyle{
			Color:  color.Gray{Y: 128},
			Width:  vg.Points(2),
			Dashes: dotted,
		},
	}
	timeFigure = figure{
		file:   TimeImage,
		title:  "Validation Loss vs Time",
		xLabel: "Training Time (hours)",
		x:      func(r trainlog.Record) float64 { return r.CumulativeHours() },
		threshold: draw.LineStyle{
			Color:  color.RGBA{R: 255, A: 255},
			Width:  vg.Points(1),
			Dashes: dotted,
		},
	}
)

// build lays out one figure: a line per series, the threshold, grid and legend.
// build 构建单张图：每个序列一条折线，加上阈值线、网格和图例。
func (f figure) build(series []LabeledSeries, threshold float64) (*plot.Plot, error) {
	p := plot.New()

	p.Title.Text = f.title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.Title.Padding = vg.Points(15)
	p.X.Label.Text = f.xLabel
	p.X.Label.TextStyle.Font.Size = vg.Points(12)
	p.Y.Label.Text = "Validation Loss"
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)

	grid := plotter.NewGrid()
	grid.Vertical = gridStyle
	grid.Horizontal = gridStyle
	p.Add(grid)

	for i, s := range series {
		line, err := plotter.NewLine(f.points(s.Series))
		if err != nil {
			return nil, err
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = plotutil.Color(i)

		// Empty series still get a legend entry.
		if s.Series.Len() > 0 {
			p.Add(line)
		}
		p.Legend.Add(s.Label, line)
	}

	ref := plotter.NewFunction(func(float64) float64 { return threshold })
	ref.LineStyle = f.threshold
	p.Add(ref)
	p.Legend.Add("Threshold", ref)

	// Functions carry no data range, so widen y to keep the threshold visible.
	p.Y.Min = math.Min(p.Y.Min, threshold)
	p.Y.Max = math.Max(p.Y.Max, threshold)

	return p, nil
}

func (f figure) points(s trainlog.Series) plotter.XYs {
	pts := make(plotter.XYs, s.Len())
	for i, r := range s.Records {
		pts[i].X = f.x(r)
		pts[i].Y = r.ValLoss
	}
	return pts
}

// encodePNG draws p onto a raster canvas. The plot fills the whole canvas,
// so there is no outer whitespace to crop.
// encodePNG 将图绘制到位图画布并编码为 PNG。
func encodePNG(p *plot.Plot, width, height vg.Length, dpi int) ([]byte, error) {
	c := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(dpi))
	p.Draw(draw.New(c))

	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

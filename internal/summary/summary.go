package summary

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/livp123/trainplot/internal/chart"
	"github.com/livp123/trainplot/internal/utils/fmtutil"
)

// Row is the per-series digest printed by `trainplot summary`.
// Row 是 `trainplot summary` 输出的单个序列摘要。
type Row struct {
	Label      string
	Source     string
	Records    int
	FinalStep  int64
	TotalSteps int64
	FinalLoss  float64
	MinLoss    float64
	MinStep    int64
	// Reached is false when no record is at or below the threshold.
	Reached        bool
	ThresholdStep  int64
	ThresholdHours float64
	FinalHours     float64
}

// Build computes one Row per series, in input order.
// Build 按输入顺序为每个序列计算一行摘要。
func Build(series []chart.LabeledSeries, threshold float64) []Row {
	rows := make([]Row, 0, len(series))
	for _, ls := range series {
		row := Row{
			Label:   ls.Label,
			Source:  ls.Series.Source,
			Records: ls.Series.Len(),
		}
		if last, ok := ls.Series.Last(); ok {
			row.FinalStep = last.Step
			row.TotalSteps = last.TotalSteps
			row.FinalLoss = last.ValLoss
			row.FinalHours = last.CumulativeHours()
		}
		if best, ok := ls.Series.MinLoss(); ok {
			row.MinLoss = best.ValLoss
			row.MinStep = best.Step
		}
		if hit, ok := ls.Series.FirstBelow(threshold); ok {
			row.Reached = true
			row.ThresholdStep = hit.Step
			row.ThresholdHours = hit.CumulativeHours()
		}
		rows = append(rows, row)
	}
	return rows
}

var (
	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	styleHit    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	styleMiss   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	styleEmpty  = lipgloss.NewStyle().Faint(true)
)

var columns = []string{"LABEL", "RECORDS", "FINAL STEP", "FINAL LOSS", "MIN LOSS", "THRESHOLD", "HOURS"}

// Render writes rows as an aligned table. Cells are padded before styling so
// escape codes never skew the columns.
// Render 以对齐表格输出摘要。
func Render(w io.Writer, rows []Row, threshold float64) error {
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, r.cells())
	}

	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = len(c)
	}
	for _, row := range cells {
		for i, c := range row {
			if n := lipgloss.Width(c); n > widths[i] {
				widths[i] = n
			}
		}
	}

	if _, err := fmt.Fprintf(w, "Validation summary (threshold %.4g)\n", threshold); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, styleHeader.Render(join(columns, widths))); err != nil {
		return err
	}
	for i, row := range cells {
		line := join(row, widths)
		switch {
		case rows[i].Records == 0:
			line = styleEmpty.Render(line)
		case rows[i].Reached:
			line = styleHit.Render(line)
		default:
			line = styleMiss.Render(line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func (r Row) cells() []string {
	if r.Records == 0 {
		return []string{r.Label, "0", "-", "-", "-", "-", "-"}
	}
	threshold := "not reached"
	hours := fmtutil.FormatHours(r.FinalHours)
	if r.Reached {
		threshold = fmt.Sprintf("step %d", r.ThresholdStep)
		hours = fmtutil.FormatHours(r.ThresholdHours)
	}
	return []string{
		r.Label,
		fmt.Sprintf("%d", r.Records),
		fmtutil.FormatSteps(r.FinalStep, r.TotalSteps),
		fmtutil.FormatLoss(r.FinalLoss),
		fmt.Sprintf("%s @ %d", fmtutil.FormatLoss(r.MinLoss), r.MinStep),
		threshold,
		hours,
	}
}

func join(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, c := range cells {
		padded[i] = c + strings.Repeat(" ", widths[i]-lipgloss.Width(c))
	}
	return strings.TrimRight(strings.Join(padded, "  "), " ")
}

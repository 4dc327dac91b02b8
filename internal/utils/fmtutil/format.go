// Package fmtutil provides formatting utilities for human-readable output.
// Package fmtutil 提供用于人类可读输出的格式化工具。
package fmtutil

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// FormatNumberWithComma formats a number with thousand separators.
// FormatNumberWithComma 格式化数字，添加千位分隔符。
func FormatNumberWithComma(n int64) string {
	if n < 0 {
		return "-" + FormatNumberWithComma(-n)
	}
	s := fmt.Sprintf("%d", n)
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// FormatSteps formats a step counter as "step/total".
// FormatSteps 将步数格式化为 "step/total"。
func FormatSteps(step, total int64) string {
	return FormatNumberWithComma(step) + "/" + FormatNumberWithComma(total)
}

// FormatLoss formats a loss value with four decimals.
// FormatLoss 以四位小数格式化损失值。
func FormatLoss(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	return fmt.Sprintf("%.4f", v)
}

// FormatDuration formats a duration to human readable format.
// FormatDuration 将持续时间格式化为可读格式。
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return d.String()
	}

	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if seconds > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%ds", seconds))
	}
	return strings.Join(parts, " ")
}

// FormatHours renders fractional hours with a readable duration, e.g. "1.50 (1h 30m)".
// FormatHours 将小时数格式化为带可读时长的字符串。
func FormatHours(h float64) string {
	if math.IsNaN(h) || math.IsInf(h, 0) || h < 0 {
		return "-"
	}
	d := time.Duration(h * float64(time.Hour)).Round(time.Second)
	return fmt.Sprintf("%.2f (%s)", h, FormatDuration(d))
}

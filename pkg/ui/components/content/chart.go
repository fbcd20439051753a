package content

import (
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/samber/lo"

	"compliance_tui/pkg/export"
	"compliance_tui/pkg/response"
	"compliance_tui/pkg/ui/components/utils"
	"compliance_tui/pkg/ui/styles"
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

func chartCard(c response.Chart, width int) string {
	lines := []string{
		styles.TextBoldStyle.Render(utils.TruncateToWidth(c.Title, width)),
		styles.TextMutedStyle.Render("Chart visualization: " + c.Type),
	}
	if c.Data.Points != nil || c.Type == "bar" || c.Type == "pie" {
		lines = append(lines, barChart(chartBars(c), width)...)
	} else {
		lines = append(lines, styles.TitleStyle.Render(sparkline(c.Data.Values())))
		if len(c.Labels) > 0 {
			lines = append(lines, styles.TextMutedStyle.Render(
				utils.TruncateToWidth(c.Labels[0]+" … "+c.Labels[len(c.Labels)-1], width)))
		}
	}
	return strings.Join(lines, "\n")
}

// sparkline maps each value to one of eight block heights.
func sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lowest, highest := lo.Min(values), lo.Max(values)
	span := highest - lowest

	var sb strings.Builder
	for _, v := range values {
		idx := len(sparkRunes) - 1
		if span > 0 {
			idx = int((v - lowest) / span * float64(len(sparkRunes)-1))
		}
		sb.WriteRune(sparkRunes[idx])
	}
	return sb.String()
}

type bar struct {
	label string
	value float64
	color string
}

func chartBars(c response.Chart) []bar {
	if c.Data.Points != nil {
		return lo.Map(c.Data.Points, func(p response.ChartPoint, _ int) bar {
			return bar{label: p.Label, value: p.Value, color: p.Color}
		})
	}
	return lo.Map(c.Data.Series, func(v float64, i int) bar {
		label := strconv.Itoa(i + 1)
		if i < len(c.Labels) {
			label = c.Labels[i]
		}
		return bar{label: label, value: v}
	})
}

// barChart draws one horizontal bar per entry scaled to the largest value.
func barChart(bars []bar, width int) []string {
	if len(bars) == 0 {
		return nil
	}
	labelWidth := min(12, lo.Max(lo.Map(bars, func(b bar, _ int) int { return lipgloss.Width(b.label) })))
	valueWidth := lo.Max(lo.Map(bars, func(b bar, _ int) int { return len(export.FormatNumber(b.value)) }))
	barWidth := max(1, width-labelWidth-valueWidth-2)
	highest := lo.Max(lo.Map(bars, func(b bar, _ int) float64 { return b.value }))

	lines := make([]string, 0, len(bars))
	for _, b := range bars {
		filled := 0
		if highest > 0 && b.value > 0 {
			filled = max(1, int(b.value/highest*float64(barWidth)))
		}
		color := b.color
		if color == "" {
			color = "141"
		}
		barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
		label := utils.PadStyled(utils.TruncateToWidth(b.label, labelWidth), labelWidth)
		lines = append(lines, styles.TextStyle.Render(label)+" "+
			barStyle.Render(strings.Repeat("█", filled))+
			strings.Repeat(" ", barWidth-filled)+" "+
			styles.TextMutedStyle.Render(export.FormatNumber(b.value)))
	}
	return lines
}

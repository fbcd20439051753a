// Package export renders structured responses as plain Markdown for the
// clipboard and for non-interactive output.
package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"compliance_tui/pkg/response"
)

// TimeLayout is used for the "Generated at" line.
const TimeLayout = "2006-01-02 15:04"

// Markdown renders res. Invalid responses are rejected.
func Markdown(res response.Structured, generatedAt time.Time) (string, error) {
	if err := response.Validate(res); err != nil {
		return "", err
	}

	blocks := []string{
		"# " + res.Summary(),
		"_Generated at " + generatedAt.Format(TimeLayout) + "_",
	}

	switch p := res.Content.(type) {
	case response.Text:
		blocks = append(blocks, p.Text)
	case response.TextWithLinks:
		blocks = append(blocks, textWithLinks(p)...)
	case response.Table:
		blocks = append(blocks, table(p)...)
	case response.Report:
		blocks = append(blocks, report(p)...)
	case response.Alert:
		blocks = append(blocks, alerts(p)...)
	case response.Dashboard:
		blocks = append(blocks, dashboard(p)...)
	case response.Metrics:
		blocks = append(blocks, metricList(p.Metrics, true))
	default:
		return "", fmt.Errorf("unsupported response content %T", res.Content)
	}

	return strings.Join(blocks, "\n\n") + "\n", nil
}

func textWithLinks(p response.TextWithLinks) []string {
	blocks := []string{p.Text}
	if len(p.Links) == 0 {
		return blocks
	}
	lines := make([]string, 0, len(p.Links))
	for _, l := range p.Links {
		line := fmt.Sprintf("- [%s](%s)", l.Title, l.URL)
		if l.Description != "" {
			line += ": " + l.Description
		}
		lines = append(lines, line)
	}
	return append(blocks, "## Documents", strings.Join(lines, "\n"))
}

func table(p response.Table) []string {
	var sb strings.Builder
	writeRow(&sb, p.Headers)
	sep := make([]string, len(p.Headers))
	for i := range sep {
		sep[i] = "---"
	}
	writeRow(&sb, sep)
	for _, row := range p.Rows {
		writeRow(&sb, row)
	}
	return []string{
		fmt.Sprintf("Showing %d records", len(p.Rows)),
		strings.TrimSuffix(sb.String(), "\n"),
	}
}

func writeRow(sb *strings.Builder, cells []string) {
	sb.WriteString("|")
	for _, c := range cells {
		sb.WriteString(" ")
		sb.WriteString(strings.ReplaceAll(c, "|", `\|`))
		sb.WriteString(" |")
	}
	sb.WriteString("\n")
}

func report(p response.Report) []string {
	var blocks []string
	for _, s := range p.Sections {
		blocks = append(blocks, "## "+s.Title)
		switch {
		case s.Content != "":
			blocks = append(blocks, s.Content)
		case len(s.Items) > 0:
			blocks = append(blocks, bullets(s.Items))
		case len(s.Metrics) > 0:
			lines := make([]string, len(s.Metrics))
			for i, m := range s.Metrics {
				lines[i] = fmt.Sprintf("- **%s**: %s", m.Label, m.Value)
			}
			blocks = append(blocks, strings.Join(lines, "\n"))
		}
	}
	return blocks
}

func alerts(p response.Alert) []string {
	var blocks []string
	for _, a := range p.Alerts {
		blocks = append(blocks, fmt.Sprintf("## [%s] %s (%s)", strings.ToUpper(string(a.Severity)), a.Title, a.ID))
		if a.Description != "" {
			blocks = append(blocks, a.Description)
		}
		if len(a.AffectedSystems) > 0 {
			blocks = append(blocks, "**Affected systems:** "+strings.Join(a.AffectedSystems, ", "))
		}
		if len(a.RecommendedActions) > 0 {
			blocks = append(blocks, "**Recommended actions:**", bullets(a.RecommendedActions))
		}
		if a.Timestamp != "" {
			blocks = append(blocks, "_Reported "+a.Timestamp+"_")
		}
	}
	return blocks
}

func dashboard(p response.Dashboard) []string {
	blocks := []string{"## Metrics", metricList(p.Metrics, false)}
	if len(p.Charts) > 0 {
		blocks = append(blocks, "## Charts")
		for _, c := range p.Charts {
			blocks = append(blocks, fmt.Sprintf("### %s (%s)", c.Title, c.Type), chartLines(c))
		}
	}
	if len(p.RecentActivity) > 0 {
		lines := make([]string, len(p.RecentActivity))
		for i, a := range p.RecentActivity {
			lines[i] = fmt.Sprintf("- %s (%s)", a.Action, a.Time)
		}
		blocks = append(blocks, "## Recent Activity", strings.Join(lines, "\n"))
	}
	return blocks
}

func metricList(metrics []response.Metric, withDescription bool) string {
	lines := make([]string, 0, len(metrics))
	for _, m := range metrics {
		lines = append(lines, fmt.Sprintf("- **%s**: %s (%s %s from last period)", m.Label, m.Value, TrendArrow(m.Trend), m.Change))
		if withDescription && m.Description != "" {
			lines = append(lines, "  "+m.Description)
		}
	}
	return strings.Join(lines, "\n")
}

func chartLines(c response.Chart) string {
	var lines []string
	if c.Data.Points != nil {
		for _, p := range c.Data.Points {
			lines = append(lines, fmt.Sprintf("- %s: %s", p.Label, FormatNumber(p.Value)))
		}
		return strings.Join(lines, "\n")
	}
	for i, v := range c.Data.Series {
		label := strconv.Itoa(i + 1)
		if i < len(c.Labels) {
			label = c.Labels[i]
		}
		lines = append(lines, fmt.Sprintf("- %s: %s", label, FormatNumber(v)))
	}
	return strings.Join(lines, "\n")
}

func bullets(items []string) string {
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = "- " + it
	}
	return strings.Join(lines, "\n")
}

// TrendArrow returns ▲ for up and ▼ otherwise.
func TrendArrow(t response.Trend) string {
	if t == response.TrendUp {
		return "▲"
	}
	return "▼"
}

// FormatNumber prints a chart value without trailing zeros.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

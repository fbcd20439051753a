package content

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"compliance_tui/pkg/export"
	"compliance_tui/pkg/response"
	"compliance_tui/pkg/reveal"
	"compliance_tui/pkg/ui/components/utils"
	"compliance_tui/pkg/ui/styles"
)

const (
	cardWidth     = 30
	trendSuffix   = "from last period"
	linkTargetTip = "View Document"
)

// renderer draws one payload at a fixed width. blocks hold the revealed
// paragraphs in the order revealedBlocks listed them.
type renderer struct {
	width  int
	blocks []reveal.Model
	next   int
}

func (r *renderer) payload(p response.Payload) (string, error) {
	switch p := p.(type) {
	case response.Text:
		return r.text(), nil
	case response.TextWithLinks:
		return r.links(p), nil
	case response.Table:
		return r.table(p), nil
	case response.Report:
		return r.report(p), nil
	case response.Alert:
		return r.alerts(p), nil
	case response.Dashboard:
		return r.dashboard(p), nil
	case response.Metrics:
		return r.metrics(p), nil
	default:
		return "", fmt.Errorf("unsupported response content %T", p)
	}
}

// revealed returns the typed-out prefix of the next body paragraph.
func (r *renderer) revealed() string {
	if r.next >= len(r.blocks) {
		return ""
	}
	b := r.blocks[r.next]
	r.next++
	return b.View()
}

func (r *renderer) text() string {
	body := styles.TextStyle.Render(wrap(r.revealed(), r.width-4))
	return styles.CardStyle.Width(r.width).Render(body)
}

func (r *renderer) links(p response.TextWithLinks) string {
	parts := []string{styles.TextStyle.Render(wrap(r.revealed(), r.width))}
	if len(p.Links) > 0 {
		parts = append(parts, "", sectionTitle("Documents"))
	}
	for _, l := range p.Links {
		lines := []string{styles.TextBoldStyle.Render(utils.TruncateToWidth(l.Title, r.width-4))}
		if l.Description != "" {
			lines = append(lines, styles.TextMutedStyle.Render(wrap(l.Description, r.width-4)))
		}
		lines = append(lines, styles.LinkStyle.Render(linkTargetTip)+" "+styles.TextMutedStyle.Render("→ "+l.URL))
		parts = append(parts, styles.CardStyle.Width(r.width).Render(strings.Join(lines, "\n")))
	}
	return strings.Join(parts, "\n")
}

func (r *renderer) table(p response.Table) string {
	status := lo.IndexOf(p.Headers, "Status")
	priority := lo.IndexOf(p.Headers, "Priority")

	var sb strings.Builder
	tw := tablewriter.NewWriter(&sb)
	tw.SetHeader(p.Headers)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	for _, row := range p.Rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			switch i {
			case status:
				cells[i] = styles.StatusBadge(cell).Render(cell)
			case priority:
				cells[i] = styles.PriorityBadge(cell).Render(cell)
			default:
				cells[i] = cell
			}
		}
		tw.Append(cells)
	}
	tw.Render()

	return sectionTitle("Data Overview") + "\n" +
		styles.TextMutedStyle.Render(fmt.Sprintf("Showing %d records", len(p.Rows))) + "\n\n" +
		strings.TrimRight(sb.String(), "\n")
}

func (r *renderer) report(p response.Report) string {
	parts := make([]string, 0, len(p.Sections))
	for _, s := range p.Sections {
		var body string
		switch {
		case s.Content != "":
			body = styles.TextStyle.Render(wrap(r.revealed(), r.width))
		case len(s.Items) > 0:
			body = bulletList(s.Items, r.width)
		case len(s.Metrics) > 0:
			cells := lo.Map(s.Metrics, func(lv response.LabeledValue, _ int) string {
				return styles.TextMutedStyle.Render(lv.Label) + "\n" + styles.TextBoldStyle.Render(lv.Value)
			})
			body = grid(cells, r.width)
		}
		parts = append(parts, sectionTitle(s.Title)+"\n"+body)
	}
	return strings.Join(parts, "\n\n")
}

func (r *renderer) alerts(p response.Alert) string {
	cards := make([]string, 0, len(p.Alerts))
	inner := r.width - 4
	for _, a := range p.Alerts {
		sev := styles.SeverityColor(a.Severity)
		lines := []string{
			sev.Render(strings.ToUpper(string(a.Severity))) + "  " + styles.TextMutedStyle.Render(a.ID),
			styles.TextBoldStyle.Render(wrap(a.Title, inner)),
		}
		if a.Description != "" {
			lines = append(lines, styles.TextStyle.Render(wrap(r.revealed(), inner)))
		}
		if len(a.AffectedSystems) > 0 {
			lines = append(lines, "", styles.TextBoldStyle.Render("Affected Systems"),
				styles.TextStyle.Render(wrap(strings.Join(a.AffectedSystems, ", "), inner)))
		}
		if len(a.RecommendedActions) > 0 {
			lines = append(lines, "", styles.TextBoldStyle.Render("Recommended Actions"),
				bulletList(a.RecommendedActions, inner))
		}
		if a.Timestamp != "" {
			lines = append(lines, styles.TextMutedStyle.Render(a.Timestamp))
		}
		card := styles.CardStyle.
			BorderForeground(sev.GetForeground()).
			Width(r.width).
			Render(strings.Join(lines, "\n"))
		cards = append(cards, card)
	}
	return strings.Join(cards, "\n")
}

func (r *renderer) dashboard(p response.Dashboard) string {
	parts := []string{grid(lo.Map(p.Metrics, func(m response.Metric, _ int) string {
		return metricCard(m, false)
	}), r.width)}

	for _, c := range p.Charts {
		parts = append(parts, styles.CardStyle.Width(r.width).Render(chartCard(c, r.width-4)))
	}

	if len(p.RecentActivity) > 0 {
		lines := []string{sectionTitle("Recent Activity")}
		for _, a := range p.RecentActivity {
			lines = append(lines, "• "+styles.TextStyle.Render(utils.TruncateToWidth(a.Action, r.width-4))+
				"\n  "+styles.TextMutedStyle.Render(a.Time))
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}
	return strings.Join(parts, "\n")
}

func (r *renderer) metrics(p response.Metrics) string {
	return grid(lo.Map(p.Metrics, func(m response.Metric, _ int) string {
		return metricCard(m, true)
	}), r.width)
}

func metricCard(m response.Metric, withDescription bool) string {
	inner := cardWidth - 4
	lines := []string{
		styles.TextMutedStyle.Render(utils.TruncateToWidth(m.Label, inner)),
		styles.TextBoldStyle.Render(m.Value),
		styles.TrendStyle(m.Trend).Render(export.TrendArrow(m.Trend) + " " + m.Change + " " + trendSuffix),
	}
	if withDescription && m.Description != "" {
		lines = append(lines, styles.TextMutedStyle.Render(wrap(m.Description, inner)))
	}
	return strings.Join(lines, "\n")
}

// grid lays cells out as fixed-width cards, as many per row as fit.
func grid(cells []string, width int) string {
	if len(cells) == 0 {
		return ""
	}
	w := min(cardWidth, width)
	perRow := max(1, width/w)

	rows := make([]string, 0, len(cells)/perRow+1)
	for _, chunk := range lo.Chunk(cells, perRow) {
		cards := lo.Map(chunk, func(c string, _ int) string {
			return styles.CardStyle.Width(w).Render(c)
		})
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return strings.Join(rows, "\n")
}

func sectionTitle(title string) string {
	return styles.TitleStyle.Render(title)
}

func bulletList(items []string, width int) string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		wrapped := utils.Wrap(it, max(1, width-2))
		for i, l := range wrapped {
			prefix := "  "
			if i == 0 {
				prefix = "• "
			}
			lines = append(lines, prefix+styles.TextStyle.Render(l))
		}
	}
	return strings.Join(lines, "\n")
}

func wrap(text string, width int) string {
	return strings.Join(utils.Wrap(text, max(1, width)), "\n")
}

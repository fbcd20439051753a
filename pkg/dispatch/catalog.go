package dispatch

import (
	"fmt"

	"compliance_tui/pkg/response"
)

// samplePayload returns the canned payload for kind. The text fallback
// quotes the query verbatim.
func samplePayload(kind response.Kind, query string) response.Payload {
	switch kind {
	case response.KindDashboard:
		return sampleDashboard()
	case response.KindMetrics:
		return sampleMetrics()
	case response.KindTable:
		return sampleTable()
	case response.KindAlert:
		return sampleAlerts()
	case response.KindReport:
		return sampleReport()
	case response.KindTextWithLinks:
		return sampleLinks()
	default:
		return sampleText(query)
	}
}

func sampleDashboard() response.Dashboard {
	return response.Dashboard{
		Header: response.Header{Summary: "Compliance Dashboard Overview"},
		Metrics: []response.Metric{
			{Label: "Active Cases", Value: "247", Change: "+12%", Trend: response.TrendUp},
			{Label: "Resolved Today", Value: "18", Change: "+5%", Trend: response.TrendUp},
			{Label: "Critical Alerts", Value: "3", Change: "-2", Trend: response.TrendDown},
			{Label: "Avg Response Time", Value: "2.4h", Change: "-15%", Trend: response.TrendDown},
		},
		Charts: []response.Chart{
			{
				Title:  "Case Resolution Trend",
				Type:   "line",
				Data:   response.ChartData{Series: []float64{45, 52, 48, 61, 58, 67, 72}},
				Labels: []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
			},
			{
				Title: "Cases by Priority",
				Type:  "bar",
				Data: response.ChartData{Points: []response.ChartPoint{
					{Label: "Critical", Value: 12, Color: "#ef4444"},
					{Label: "High", Value: 34, Color: "#f97316"},
					{Label: "Medium", Value: 89, Color: "#eab308"},
					{Label: "Low", Value: 112, Color: "#22c55e"},
				}},
			},
		},
		RecentActivity: []response.Activity{
			{Action: "Case CASE-247 assigned to John Doe", Time: "2 minutes ago"},
			{Action: "Alert ALT-089 resolved", Time: "15 minutes ago"},
			{Action: "New compliance report generated", Time: "1 hour ago"},
		},
	}
}

func sampleMetrics() response.Metrics {
	return response.Metrics{
		Header: response.Header{Summary: "Key Performance Indicators"},
		Metrics: []response.Metric{
			{
				Label:       "Compliance Score",
				Value:       "94.2%",
				Change:      "+2.1%",
				Trend:       response.TrendUp,
				Description: "Overall compliance rating across all departments",
			},
			{
				Label:       "Cases Resolved",
				Value:       "1,847",
				Change:      "+156",
				Trend:       response.TrendUp,
				Description: "Total cases closed this month",
			},
			{
				Label:       "Response Time",
				Value:       "4.2h",
				Change:      "-1.3h",
				Trend:       response.TrendDown,
				Description: "Average time to first response",
			},
			{
				Label:       "Team Efficiency",
				Value:       "87%",
				Change:      "+5%",
				Trend:       response.TrendUp,
				Description: "Cases resolved within SLA",
			},
		},
	}
}

func sampleTable() response.Table {
	return response.Table{
		Header:  response.Header{Summary: "Recent Cases Overview"},
		Headers: []string{"Case ID", "Title", "Status", "Priority", "Assigned To", "Created", "Due Date"},
		Rows: [][]string{
			{"CASE-247", "Data Privacy Violation", "Open", "Critical", "John Doe", "2025-02-10", "2025-02-12"},
			{"CASE-246", "Access Control Review", "In Progress", "High", "Jane Smith", "2025-02-10", "2025-02-15"},
			{"CASE-245", "Policy Update Required", "Open", "Medium", "Bob Johnson", "2025-02-09", "2025-02-20"},
			{"CASE-244", "Audit Documentation", "Resolved", "Low", "Alice Brown", "2025-02-09", "2025-02-18"},
			{"CASE-243", "Security Incident", "In Progress", "Critical", "John Doe", "2025-02-08", "2025-02-11"},
			{"CASE-242", "Compliance Training", "Resolved", "Medium", "Jane Smith", "2025-02-08", "2025-02-22"},
		},
	}
}

func sampleAlerts() response.Alert {
	return response.Alert{
		Header: response.Header{Summary: "Active Security Alerts"},
		Alerts: []response.AlertItem{
			{
				ID:                 "ALT-089",
				Severity:           response.SeverityCritical,
				Title:              "Unauthorized Access Attempt Detected",
				Description:        "Multiple failed login attempts from IP 192.168.1.100. Potential brute force attack in progress.",
				Timestamp:          "2025-02-10 14:32:00",
				AffectedSystems:    []string{"Authentication Service", "User Database"},
				RecommendedActions: []string{"Block IP address", "Reset affected user passwords", "Enable MFA"},
			},
			{
				ID:                 "ALT-088",
				Severity:           response.SeverityHigh,
				Title:              "Unusual Data Export Activity",
				Description:        "Large volume of sensitive data exported outside business hours by user account 'jsmith'.",
				Timestamp:          "2025-02-10 13:15:00",
				AffectedSystems:    []string{"Data Warehouse", "Export Service"},
				RecommendedActions: []string{"Review export logs", "Contact user", "Verify data classification"},
			},
			{
				ID:                 "ALT-087",
				Severity:           response.SeverityMedium,
				Title:              "Compliance Policy Violation",
				Description:        "Document shared externally without proper encryption or access controls.",
				Timestamp:          "2025-02-10 11:45:00",
				AffectedSystems:    []string{"Document Management"},
				RecommendedActions: []string{"Revoke external access", "Apply encryption", "User training"},
			},
		},
	}
}

func sampleReport() response.Report {
	return response.Report{
		Header: response.Header{Summary: "Monthly Compliance Report - February 2025"},
		Sections: []response.Section{
			{
				Title:   "Executive Summary",
				Content: "Overall compliance score improved to 94.2% this month, up from 92.1% in January. All critical requirements have been met, with 3 minor issues identified and scheduled for resolution. The team successfully closed 1,847 cases, exceeding our target by 12%.",
			},
			{
				Title: "Key Achievements",
				Items: []string{
					"Reduced average response time by 31% through process optimization",
					"Implemented automated alert triage system, improving efficiency by 45%",
					"Completed security audit with zero critical findings",
					"Achieved 98% SLA compliance for high-priority cases",
				},
			},
			{
				Title: "Performance Metrics",
				Metrics: []response.LabeledValue{
					{Label: "Total Cases Processed", Value: "1,847"},
					{Label: "Cases Resolved", Value: "1,831"},
					{Label: "Pending Cases", Value: "16"},
					{Label: "Avg Resolution Time", Value: "4.2 days"},
					{Label: "Customer Satisfaction", Value: "4.8/5.0"},
					{Label: "Team Utilization", Value: "87%"},
				},
			},
			{
				Title: "Areas for Improvement",
				Items: []string{
					"Reduce backlog of medium-priority cases by 20%",
					"Enhance documentation for complex compliance scenarios",
					"Expand training program to cover new regulatory requirements",
				},
			},
			{
				Title:   "Upcoming Initiatives",
				Content: "Next month, we will focus on implementing AI-powered case classification, expanding our integration with third-party risk management tools, and conducting comprehensive team training on the updated compliance framework.",
			},
		},
	}
}

func sampleLinks() response.TextWithLinks {
	return response.TextWithLinks{
		Header: response.Header{Summary: "Relevant Compliance Documentation"},
		Text:   "I found several important documents and resources related to your query. These materials provide comprehensive guidance on compliance policies, procedures, and best practices:",
		Links: []response.Link{
			{
				Title:       "Compliance Policy Framework 2025",
				URL:         "#policy-2025",
				Description: "Updated compliance policies and procedures for the current year",
			},
			{
				Title:       "Security Audit Guidelines",
				URL:         "#audit-guidelines",
				Description: "Step-by-step guide for conducting internal security audits",
			},
			{
				Title:       "Risk Assessment Framework",
				URL:         "#risk-framework",
				Description: "Methodology for identifying and evaluating compliance risks",
			},
			{
				Title:       "Incident Response Playbook",
				URL:         "#incident-response",
				Description: "Procedures for handling security incidents and breaches",
			},
			{
				Title:       "Data Privacy Regulations Guide",
				URL:         "#privacy-guide",
				Description: "Overview of GDPR, CCPA, and other privacy requirements",
			},
		},
	}
}

func sampleText(query string) response.Text {
	return response.Text{
		Header: response.Header{Summary: "Response to your query"},
		Text: fmt.Sprintf("I understand you're asking about: \"%s\". This is a comprehensive sample response "+
			"demonstrating the chatbot's capabilities. When you integrate your API, this will be replaced with "+
			"real data from your backend system. The system supports various response types including dashboards, "+
			"metrics, tables, reports, alerts, and documents with links.", query),
	}
}

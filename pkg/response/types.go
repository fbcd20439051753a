package response

// Kind identifies the shape of a structured response payload.
type Kind string

const (
	KindText          Kind = "text"
	KindTextWithLinks Kind = "text-with-links"
	KindTable         Kind = "table"
	KindReport        Kind = "report"
	KindAlert         Kind = "alert"
	KindDashboard     Kind = "dashboard"
	KindMetrics       Kind = "metrics"
)

// Kinds returns every supported response kind.
func Kinds() []Kind {
	return []Kind{
		KindText,
		KindTextWithLinks,
		KindTable,
		KindReport,
		KindAlert,
		KindDashboard,
		KindMetrics,
	}
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	for _, known := range Kinds() {
		if k == known {
			return true
		}
	}
	return false
}

// Payload is the content of a structured response. The set of
// implementations is closed: one struct per Kind.
type Payload interface {
	Kind() Kind
	Headline() string
	isPayload()
}

// Header carries the summary line shared by every payload.
type Header struct {
	Summary string `json:"summary"`
}

// Headline returns the payload summary.
func (h Header) Headline() string { return h.Summary }

func (Header) isPayload() {}

// Text is a plain prose answer.
type Text struct {
	Header
	Text string `json:"text" validate:"required"`
}

func (Text) Kind() Kind { return KindText }

// Link points to a related document.
type Link struct {
	Title       string `json:"title" validate:"required"`
	URL         string `json:"url" validate:"required"`
	Description string `json:"description"`
}

// TextWithLinks is prose followed by a list of documents.
type TextWithLinks struct {
	Header
	Text  string `json:"text" validate:"required"`
	Links []Link `json:"links" validate:"dive"`
}

func (TextWithLinks) Kind() Kind { return KindTextWithLinks }

// Table is a header row plus data rows. Every row must have one cell per header.
type Table struct {
	Header
	Headers []string   `json:"headers" validate:"required,min=1"`
	Rows    [][]string `json:"rows"`
}

func (Table) Kind() Kind { return KindTable }

// LabeledValue is a label with a display value, used by report metrics.
type LabeledValue struct {
	Label string `json:"label" validate:"required"`
	Value string `json:"value"`
}

// Section is one titled block of a report. At most one of Content, Items
// and Metrics is set.
type Section struct {
	Title   string         `json:"title" validate:"required"`
	Content string         `json:"content,omitempty"`
	Items   []string       `json:"items,omitempty"`
	Metrics []LabeledValue `json:"metrics,omitempty" validate:"omitempty,dive"`
}

// Report is a titled, sectioned document.
type Report struct {
	Header
	Sections []Section `json:"sections" validate:"required,min=1,dive"`
}

func (Report) Kind() Kind { return KindReport }

// Severity of an alert.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
)

// AlertItem is a single security or compliance alert.
type AlertItem struct {
	ID                 string   `json:"id" validate:"required"`
	Severity           Severity `json:"severity" validate:"required,oneof=critical high medium"`
	Title              string   `json:"title" validate:"required"`
	Description        string   `json:"description"`
	Timestamp          string   `json:"timestamp"`
	AffectedSystems    []string `json:"affectedSystems,omitempty"`
	RecommendedActions []string `json:"recommendedActions,omitempty"`
}

// Alert is a list of alerts ordered by the responder.
type Alert struct {
	Header
	Alerts []AlertItem `json:"alerts" validate:"dive"`
}

func (Alert) Kind() Kind { return KindAlert }

// Trend is the direction of a metric change.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
)

// Metric is a KPI card.
type Metric struct {
	Label       string `json:"label" validate:"required"`
	Value       string `json:"value"`
	Change      string `json:"change"`
	Trend       Trend  `json:"trend" validate:"required,oneof=up down"`
	Description string `json:"description,omitempty"`
}

// Activity is one entry of a dashboard's recent activity feed.
type Activity struct {
	Action string `json:"action" validate:"required"`
	Time   string `json:"time"`
}

// Dashboard is a set of metric cards, charts and recent activity.
type Dashboard struct {
	Header
	Metrics        []Metric   `json:"metrics" validate:"dive"`
	Charts         []Chart    `json:"charts,omitempty" validate:"omitempty,dive"`
	RecentActivity []Activity `json:"recentActivity,omitempty" validate:"omitempty,dive"`
}

func (Dashboard) Kind() Kind { return KindDashboard }

// Metrics is a list of KPI cards with descriptions.
type Metrics struct {
	Header
	Metrics []Metric `json:"metrics" validate:"dive"`
}

func (Metrics) Kind() Kind { return KindMetrics }

// Structured is a response kind together with its payload.
type Structured struct {
	Kind    Kind
	Content Payload
}

// New wraps a payload, deriving the kind from its concrete type.
func New(p Payload) Structured {
	return Structured{Kind: p.Kind(), Content: p}
}

// Summary returns the payload summary, or "" when there is no payload.
func (s Structured) Summary() string {
	if s.Content == nil {
		return ""
	}
	return s.Content.Headline()
}

package dispatch

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"compliance_tui/pkg/response"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		query string
		want  response.Kind
	}{
		{"show me the dashboard", response.KindDashboard},
		{"Give me an OVERVIEW", response.KindDashboard},
		{"what are the KPIs", response.KindMetrics},
		{"statistics please", response.KindMetrics},
		{"metrics for Q1", response.KindMetrics},
		{"list open cases", response.KindTable},
		{"put it in a table", response.KindTable},
		{"any alert today", response.KindAlert},
		{"incident summary", response.KindAlert},
		{"warnings", response.KindAlert},
		{"monthly report", response.KindReport},
		{"risk analysis", response.KindReport},
		{"policy documents", response.KindTextWithLinks},
		{"send me the link", response.KindTextWithLinks},
		{"hello there", response.KindText},
		{"", response.KindText},
		{"   ", response.KindText},
		// Priority wins regardless of keyword position.
		{"alert dashboard", response.KindDashboard},
		{"report on the case list", response.KindTable},
		{"document the incident", response.KindAlert},
		{"kpi report", response.KindMetrics},
		// Substring containment, not word matching.
		{"showcase", response.KindTable},
		{"status of things", response.KindMetrics},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := Classify(tt.query); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	for i := 0; i < 20; i++ {
		if got := Classify("Incident report with KPI links"); got != response.KindMetrics {
			t.Fatalf("iteration %d: got %q, want metrics", i, got)
		}
	}
}

func TestMockResponderDashboard(t *testing.T) {
	m, err := NewMockResponder(0)
	if err != nil {
		t.Fatalf("NewMockResponder() error: %v", err)
	}

	res, err := m.Respond(context.Background(), "show me the dashboard")
	if err != nil {
		t.Fatalf("Respond() error: %v", err)
	}
	if res.Kind != response.KindDashboard {
		t.Fatalf("Kind = %q, want dashboard", res.Kind)
	}
	dash := res.Content.(response.Dashboard)
	if len(dash.Metrics) != 4 {
		t.Errorf("len(Metrics) = %d, want 4", len(dash.Metrics))
	}
	if len(dash.Charts) != 2 {
		t.Errorf("len(Charts) = %d, want 2", len(dash.Charts))
	}
	if dash.Metrics[0].Label != "Active Cases" || dash.Metrics[0].Value != "247" {
		t.Errorf("first metric = %+v", dash.Metrics[0])
	}
	if err := response.Validate(res); err != nil {
		t.Errorf("sample dashboard should validate: %v", err)
	}
}

func TestMockResponderTextFallbackEmbedsQuery(t *testing.T) {
	m, err := NewMockResponder(0)
	if err != nil {
		t.Fatalf("NewMockResponder() error: %v", err)
	}

	res, err := m.Respond(context.Background(), "hello there")
	if err != nil {
		t.Fatalf("Respond() error: %v", err)
	}
	if res.Kind != response.KindText {
		t.Fatalf("Kind = %q, want text", res.Kind)
	}
	if res.Summary() != "Response to your query" {
		t.Errorf("Summary() = %q", res.Summary())
	}
	text := res.Content.(response.Text).Text
	if !strings.HasPrefix(text, `I understand you're asking about: "hello there".`) {
		t.Errorf("text does not quote the query: %q", text)
	}
}

func TestSamplePayloadsValidate(t *testing.T) {
	for _, kind := range response.Kinds() {
		s := response.New(samplePayload(kind, "q"))
		if s.Kind != kind {
			t.Errorf("samplePayload(%q) produced %q", kind, s.Kind)
		}
		if err := response.Validate(s); err != nil {
			t.Errorf("samplePayload(%q) invalid: %v", kind, err)
		}
		if s.Summary() == "" {
			t.Errorf("samplePayload(%q) has empty summary", kind)
		}
	}
}

func TestMockResponderHonoursCancellation(t *testing.T) {
	m, err := NewMockResponder(time.Hour)
	if err != nil {
		t.Fatalf("NewMockResponder() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = m.Respond(ctx, "dashboard")
	if KindOf(err) != ErrCanceled {
		t.Fatalf("error kind = %q, want canceled (err=%v)", KindOf(err), err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error should wrap context.Canceled: %v", err)
	}
}

func TestMockResponderTimeout(t *testing.T) {
	m, err := NewMockResponder(time.Hour)
	if err != nil {
		t.Fatalf("NewMockResponder() error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = m.Respond(ctx, "dashboard")
	if KindOf(err) != ErrTimeout {
		t.Fatalf("error kind = %q, want timeout", KindOf(err))
	}
}

func TestMockResponderLatency(t *testing.T) {
	m, err := NewMockResponder(30 * time.Millisecond)
	if err != nil {
		t.Fatalf("NewMockResponder() error: %v", err)
	}

	start := time.Now()
	if _, err := m.Respond(context.Background(), "report"); err != nil {
		t.Fatalf("Respond() error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("Respond() returned after %v, want >= 30ms", elapsed)
	}
}

package dispatch

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"compliance_tui/pkg/config"
	"compliance_tui/pkg/response"

	goahocorasick "github.com/anknown/ahocorasick"
)

func init() {
	RegisterResponder(ResponderInfo{
		Type:        ResponderMock,
		Name:        "Sample data",
		Description: "Built-in keyword-matched sample responses",
	}, newMockFromConfig)
}

// keywordRule maps a set of trigger words to a response kind. Rules are
// listed in priority order; the first rule with any hit wins.
type keywordRule struct {
	kind     response.Kind
	keywords []string
}

var keywordRules = []keywordRule{
	{kind: response.KindDashboard, keywords: []string{"dashboard", "overview"}},
	{kind: response.KindMetrics, keywords: []string{"metric", "stat", "kpi"}},
	{kind: response.KindTable, keywords: []string{"table", "list", "case"}},
	{kind: response.KindAlert, keywords: []string{"alert", "warning", "incident"}},
	{kind: response.KindReport, keywords: []string{"report", "analysis"}},
	{kind: response.KindTextWithLinks, keywords: []string{"link", "document", "policy"}},
}

// KeywordMatcher classifies queries with a single Aho-Corasick pass.
type KeywordMatcher struct {
	machine  *goahocorasick.Machine
	priority map[string]int
}

// NewKeywordMatcher builds the automaton for the keyword table.
func NewKeywordMatcher() (*KeywordMatcher, error) {
	priority := make(map[string]int)
	words := make([]string, 0)
	for i, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if _, dup := priority[kw]; dup {
				continue
			}
			priority[kw] = i
			words = append(words, kw)
		}
	}
	// The double-array trie under the machine requires sorted input.
	sort.Strings(words)

	patterns := make([][]rune, len(words))
	for i, w := range words {
		patterns[i] = []rune(w)
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, fmt.Errorf("build keyword automaton: %w", err)
	}
	return &KeywordMatcher{machine: m, priority: priority}, nil
}

// Classify returns the response kind for query. Matching is
// case-insensitive substring containment; the highest-priority rule with
// any hit wins and queries with no hit fall back to plain text.
func (k *KeywordMatcher) Classify(query string) response.Kind {
	lower := []rune(strings.ToLower(query))
	if len(lower) == 0 {
		return response.KindText
	}

	best := len(keywordRules)
	for _, term := range k.machine.MultiPatternSearch(lower, false) {
		if p, ok := k.priority[string(term.Word)]; ok && p < best {
			best = p
		}
	}
	if best == len(keywordRules) {
		return response.KindText
	}
	return keywordRules[best].kind
}

var defaultMatcher = sync.OnceValues(NewKeywordMatcher)

// Classify runs the default keyword matcher.
func Classify(query string) response.Kind {
	m, err := defaultMatcher()
	if err != nil {
		return response.KindText
	}
	return m.Classify(query)
}

// MockResponder answers every query with built-in sample data after a
// simulated network delay.
type MockResponder struct {
	latency time.Duration
	matcher *KeywordMatcher
}

// NewMockResponder creates a mock responder. A zero latency answers immediately.
func NewMockResponder(latency time.Duration) (*MockResponder, error) {
	m, err := defaultMatcher()
	if err != nil {
		return nil, err
	}
	if latency < 0 {
		latency = 0
	}
	return &MockResponder{latency: latency, matcher: m}, nil
}

func newMockFromConfig(cfg config.Config) (Responder, error) {
	return NewMockResponder(time.Duration(cfg.Mock.LatencyMs) * time.Millisecond)
}

// Respond waits for the configured latency, then returns the sample payload
// chosen by the keyword table.
func (m *MockResponder) Respond(ctx context.Context, query string) (response.Structured, error) {
	if m.latency > 0 {
		timer := time.NewTimer(m.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return response.Structured{}, ContextError(ctx)
		case <-timer.C:
		}
	} else if err := ContextError(ctx); err != nil {
		return response.Structured{}, err
	}

	return response.New(samplePayload(m.matcher.Classify(query), query)), nil
}

package statusbar

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestNewStatusBarView(t *testing.T) {
	sb := NewStatusBarView()

	if sb == nil {
		t.Fatal("NewStatusBarView() returned nil")
	}
	if sb.width != 80 {
		t.Errorf("Expected default width 80, got %d", sb.width)
	}
}

func TestStatusBarView_Render(t *testing.T) {
	sb := NewStatusBarView()
	sb.SetWidth(100)
	sb.SetResponder("Sample data")
	sb.SetMessageCount(4)

	rendered := ansi.Strip(sb.Render())

	for _, want := range []string{"[source]: Sample data", "4 messages", "ready", "/help for commands"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("Expected %q in %q", want, rendered)
		}
	}
	if w := ansi.StringWidth(sb.Render()); w != 100 {
		t.Errorf("Expected width 100, got %d", w)
	}
}

func TestStatusBarView_Busy(t *testing.T) {
	sb := NewStatusBarView()
	sb.SetWidth(100)
	sb.SetMessageCount(1)
	sb.SetBusy(true)

	rendered := ansi.Strip(sb.Render())
	if !strings.Contains(rendered, "working") {
		t.Errorf("Expected busy state in %q", rendered)
	}
	if !strings.Contains(rendered, "1 message |") {
		t.Errorf("Expected singular label in %q", rendered)
	}
}

func TestStatusBarView_Notice(t *testing.T) {
	sb := NewStatusBarView()
	sb.SetWidth(120)
	sb.SetNotice("Copied response to clipboard")

	rendered := ansi.Strip(sb.Render())
	if !strings.HasPrefix(strings.TrimSpace(rendered), "Copied response to clipboard") {
		t.Errorf("Expected notice first, got %q", rendered)
	}
	if strings.Contains(rendered, "/help for commands") {
		t.Error("Expected notice to replace help hint")
	}

	sb.SetNotice("")
	if sb.Notice() != "" {
		t.Error("Expected notice to be cleared")
	}
}

func TestStatusBarView_Truncates(t *testing.T) {
	sb := NewStatusBarView()
	sb.SetWidth(30)
	sb.SetResponder("A very long responder name that does not fit")

	rendered := sb.Render()
	if w := ansi.StringWidth(rendered); w != 30 {
		t.Errorf("Expected width 30, got %d", w)
	}
	if !strings.Contains(ansi.Strip(rendered), "...") {
		t.Errorf("Expected ellipsis in %q", ansi.Strip(rendered))
	}
}

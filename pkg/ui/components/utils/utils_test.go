package utils

import (
	"reflect"
	"testing"
)

func TestTruncateToWidth(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"hello", 3, "hel"},
		{"hello", 0, ""},
		{"日本語テキスト", 7, "日本..."},
	}
	for _, tt := range tests {
		if got := TruncateToWidth(tt.in, tt.width); got != tt.want {
			t.Errorf("TruncateToWidth(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestPadStyled(t *testing.T) {
	if got := PadStyled("ab", 4); got != "ab  " {
		t.Errorf("PadStyled() = %q", got)
	}
	if got := PadStyled("abcdef", 4); got != "abcdef" {
		t.Errorf("PadStyled() should not trim, got %q", got)
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  []string
	}{
		{"fits", "show cases", 20, []string{"show cases"}},
		{"wraps words", "show me the dashboard", 10, []string{"show me", "the", "dashboard"}},
		{"splits long word", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"keeps newlines", "a\n\nb", 5, []string{"a", "", "b"}},
		{"no width", "text", 0, []string{"text"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Wrap(tt.in, tt.width); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Wrap(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}

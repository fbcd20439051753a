package response

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid response")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks that the payload matches the kind and is well formed.
func Validate(s Structured) error {
	if !s.Kind.Valid() {
		return fmt.Errorf("%w: %w: %q", ErrInvalid, ErrUnknownKind, s.Kind)
	}
	if s.Content == nil {
		return fmt.Errorf("%w: %s response has no content", ErrInvalid, s.Kind)
	}
	if got := s.Content.Kind(); got != s.Kind {
		return fmt.Errorf("%w: type %q carries %s content", ErrInvalid, s.Kind, got)
	}
	if err := validate.Struct(s.Content); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalid, s.Kind, err)
	}

	switch p := s.Content.(type) {
	case Table:
		return validateTable(p)
	case Report:
		return validateReport(p)
	case Dashboard:
		return validateCharts(p.Charts)
	}
	return nil
}

func validateTable(t Table) error {
	for i, row := range t.Rows {
		if len(row) != len(t.Headers) {
			return fmt.Errorf("%w: table row %d has %d cells, want %d", ErrInvalid, i, len(row), len(t.Headers))
		}
	}
	return nil
}

func validateReport(r Report) error {
	for i, section := range r.Sections {
		set := 0
		if section.Content != "" {
			set++
		}
		if len(section.Items) > 0 {
			set++
		}
		if len(section.Metrics) > 0 {
			set++
		}
		if set > 1 {
			return fmt.Errorf("%w: report section %d (%s) mixes content, items and metrics", ErrInvalid, i, section.Title)
		}
	}
	return nil
}

func validateCharts(charts []Chart) error {
	for i, chart := range charts {
		if len(chart.Labels) > 0 && len(chart.Data.Series) > 0 && len(chart.Labels) != len(chart.Data.Series) {
			return fmt.Errorf("%w: chart %d (%s) has %d labels for %d values", ErrInvalid, i, chart.Title, len(chart.Labels), len(chart.Data.Series))
		}
	}
	return nil
}

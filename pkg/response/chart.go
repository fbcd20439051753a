package response

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ChartPoint is a labelled, coloured data point.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color,omitempty"`
}

// ChartData holds either a plain number series or a list of points.
type ChartData struct {
	Series []float64
	Points []ChartPoint
}

// Len returns the number of data entries.
func (d ChartData) Len() int {
	if d.Points != nil {
		return len(d.Points)
	}
	return len(d.Series)
}

// Values returns the numeric values regardless of representation.
func (d ChartData) Values() []float64 {
	if d.Points == nil {
		return d.Series
	}
	values := make([]float64, len(d.Points))
	for i, p := range d.Points {
		values[i] = p.Value
	}
	return values
}

func (d ChartData) MarshalJSON() ([]byte, error) {
	if d.Points != nil {
		return json.Marshal(d.Points)
	}
	if d.Series == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(d.Series)
}

func (d *ChartData) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("chart data must be an array: %w", err)
	}
	*d = ChartData{}
	if len(raw) == 0 {
		d.Series = []float64{}
		return nil
	}

	first := bytes.TrimSpace(raw[0])
	if len(first) > 0 && first[0] == '{' {
		var points []ChartPoint
		if err := json.Unmarshal(data, &points); err != nil {
			return fmt.Errorf("decode chart points: %w", err)
		}
		d.Points = points
		return nil
	}

	var series []float64
	if err := json.Unmarshal(data, &series); err != nil {
		return errors.New("chart data must be numbers or {label, value} objects")
	}
	d.Series = series
	return nil
}

// Chart is a titled chart on a dashboard.
type Chart struct {
	Title  string    `json:"title" validate:"required"`
	Type   string    `json:"type" validate:"required"`
	Data   ChartData `json:"data"`
	Labels []string  `json:"labels,omitempty"`
}

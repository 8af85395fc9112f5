package domain

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
)

// SeriesPoint is one sample of a chartable series.
type SeriesPoint struct {
	Period int             `json:"period"`
	Value  decimal.Decimal `json:"value"`
}

// Series is an ordered set of samples, ascending by Period.
type Series []SeriesPoint

// Last returns the final sample, or a zero point for an empty series.
func (s Series) Last() SeriesPoint {
	if len(s) == 0 {
		return SeriesPoint{}
	}
	return s[len(s)-1]
}

// ScenarioSet holds aligned series for a group of what-if runs.
// Every entry of Series shares the period indices listed in Periods.
type ScenarioSet struct {
	Baseline string            `json:"baseline"`
	Labels   []string          `json:"labels"`
	Periods  []int             `json:"periods"`
	Series   map[string]Series `json:"series"`
	Errors   map[string]string `json:"errors,omitempty"`
}

// Value returns the value of the labelled series at a period.
func (s *ScenarioSet) Value(label string, period int) (decimal.Decimal, bool) {
	series, ok := s.Series[label]
	if !ok {
		return decimal.Zero, false
	}
	i := sort.Search(len(series), func(i int) bool { return series[i].Period >= period })
	if i < len(series) && series[i].Period == period {
		return series[i].Value, true
	}
	return decimal.Zero, false
}

// Rows pivots the set into one record per period for chart renderers.
// Failed scenarios have no series and are omitted.
func (s *ScenarioSet) Rows() []ChartRow {
	rows := make([]ChartRow, 0, len(s.Periods))
	for i, period := range s.Periods {
		row := ChartRow{Period: period, Values: make(map[string]decimal.Decimal, len(s.Labels))}
		for _, label := range s.Labels {
			series, ok := s.Series[label]
			if !ok || i >= len(series) {
				continue
			}
			row.Values[label] = series[i].Value
		}
		rows = append(rows, row)
	}
	return rows
}

// ChartRow is one period of a ScenarioSet keyed by scenario label.
type ChartRow struct {
	Period int
	Values map[string]decimal.Decimal
}

// MarshalJSON flattens the row into {"period": n, "<label>": value, ...}
// with labels in sorted order and values as JSON numbers rounded to cents.
func (r ChartRow) MarshalJSON() ([]byte, error) {
	labels := make([]string, 0, len(r.Values))
	for label := range r.Values {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var buf bytes.Buffer
	buf.WriteString(`{"period":`)
	buf.WriteString(strconv.Itoa(r.Period))
	for _, label := range labels {
		key, err := json.Marshal(label)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(r.Values[label].StringFixed(2))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

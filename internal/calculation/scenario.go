package calculation

import (
	"fmt"
	"sort"

	"github.com/finassess/assessment-engine/internal/domain"
	"github.com/shopspring/decimal"
)

// BuildScenarioMatrix runs a projection once for the zero value of T (the
// baseline) and once per parameter, then aligns every series onto the union of
// their period indices. Periods past the end of a shorter series carry its last
// value forward. A failing or panicking run is recorded in Errors and does not
// affect the others. Parameters whose label was already used are skipped.
func BuildScenarioMatrix[T any](params []T, label func(T) string, run func(T) (domain.Series, error)) *domain.ScenarioSet {
	set := &domain.ScenarioSet{
		Series: make(map[string]domain.Series),
		Errors: make(map[string]string),
	}

	var baseline T
	runs := append([]T{baseline}, params...)
	seen := make(map[string]bool, len(runs))
	for i, p := range runs {
		name := label(p)
		if seen[name] {
			continue
		}
		seen[name] = true
		if i == 0 {
			set.Baseline = name
		}
		set.Labels = append(set.Labels, name)

		series, err := runIsolated(run, p)
		if err != nil {
			set.Errors[name] = err.Error()
			continue
		}
		sorted := append(domain.Series(nil), series...)
		sort.SliceStable(sorted, func(a, b int) bool { return sorted[a].Period < sorted[b].Period })
		set.Series[name] = sorted
	}

	alignSeries(set)
	return set
}

func runIsolated[T any](run func(T) (domain.Series, error), p T) (series domain.Series, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("scenario panicked: %v", r)
		}
	}()
	return run(p)
}

func alignSeries(set *domain.ScenarioSet) {
	unique := make(map[int]struct{})
	for _, series := range set.Series {
		for _, p := range series {
			unique[p.Period] = struct{}{}
		}
	}
	periods := make([]int, 0, len(unique))
	for p := range unique {
		periods = append(periods, p)
	}
	sort.Ints(periods)
	set.Periods = periods

	for name, series := range set.Series {
		aligned := make(domain.Series, 0, len(periods))
		last := decimal.Zero
		if len(series) > 0 {
			last = series[0].Value
		}
		j := 0
		for _, period := range periods {
			for j < len(series) && series[j].Period <= period {
				last = series[j].Value
				j++
			}
			aligned = append(aligned, domain.SeriesPoint{Period: period, Value: last})
		}
		set.Series[name] = aligned
	}
}

package query

import (
	"log/slog"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"oewsq/pkg/contracts/domain"
)

// USMedianWage returns the annual median wage of the "All Occupations"
// crosswalk row. When that row is absent it falls back to the median of all
// reported annual medians across the crosswalk, an approximation rather
// than a published statistic. NaN when no annual median data exists at all.
func (e *Engine) USMedianWage() (float64, error) {
	cw, err := e.store.Crosswalk()
	if err != nil {
		return math.NaN(), err
	}

	if cw.HasAnnualMedian() {
		for _, r := range cw.Rows {
			if r.OccCode == domain.AggregateOccCode {
				return deref(r.AMedian), nil
			}
		}
	}

	if !cw.HasAnnualMedian() {
		return math.NaN(), nil
	}

	medians := make([]float64, 0, len(cw.Rows))
	for _, r := range cw.Rows {
		if r.AMedian != nil {
			medians = append(medians, *r.AMedian)
		}
	}
	if len(medians) == 0 {
		return math.NaN(), nil
	}

	sort.Float64s(medians)
	fallback := stat.Quantile(0.5, stat.LinInterp, medians, nil)

	e.logger.Debug("us median wage approximated from median of medians",
		slog.Float64("value", fallback),
		slog.Int("occupations", len(medians)))

	return fallback, nil
}

// TopOccupationsByEmployment ranks occupations by total employment,
// excluding the aggregate row. Missing employment sorts last; ties keep
// input order.
func (e *Engine) TopOccupationsByEmployment(k int) ([]domain.OccupationRank, error) {
	cw, err := e.store.Crosswalk()
	if err != nil {
		return nil, err
	}

	rows := make([]domain.Row, 0, len(cw.Rows))
	for _, r := range cw.Rows {
		if r.OccCode == domain.AggregateOccCode {
			continue
		}
		rows = append(rows, r)
	}

	if cw.HasTotEmp() {
		sortDescending(len(rows),
			func(i int) float64 { return deref(rows[i].TotEmp) },
			func(i, j int) { rows[i], rows[j] = rows[j], rows[i] })
	}

	out := make([]domain.OccupationRank, 0, limit(k, len(rows)))
	for _, r := range rows[:limit(k, len(rows))] {
		out = append(out, domain.OccupationRank{
			OccCode:         r.OccCode,
			OccTitle:        r.OccTitle,
			TotalEmployment: deref(r.TotEmp),
			AnnualMedian:    deref(r.AMedian),
			MeanWage:        deref(r.AMean),
		})
	}
	return out, nil
}

// OccupationListAZ lists every occupation in the crosswalk except the
// aggregate row, deduplicated by (code, title) and sorted by title.
func (e *Engine) OccupationListAZ() ([]domain.Occupation, error) {
	cw, err := e.store.Crosswalk()
	if err != nil {
		return nil, err
	}

	type key struct{ code, title string }
	seen := make(map[key]bool, len(cw.Rows))

	out := make([]domain.Occupation, 0, len(cw.Rows))
	for _, r := range cw.Rows {
		if r.OccCode == domain.AggregateOccCode {
			continue
		}
		k := key{r.OccCode, r.OccTitle}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, domain.Occupation{OccCode: r.OccCode, OccTitle: r.OccTitle})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OccTitle < out[j].OccTitle
	})
	return out, nil
}

// SearchOccupations returns the occupation list filtered to titles
// containing q, case-insensitively. An empty query returns the full list.
func (e *Engine) SearchOccupations(q string) ([]domain.Occupation, error) {
	list, err := e.OccupationListAZ()
	if err != nil {
		return nil, err
	}

	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return list, nil
	}

	out := make([]domain.Occupation, 0, len(list))
	for _, occ := range list {
		if strings.Contains(strings.ToLower(occ.OccTitle), q) {
			out = append(out, occ)
		}
	}
	return out, nil
}

// SnapshotForOcc summarizes one occupation by exact raw-code match against
// the crosswalk. The second return value is false when the code is unknown;
// that is not an error.
func (e *Engine) SnapshotForOcc(code string) (domain.Snapshot, bool, error) {
	cw, err := e.store.Crosswalk()
	if err != nil {
		return domain.Snapshot{}, false, err
	}

	row, ok := findByRawCode(cw.Rows, code)
	if !ok {
		return domain.Snapshot{}, false, nil
	}

	usMedian, err := e.USMedianWage()
	if err != nil {
		return domain.Snapshot{}, false, err
	}

	relative := math.NaN()
	if row.AMedian != nil && !math.IsNaN(usMedian) && usMedian > 0 {
		relative = *row.AMedian / usMedian
	}

	return domain.Snapshot{
		OccCode:         code,
		OccTitle:        row.OccTitle,
		AnnualMedian:    deref(row.AMedian),
		MeanWage:        deref(row.AMean),
		WageP10:         deref(row.APct10),
		WageP90:         deref(row.APct90),
		TotalEmployment: deref(row.TotEmp),
		RelativeWage:    relative,
	}, true, nil
}

// WageDistributionForOcc returns the five-point annual wage distribution
// for one occupation, matched by exact raw code. The second return value is
// false when the code is unknown.
func (e *Engine) WageDistributionForOcc(code string) (domain.WageDistribution, bool, error) {
	cw, err := e.store.Crosswalk()
	if err != nil {
		return domain.WageDistribution{}, false, err
	}

	row, ok := findByRawCode(cw.Rows, code)
	if !ok {
		return domain.WageDistribution{}, false, nil
	}

	return domain.WageDistribution{
		P10:    deref(row.APct10),
		P25:    deref(row.APct25),
		Median: deref(row.AMedian),
		P75:    deref(row.APct75),
		P90:    deref(row.APct90),
	}, true, nil
}

// findByRawCode returns the first row whose raw occupation code equals code.
func findByRawCode(rows []domain.Row, code string) (domain.Row, bool) {
	for _, r := range rows {
		if r.OccCode == code {
			return r, true
		}
	}
	return domain.Row{}, false
}

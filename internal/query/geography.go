package query

import (
	"log/slog"
	"strings"

	apperrors "oewsq/internal/errors"
	"oewsq/internal/soc"
	"oewsq/internal/tablestore"
	"oewsq/pkg/contracts/domain"
)

// Substrings recognized in text AREA_TYPE values, used only when the
// numeric mirror carries no values; source files are inconsistent about
// which encoding they use.
var (
	stateAreaTerms = []string{"state"}
	msaAreaTerms   = []string{"metro", "metropolitan", "micro", "nonmetro"}
)

// TopGeographiesForOcc ranks geographies by median wage for one occupation.
// Rows without a usable wage are dropped; the result is empty (never an
// error) when the occupation, the geography level, or a wage column cannot
// be matched.
func (e *Engine) TopGeographiesForOcc(code string, level GeoLevel, topN int) ([]domain.GeoWage, error) {
	t, err := e.geoTable(level)
	if err != nil {
		return nil, err
	}

	out := make([]domain.GeoWage, 0, limit(topN, len(t.Rows)))

	rows := filterByLevel(filterByOcc(t, code), level)
	if len(rows) == 0 {
		return out, nil
	}

	wage, ok := wageColumn(t)
	if !ok {
		e.logger.Debug("no usable wage column",
			slog.String("kind", string(t.Kind)),
			slog.String("occ_code", code))
		return out, nil
	}

	type ranked struct {
		row  domain.Row
		wage float64
	}
	candidates := make([]ranked, 0, len(rows))
	for _, r := range rows {
		w := wage(&r)
		if w == nil {
			continue
		}
		candidates = append(candidates, ranked{row: r, wage: *w})
	}

	sortDescending(len(candidates),
		func(i int) float64 { return candidates[i].wage },
		func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })

	for _, c := range candidates[:limit(topN, len(candidates))] {
		out = append(out, domain.GeoWage{
			AreaTitle:    c.row.AreaTitle,
			AnnualMedian: c.wage,
			TotEmp:       copyOpt(c.row.TotEmp),
			LocQuotient:  copyOpt(c.row.LocQuotient),
		})
	}
	return out, nil
}

// EmploymentConcentrationForOcc ranks geographies by location quotient for
// one occupation. The quotient is resolved in priority order: the direct
// column, its alias, then an approximation from jobs-per-1000 against the
// national baseline. The result is empty when nothing resolves.
func (e *Engine) EmploymentConcentrationForOcc(code string, level GeoLevel, topN int) ([]domain.Concentration, error) {
	t, err := e.geoTable(level)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Concentration, 0, limit(topN, len(t.Rows)))

	rows := filterByLevel(filterByOcc(t, code), level)
	if len(rows) == 0 {
		return out, nil
	}

	lq, ok, err := e.resolveLocQuotient(t, rows, code)
	if err != nil {
		return nil, err
	}
	if !ok {
		e.logger.Debug("no resolvable location quotient",
			slog.String("kind", string(t.Kind)),
			slog.String("occ_code", code))
		return out, nil
	}

	wage, hasWage := wageColumn(t)

	type ranked struct {
		row domain.Row
		lq  float64
	}
	candidates := make([]ranked, 0, len(rows))
	for i, r := range rows {
		v := lq(i)
		if v == nil {
			continue
		}
		candidates = append(candidates, ranked{row: r, lq: *v})
	}

	sortDescending(len(candidates),
		func(i int) float64 { return candidates[i].lq },
		func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })

	for _, c := range candidates[:limit(topN, len(candidates))] {
		item := domain.Concentration{
			AreaTitle:   c.row.AreaTitle,
			LocQuotient: c.lq,
			TotEmp:      copyOpt(c.row.TotEmp),
		}
		if hasWage {
			item.AnnualMedian = copyOpt(wage(&c.row))
		}
		out = append(out, item)
	}
	return out, nil
}

// geoTable maps a geography level to its source table.
func (e *Engine) geoTable(level GeoLevel) (*tablestore.Table, error) {
	switch level {
	case LevelState:
		return e.store.Load(domain.KindState)
	case LevelMSA:
		return e.store.Load(domain.KindMSA)
	default:
		return nil, apperrors.NewInvalidLevelError(string(level))
	}
}

// filterByOcc keeps rows matching the canonicalized occupation code, using
// the precomputed canonical column when the load populated it and
// canonicalizing the raw code on the fly otherwise.
func filterByOcc(t *tablestore.Table, code string) []domain.Row {
	canon := soc.Canonicalize(code)

	out := make([]domain.Row, 0, 64)
	for _, r := range t.Rows {
		rowCanon := r.SOCCanon
		if rowCanon == "" {
			rowCanon = soc.Canonicalize(r.OccCode)
		}
		if rowCanon == canon && rowCanon != "" {
			out = append(out, r)
		}
	}
	return out
}

// filterByLevel keeps rows of the requested geography level. The numeric
// area-type mirror wins when it carries any value (2=state, 4=MSA);
// otherwise text matching on the area-type string is the fallback.
func filterByLevel(rows []domain.Row, level GeoLevel) []domain.Row {
	anyNumeric := false
	for _, r := range rows {
		if r.AreaTypeNum != nil {
			anyNumeric = true
			break
		}
	}

	out := make([]domain.Row, 0, len(rows))

	if anyNumeric {
		target := areaTypeState
		if level == LevelMSA {
			target = areaTypeMSA
		}
		for _, r := range rows {
			if r.AreaTypeNum != nil && *r.AreaTypeNum == target {
				out = append(out, r)
			}
		}
		return out
	}

	terms := stateAreaTerms
	if level == LevelMSA {
		terms = msaAreaTerms
	}
	for _, r := range rows {
		at := strings.ToLower(r.AreaType)
		for _, term := range terms {
			if strings.Contains(at, term) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// resolveLocQuotient returns an accessor for the location quotient of each
// filtered row: the direct column when it has any value, else the alias,
// else the jobs-per-1000 ratio against the national crosswalk baseline for
// the same occupation.
func (e *Engine) resolveLocQuotient(t *tablestore.Table, rows []domain.Row, code string) (func(i int) *float64, bool, error) {
	for _, r := range rows {
		if r.LocQuotient != nil {
			return func(i int) *float64 { return rows[i].LocQuotient }, true, nil
		}
	}
	for _, r := range rows {
		if r.LocQ != nil {
			return func(i int) *float64 { return rows[i].LocQ }, true, nil
		}
	}

	if !t.HasJobs1000() {
		return nil, false, nil
	}

	cw, err := e.store.Crosswalk()
	if err != nil {
		return nil, false, err
	}

	canon := soc.Canonicalize(code)
	var natJobs1000 *float64
	for _, r := range cw.Rows {
		if r.SOCCanon == canon {
			natJobs1000 = r.Jobs1000
			break
		}
	}
	if natJobs1000 == nil || *natJobs1000 <= 0 {
		return nil, false, nil
	}

	nat := *natJobs1000
	e.logger.Debug("approximating location quotient from jobs per 1000",
		slog.String("occ_code", code),
		slog.Float64("national_jobs_1000", nat))

	return func(i int) *float64 {
		if rows[i].Jobs1000 == nil {
			return nil
		}
		v := *rows[i].Jobs1000 / nat
		return &v
	}, true, nil
}

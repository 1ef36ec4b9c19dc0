package tablestore

import (
	"math"
	"strconv"
	"strings"

	"oewsq/internal/soc"
	"oewsq/pkg/contracts/domain"
)

// Source column names of the OEWS release files.
const (
	colOccCode    = "OCC_CODE"
	colOccTitle   = "OCC_TITLE"
	colOGroup     = "O_GROUP"
	colArea       = "AREA"
	colAreaTitle  = "AREA_TITLE"
	colAreaType   = "AREA_TYPE"
	colNAICS      = "NAICS"
	colNAICSTitle = "NAICS_TITLE"

	colTotEmp      = "TOT_EMP"
	colEmpPRSE     = "EMP_PRSE"
	colJobs1000    = "JOBS_1000"
	colLocQuotient = "LOC_QUOTIENT"
	colLocQ        = "LOC_Q"
	colPctTotal    = "PCT_TOTAL"
	colPctRpt      = "PCT_RPT"
	colHMean       = "H_MEAN"
	colAMean       = "A_MEAN"
	colMeanPRSE    = "MEAN_PRSE"
	colHPct10      = "H_PCT10"
	colHPct25      = "H_PCT25"
	colHMedian     = "H_MEDIAN"
	colHPct75      = "H_PCT75"
	colHPct90      = "H_PCT90"
	colAPct10      = "A_PCT10"
	colAPct25      = "A_PCT25"
	colAMedian     = "A_MEDIAN"
	colAPct75      = "A_PCT75"
	colAPct90      = "A_PCT90"

	// Derived columns.
	colSOCCanon      = "SOC_CANON"
	colAMedianAnnual = "A_MEDIAN_ANNUAL"
)

// AnnualHours converts an hourly wage to an annual one, the standard
// full-time convention of the survey.
const AnnualHours = 2080.0

// Table is one normalized source table: cleaned rows plus the set of source
// columns the file actually carried, which drives alias and fallback
// decisions downstream.
type Table struct {
	Kind domain.TableKind
	Rows []domain.Row

	present map[string]bool
}

func (t *Table) has(col string) bool { return t.present[col] }

// HasOccCode reports whether the source carried an occupation-code column.
func (t *Table) HasOccCode() bool { return t.has(colOccCode) }

// HasOGroup reports whether the source carried the occupation-group flag.
func (t *Table) HasOGroup() bool { return t.has(colOGroup) }

// HasAnnualMedian reports whether the source carried the annual median wage.
func (t *Table) HasAnnualMedian() bool { return t.has(colAMedian) }

// HasHourlyMedian reports whether the source carried the hourly median wage.
func (t *Table) HasHourlyMedian() bool { return t.has(colHMedian) }

// HasAnnualMedianFallback reports whether the derived
// annual-median-with-fallback column exists.
func (t *Table) HasAnnualMedianFallback() bool { return t.has(colAMedianAnnual) }

// HasLocQuotient reports whether the canonical location-quotient column
// exists (directly or populated from its alias).
func (t *Table) HasLocQuotient() bool { return t.has(colLocQuotient) }

// HasLocQAlias reports whether the alternate location-quotient column
// exists in the source.
func (t *Table) HasLocQAlias() bool { return t.has(colLocQ) }

// HasJobs1000 reports whether the jobs-per-1000 concentration column exists.
func (t *Table) HasJobs1000() bool { return t.has(colJobs1000) }

// HasPctTotal reports whether the percent-of-total employment column exists.
func (t *Table) HasPctTotal() bool { return t.has(colPctTotal) }

// HasTotEmp reports whether the total-employment column exists.
func (t *Table) HasTotEmp() bool { return t.has(colTotEmp) }

// HasAreaType reports whether the area-type column (and therefore its
// numeric mirror) exists.
func (t *Table) HasAreaType() bool { return t.has(colAreaType) }

// HasNAICSTitle reports whether the industry-title column exists.
func (t *Table) HasNAICSTitle() bool { return t.has(colNAICSTitle) }

// HasNAICS reports whether the raw industry-code column exists.
func (t *Table) HasNAICS() bool { return t.has(colNAICS) }

// normalize cleans a raw table into its canonical in-memory form. Applied
// in order: identifier trimming, area-type numeric mirror, measure
// coercion, location-quotient alias resolution, canonical occupation code,
// annual-median fallback.
func normalize(kind domain.TableKind, raw *domain.RawTable) *Table {
	idx := headerIndex(raw.Headers)

	t := &Table{
		Kind:    kind,
		Rows:    make([]domain.Row, 0, len(raw.Rows)),
		present: make(map[string]bool, len(idx)+2),
	}
	for col := range idx {
		t.present[col] = true
	}

	cell := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	num := func(row []string, col string) *float64 {
		return parseMeasure(cell(row, col))
	}

	for _, src := range raw.Rows {
		r := domain.Row{
			OccCode:    cell(src, colOccCode),
			OccTitle:   cell(src, colOccTitle),
			OGroup:     cell(src, colOGroup),
			Area:       cell(src, colArea),
			AreaTitle:  cell(src, colAreaTitle),
			AreaType:   cell(src, colAreaType),
			NAICS:      cell(src, colNAICS),
			NAICSTitle: cell(src, colNAICSTitle),

			AreaTypeNum: num(src, colAreaType),

			TotEmp:      num(src, colTotEmp),
			EmpPRSE:     num(src, colEmpPRSE),
			Jobs1000:    num(src, colJobs1000),
			LocQuotient: num(src, colLocQuotient),
			LocQ:        num(src, colLocQ),
			PctTotal:    num(src, colPctTotal),
			PctRpt:      num(src, colPctRpt),

			HMean:    num(src, colHMean),
			AMean:    num(src, colAMean),
			MeanPRSE: num(src, colMeanPRSE),

			HPct10:  num(src, colHPct10),
			HPct25:  num(src, colHPct25),
			HMedian: num(src, colHMedian),
			HPct75:  num(src, colHPct75),
			HPct90:  num(src, colHPct90),

			APct10:  num(src, colAPct10),
			APct25:  num(src, colAPct25),
			AMedian: num(src, colAMedian),
			APct75:  num(src, colAPct75),
			APct90:  num(src, colAPct90),
		}
		t.Rows = append(t.Rows, r)
	}

	// Populate the canonical location-quotient column from its alias when
	// the source only carries the alternate name.
	if !t.has(colLocQuotient) && t.has(colLocQ) {
		for i := range t.Rows {
			t.Rows[i].LocQuotient = t.Rows[i].LocQ
		}
		t.present[colLocQuotient] = true
	}

	if t.has(colOccCode) {
		for i := range t.Rows {
			t.Rows[i].SOCCanon = soc.Canonicalize(t.Rows[i].OccCode)
		}
		t.present[colSOCCanon] = true
	}

	// Annual median with hourly fallback: occupations reported only with an
	// hourly median get hourly x 2080.
	if t.has(colAMedian) {
		for i := range t.Rows {
			r := &t.Rows[i]
			switch {
			case r.AMedian != nil:
				v := *r.AMedian
				r.AMedianAnnual = &v
			case r.HMedian != nil:
				v := *r.HMedian * AnnualHours
				r.AMedianAnnual = &v
			}
		}
		t.present[colAMedianAnnual] = true
	}

	return t
}

// headerIndex maps normalized header names to their column positions. The
// first occurrence of a duplicated header wins.
func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		name := strings.ToUpper(strings.TrimSpace(h))
		if name == "" {
			continue
		}
		if _, seen := idx[name]; !seen {
			idx[name] = i
		}
	}
	return idx
}

// parseMeasure coerces one measure cell to a number. Release files mix
// numbers with suppression sentinels ("**", "#", "*", em/en dashes) and
// blanks; anything that does not parse is missing, never zero.
func parseMeasure(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "$")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

package query

import (
	"math"
	"strings"

	"oewsq/pkg/contracts/domain"
)

// sectorPrefix decorates industry titles in the natsector file.
const sectorPrefix = "Sector: "

// IndustryMixForOcc breaks one occupation's employment down by industry
// sector, matched by exact raw code against the industry table. Shares come
// from the reported percent-of-total column when it carries any value;
// otherwise they are computed from employment within the matched rows, with
// a zero or unusable employment total yielding a zero share for every row.
func (e *Engine) IndustryMixForOcc(code string, topN int) ([]domain.IndustryShare, error) {
	t, err := e.store.Load(domain.KindNatSector)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.Row, 0, 32)
	for _, r := range t.Rows {
		if r.OccCode == code {
			rows = append(rows, r)
		}
	}

	out := make([]domain.IndustryShare, 0, limit(topN, len(rows)))
	if len(rows) == 0 {
		return out, nil
	}

	shares := industryShares(rows)

	type ranked struct {
		label string
		share float64
	}
	candidates := make([]ranked, 0, len(rows))
	for i, r := range rows {
		candidates = append(candidates, ranked{
			label: industryLabel(t.HasNAICSTitle(), r),
			share: shares[i],
		})
	}

	sortDescending(len(candidates),
		func(i int) float64 { return candidates[i].share },
		func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })

	for _, c := range candidates[:limit(topN, len(candidates))] {
		out = append(out, domain.IndustryShare{Industry: c.label, SharePct: c.share})
	}
	return out, nil
}

// industryShares computes the share-of-employment percentage for each
// matched row.
func industryShares(rows []domain.Row) []float64 {
	shares := make([]float64, len(rows))

	anyPct := false
	for _, r := range rows {
		if r.PctTotal != nil {
			anyPct = true
			break
		}
	}
	if anyPct {
		for i, r := range rows {
			shares[i] = deref(r.PctTotal)
		}
		return shares
	}

	anyEmp := false
	total := 0.0
	for _, r := range rows {
		if r.TotEmp != nil {
			anyEmp = true
			total += *r.TotEmp
		}
	}

	switch {
	case !anyEmp:
		for i := range shares {
			shares[i] = math.NaN()
		}
	case total == 0:
		// Degenerate total: zero share across the board, not an error.
		for i := range shares {
			shares[i] = 0
		}
	default:
		for i, r := range rows {
			if r.TotEmp == nil {
				shares[i] = math.NaN()
				continue
			}
			shares[i] = *r.TotEmp / total * 100.0
		}
	}
	return shares
}

// industryLabel derives a display label: the industry title with the
// "Sector: " decoration removed, else the raw industry code, else empty.
func industryLabel(hasTitle bool, r domain.Row) string {
	if hasTitle {
		return strings.ReplaceAll(r.NAICSTitle, sectorPrefix, "")
	}
	return r.NAICS
}

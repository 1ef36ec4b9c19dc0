// Package query implements the read-only labor-market query operations over
// the table store: rankings, snapshots, wage distributions, geography and
// industry breakdowns.
//
// Every operation is a pure filter/derive/sort/project pipeline over cached
// immutable tables. "Not found" is never an error: operations degrade to
// empty fixed-schema results or NaN-bearing values. The only hard errors
// are those the store raises (unknown kind, unreadable source) plus an
// unknown geography level.
package query

import (
	"log/slog"
	"math"
	"sort"

	"oewsq/internal/tablestore"
	"oewsq/pkg/contracts/domain"
)

// GeoLevel selects the geography table for geographic queries.
type GeoLevel string

const (
	// LevelState queries the state-level table.
	LevelState GeoLevel = "state"
	// LevelMSA queries the metro/micro-area table.
	LevelMSA GeoLevel = "msa"
)

// Numeric AREA_TYPE codes of the survey.
const (
	areaTypeState = 2.0
	areaTypeMSA   = 4.0
)

// Engine answers labor-market queries against the table store.
type Engine struct {
	store  *tablestore.Store
	logger *slog.Logger
}

// NewEngine creates a query engine over the given store.
func NewEngine(store *tablestore.Store, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{store: store, logger: logger}
}

// deref turns an optional measure into a value, with NaN as the missing
// marker expected in query results.
func deref(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

// sortDescending stably sorts rows by key, largest first, missing (nil or
// NaN) keys last. Stability keeps ties in input order.
func sortDescending(n int, key func(i int) float64, swap func(i, j int)) {
	sort.Stable(&descSorter{n: n, key: key, swap: swap})
}

type descSorter struct {
	n    int
	key  func(i int) float64
	swap func(i, j int)
}

func (s *descSorter) Len() int { return s.n }

func (s *descSorter) Less(i, j int) bool {
	a, b := s.key(i), s.key(j)
	if math.IsNaN(a) {
		return false
	}
	if math.IsNaN(b) {
		return true
	}
	return a > b
}

func (s *descSorter) Swap(i, j int) { s.swap(i, j) }

// limit clamps a top-N request against the result length; non-positive N
// yields nothing.
func limit(n, available int) int {
	if n < 0 {
		n = 0
	}
	if n > available {
		n = available
	}
	return n
}

// copyOpt clones an optional measure so results never alias table rows.
func copyOpt(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// wageColumn picks the wage accessor for a geography table, in priority
// order: annual median with hourly fallback, reported annual median, hourly
// median converted inline. Returns false when the table has no usable wage
// column.
func wageColumn(t *tablestore.Table) (func(*domain.Row) *float64, bool) {
	switch {
	case t.HasAnnualMedianFallback():
		return func(r *domain.Row) *float64 { return r.AMedianAnnual }, true
	case t.HasAnnualMedian():
		return func(r *domain.Row) *float64 { return r.AMedian }, true
	case t.HasHourlyMedian():
		return func(r *domain.Row) *float64 {
			if r.HMedian == nil {
				return nil
			}
			v := *r.HMedian * tablestore.AnnualHours
			return &v
		}, true
	default:
		return nil, false
	}
}

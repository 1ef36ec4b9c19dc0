package query

import (
	"fmt"
	"path/filepath"
	"testing"

	"oewsq/internal/config"
	apperrors "oewsq/internal/errors"
	"oewsq/internal/tablestore"
	"oewsq/pkg/contracts/domain"
)

// fakeReader serves canned raw tables keyed by file base name.
type fakeReader struct {
	tables map[string]*domain.RawTable
}

func (f *fakeReader) ReadTable(path string) (*domain.RawTable, error) {
	if t, ok := f.tables[filepath.Base(path)]; ok {
		return t, nil
	}
	return nil, apperrors.NewSourceError(path, fmt.Errorf("no fixture"))
}

// fixtures maps table kinds to raw fixture tables for one test engine.
type fixtures map[domain.TableKind]*domain.RawTable

var kindFiles = map[domain.TableKind]string{
	domain.KindNational:  "national_M2024_dl.xlsx",
	domain.KindState:     "state_M2024_dl.xlsx",
	domain.KindMSA:       "MSA_M2024_dl.xlsx",
	domain.KindNatSector: "natsector_M2024_dl.xlsx",
}

func newTestEngine(t *testing.T, fx fixtures) *Engine {
	t.Helper()

	r := &fakeReader{tables: make(map[string]*domain.RawTable, len(fx))}
	for kind, raw := range fx {
		r.tables[kindFiles[kind]] = raw
	}

	store := tablestore.NewStore(config.DataConfig{Dir: "data"}, r, nil)
	return NewEngine(store, nil)
}

// nationalFixture is a small but realistic slice of the national file: the
// aggregate row, one summary-group row the crosswalk drops, and detailed
// occupations.
func nationalFixture() *domain.RawTable {
	return &domain.RawTable{
		Headers: []string{
			"OCC_CODE", "OCC_TITLE", "O_GROUP", "TOT_EMP", "JOBS_1000",
			"A_MEAN", "A_PCT10", "A_PCT25", "A_MEDIAN", "A_PCT75", "A_PCT90",
		},
		Rows: [][]string{
			{"00-0000", "All Occupations", "total", "151,853,870", "1000.0", "66,450", "23,980", "30,280", "48,060", "76,980", "115,480"},
			{"15-0000", "Computer and Mathematical Occupations", "major", "5,120,350", "33.7", "113,210", "50,960", "72,650", "104,420", "139,290", "176,750"},
			{"15-1252", "Software Developers", "detailed", "1,656,880", "10.9", "138,110", "77,020", "104,480", "133,080", "168,570", "208,620"},
			{"29-1141", "Registered Nurses", "detailed", "3,300,100", "21.7", "98,430", "66,030", "79,120", "93,600", "113,470", "135,320"},
			{"35-3023", "Fast Food and Counter Workers", "detailed", "3,676,580", "24.2", "29,540", "21,540", "24,110", "28,180", "31,470", "36,460"},
		},
	}
}

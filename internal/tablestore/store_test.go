package tablestore

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oewsq/internal/config"
	apperrors "oewsq/internal/errors"
	"oewsq/pkg/contracts/domain"
)

// fakeReader serves canned raw tables keyed by file base name, standing in
// for the excelize reader.
type fakeReader struct {
	tables map[string]*domain.RawTable
	errs   map[string]error
	reads  map[string]int
}

func newFakeReader() *fakeReader {
	return &fakeReader{
		tables: make(map[string]*domain.RawTable),
		errs:   make(map[string]error),
		reads:  make(map[string]int),
	}
}

func (f *fakeReader) ReadTable(path string) (*domain.RawTable, error) {
	name := filepath.Base(path)
	f.reads[name]++
	if err, ok := f.errs[name]; ok {
		return nil, err
	}
	if t, ok := f.tables[name]; ok {
		return t, nil
	}
	return nil, apperrors.NewSourceError(path, fmt.Errorf("no fixture for %s", name))
}

func testStore(r TableReader) *Store {
	return NewStore(config.DataConfig{Dir: "data"}, r, nil)
}

func nationalFixture() *domain.RawTable {
	return &domain.RawTable{
		Headers: []string{"OCC_CODE", "OCC_TITLE", "O_GROUP", "TOT_EMP", "A_MEDIAN", "JOBS_1000"},
		Rows: [][]string{
			{"00-0000", "All Occupations", "total", "151,853,870", "48,060", "1000.0"},
			{"15-0000", "Computer and Mathematical Occupations", "major", "5,120,350", "104,420", "33.7"},
			{"15-1252", "Software Developers", "detailed", "1,656,880", "133,080", "10.9"},
			{"29-1141", "Registered Nurses", "detailed", "3,300,100", "93,600", "21.7"},
		},
	}
}

func TestLoadUnknownKind(t *testing.T) {
	store := testStore(newFakeReader())

	_, err := store.Load(domain.TableKind("county"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
}

func TestLoadSourceUnavailable(t *testing.T) {
	r := newFakeReader()
	r.errs["national_M2024_dl.xlsx"] = apperrors.NewSourceError("data/national_M2024_dl.xlsx", fmt.Errorf("no such file"))
	store := testStore(r)

	_, err := store.Load(domain.KindNational)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))
}

func TestLoadMemoizesByKind(t *testing.T) {
	r := newFakeReader()
	r.tables["national_M2024_dl.xlsx"] = nationalFixture()
	store := testStore(r)

	first, err := store.Load(domain.KindNational)
	require.NoError(t, err)
	second, err := store.Load(domain.KindNational)
	require.NoError(t, err)

	// Identity, not mere equality: the cached object is reused.
	assert.Same(t, first, second)
	assert.Equal(t, 1, r.reads["national_M2024_dl.xlsx"])
}

func TestReset(t *testing.T) {
	r := newFakeReader()
	r.tables["national_M2024_dl.xlsx"] = nationalFixture()
	store := testStore(r)

	first, err := store.Load(domain.KindNational)
	require.NoError(t, err)

	store.Reset()

	second, err := store.Load(domain.KindNational)
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, 2, r.reads["national_M2024_dl.xlsx"])
}

func TestCrosswalkFiltersGroups(t *testing.T) {
	r := newFakeReader()
	r.tables["national_M2024_dl.xlsx"] = nationalFixture()
	store := testStore(r)

	cw, err := store.Crosswalk()
	require.NoError(t, err)

	codes := make([]string, 0, len(cw.Rows))
	for _, row := range cw.Rows {
		codes = append(codes, row.OccCode)
	}
	// The "major" summary row is excluded; total/detailed stay.
	assert.Equal(t, []string{"00-0000", "15-1252", "29-1141"}, codes)
}

func TestCrosswalkCached(t *testing.T) {
	r := newFakeReader()
	r.tables["national_M2024_dl.xlsx"] = nationalFixture()
	store := testStore(r)

	first, err := store.Crosswalk()
	require.NoError(t, err)
	second, err := store.Crosswalk()
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, r.reads["national_M2024_dl.xlsx"])
}

func TestCrosswalkWithoutGroupColumn(t *testing.T) {
	r := newFakeReader()
	r.tables["national_M2024_dl.xlsx"] = &domain.RawTable{
		Headers: []string{"OCC_CODE", "OCC_TITLE"},
		Rows: [][]string{
			{"00-0000", "All Occupations"},
			{"15-1252", "Software Developers"},
		},
	}
	store := testStore(r)

	cw, err := store.Crosswalk()
	require.NoError(t, err)
	assert.Len(t, cw.Rows, 2)
}

func TestWarmUp(t *testing.T) {
	r := newFakeReader()
	r.tables["national_M2024_dl.xlsx"] = nationalFixture()
	r.tables["state_M2024_dl.xlsx"] = &domain.RawTable{Headers: []string{"OCC_CODE"}}
	r.tables["MSA_M2024_dl.xlsx"] = &domain.RawTable{Headers: []string{"OCC_CODE"}}
	r.tables["natsector_M2024_dl.xlsx"] = &domain.RawTable{Headers: []string{"OCC_CODE"}}
	store := testStore(r)

	require.NoError(t, store.WarmUp(context.Background()))

	for name := range r.tables {
		assert.Equal(t, 1, r.reads[name], "file %s", name)
	}
}

func TestWarmUpPropagatesLoadFailure(t *testing.T) {
	r := newFakeReader()
	r.tables["national_M2024_dl.xlsx"] = nationalFixture()
	store := testStore(r)

	err := store.WarmUp(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "state")
}

func TestWarmUpCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := testStore(newFakeReader())
	err := store.WarmUp(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

// Package tablestore loads, cleans, and memoizes the four OEWS source
// tables, and derives the national crosswalk used as the occupation
// metadata and national-baseline source.
//
// The store is a lazy build-once cache with no internal locking: first
// access from concurrent goroutines must be serialized externally (a single
// WarmUp call before read traffic does it). Once populated, the cached
// tables are immutable and safe for concurrent reads.
package tablestore

import (
	"context"
	"fmt"
	"log/slog"

	"oewsq/internal/config"
	apperrors "oewsq/internal/errors"
	"oewsq/pkg/contracts/domain"
)

// TableReader is the spreadsheet-reading collaborator: it returns the raw
// tabular content of the file at path, cells untouched.
type TableReader interface {
	ReadTable(path string) (*domain.RawTable, error)
}

// Store loads and caches normalized source tables by kind.
type Store struct {
	data   config.DataConfig
	reader TableReader
	logger *slog.Logger

	tables    map[domain.TableKind]*Table
	crosswalk *Table
}

// NewStore creates a table store over the given reader and data locations.
func NewStore(data config.DataConfig, reader TableReader, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		data:   data,
		reader: reader,
		logger: logger,
		tables: make(map[domain.TableKind]*Table, 4),
	}
}

// Load returns the normalized table for kind, reading and cleaning the
// source file on first use. Repeated calls return the identical cached
// object. An unknown kind is a validation error; an unreadable source file
// is a storage error from the reader.
func (s *Store) Load(kind domain.TableKind) (*Table, error) {
	if t, ok := s.tables[kind]; ok {
		s.logger.Debug("table cache hit", slog.String("kind", string(kind)))
		return t, nil
	}

	path, ok := s.data.SourcePath(kind)
	if !ok {
		return nil, apperrors.NewInvalidKindError(string(kind))
	}

	raw, err := s.reader.ReadTable(path)
	if err != nil {
		return nil, err
	}

	t := normalize(kind, raw)
	s.tables[kind] = t

	s.logger.Info("normalized source table",
		slog.String("kind", string(kind)),
		slog.String("path", path),
		slog.Int("rows", len(t.Rows)))

	return t, nil
}

// Crosswalk returns the national table restricted to valid occupation-group
// rows (detailed, broad, total). Built once from Load(national) and cached;
// a second call never recomputes.
func (s *Store) Crosswalk() (*Table, error) {
	if s.crosswalk != nil {
		return s.crosswalk, nil
	}

	nat, err := s.Load(domain.KindNational)
	if err != nil {
		return nil, err
	}

	s.crosswalk = buildCrosswalk(nat)
	s.logger.Info("built national crosswalk",
		slog.Int("rows", len(s.crosswalk.Rows)))

	return s.crosswalk, nil
}

// WarmUp eagerly loads all four tables plus the crosswalk, in sequence.
// Call it once before serving concurrent read traffic so that later reads
// only hit immutable cached state.
func (s *Store) WarmUp(ctx context.Context) error {
	for _, kind := range domain.Kinds() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if _, err := s.Load(kind); err != nil {
			return fmt.Errorf("warm up %s table: %w", kind, err)
		}
	}

	if _, err := s.Crosswalk(); err != nil {
		return fmt.Errorf("warm up crosswalk: %w", err)
	}
	return nil
}

// Reset drops every cached table so the next access reloads from disk.
// Intended for tests; production callers load once per process lifetime.
func (s *Store) Reset() {
	s.tables = make(map[domain.TableKind]*Table, 4)
	s.crosswalk = nil
}

// Occupation groups admitted into the crosswalk. Summary-only group rows
// are excluded.
var crosswalkGroups = map[string]bool{
	"detailed": true,
	"broad":    true,
	"total":    true,
}

func buildCrosswalk(nat *Table) *Table {
	cw := &Table{Kind: nat.Kind, present: nat.present}

	if !nat.HasOGroup() {
		// Source without the group flag: every row qualifies.
		cw.Rows = nat.Rows
		return cw
	}

	for _, r := range nat.Rows {
		if crosswalkGroups[r.OGroup] {
			cw.Rows = append(cw.Rows, r)
		}
	}
	return cw
}

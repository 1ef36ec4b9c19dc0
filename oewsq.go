// Package oewsq answers wage and employment questions over the OEWS May
// 2024 release spreadsheets: national medians and rankings, per-occupation
// snapshots and wage distributions, state and metro-area comparisons, and
// industry employment mixes.
//
// A Client owns the full pipeline: spreadsheet reading, table
// normalization, memoized caching, and the query operations. Construction
// is cheap; source files are read lazily on first query, or eagerly via
// WarmUp. The cache has no internal locking, so either call WarmUp before
// issuing queries from multiple goroutines or serialize the first access
// yourself.
package oewsq

import (
	"context"
	"log/slog"

	"oewsq/internal/config"
	"oewsq/internal/dataprocessing"
	"oewsq/internal/infrastructure"
	"oewsq/internal/query"
	"oewsq/internal/tablestore"
	"oewsq/pkg/contracts/domain"
)

// GeoLevel selects the geography table for geographic queries.
type GeoLevel = query.GeoLevel

// Geography levels accepted by the geographic queries.
const (
	LevelState = query.LevelState
	LevelMSA   = query.LevelMSA
)

// Client is the top-level entry point for labor-market queries.
type Client struct {
	cfg    *config.Config
	store  *tablestore.Store
	engine *query.Engine
	logger *slog.Logger
}

// New creates a client over the given configuration. A nil logger falls
// back to slog.Default().
func New(cfg *config.Config, logger *slog.Logger) *Client {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}

	reader := dataprocessing.NewReader(logger)
	store := tablestore.NewStore(cfg.Data, reader, logger)

	return &Client{
		cfg:    cfg,
		store:  store,
		engine: query.NewEngine(store, logger),
		logger: logger,
	}
}

// NewDefault creates a client from environment and file configuration and
// initializes the process logger from its logging section.
func NewDefault() (*Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}

	return New(cfg, logger), nil
}

// WarmUp eagerly loads every source table so later queries only read
// cached state. Required before concurrent use.
func (c *Client) WarmUp(ctx context.Context) error {
	return c.store.WarmUp(ctx)
}

// Reset drops all cached tables; the next query reloads from disk.
func (c *Client) Reset() {
	c.store.Reset()
}

// USMedianWage returns the national annual median wage across all
// occupations.
func (c *Client) USMedianWage() (float64, error) {
	return c.engine.USMedianWage()
}

// TopOccupationsByEmployment ranks the k largest occupations by national
// employment.
func (c *Client) TopOccupationsByEmployment(k int) ([]domain.OccupationRank, error) {
	return c.engine.TopOccupationsByEmployment(k)
}

// OccupationListAZ lists every occupation alphabetically by title.
func (c *Client) OccupationListAZ() ([]domain.Occupation, error) {
	return c.engine.OccupationListAZ()
}

// SearchOccupations filters the occupation list to titles containing q,
// case-insensitively.
func (c *Client) SearchOccupations(q string) ([]domain.Occupation, error) {
	return c.engine.SearchOccupations(q)
}

// SnapshotForOcc summarizes one occupation nationally. The second return
// value is false when the code is unknown.
func (c *Client) SnapshotForOcc(code string) (domain.Snapshot, bool, error) {
	return c.engine.SnapshotForOcc(code)
}

// WageDistributionForOcc returns the five-point annual wage distribution
// for one occupation. The second return value is false when the code is
// unknown.
func (c *Client) WageDistributionForOcc(code string) (domain.WageDistribution, bool, error) {
	return c.engine.WageDistributionForOcc(code)
}

// TopGeographiesForOcc ranks geographies at the given level by median wage
// for one occupation.
func (c *Client) TopGeographiesForOcc(code string, level GeoLevel, topN int) ([]domain.GeoWage, error) {
	return c.engine.TopGeographiesForOcc(code, level, topN)
}

// EmploymentConcentrationForOcc ranks geographies at the given level by
// location quotient for one occupation.
func (c *Client) EmploymentConcentrationForOcc(code string, level GeoLevel, topN int) ([]domain.Concentration, error) {
	return c.engine.EmploymentConcentrationForOcc(code, level, topN)
}

// IndustryMixForOcc breaks one occupation's national employment down by
// industry sector.
func (c *Client) IndustryMixForOcc(code string, topN int) ([]domain.IndustryShare, error) {
	return c.engine.IndustryMixForOcc(code, topN)
}

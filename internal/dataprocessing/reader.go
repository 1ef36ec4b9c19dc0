package dataprocessing

import (
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "oewsq/internal/errors"
	"oewsq/pkg/contracts/domain"
)

// Header cells that mark the data sheet of an OEWS release workbook.
var markerHeaders = []string{"OCC_CODE", "OCC_TITLE", "AREA_TITLE"}

// Reader loads Excel survey tables from disk.
type Reader struct {
	logger *slog.Logger
}

// NewReader creates a spreadsheet reader.
func NewReader(logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{logger: logger}
}

// ReadTable reads the data sheet of the workbook at path and returns its
// header row plus data rows. A missing or unreadable file is a storage
// error; a workbook without a recognizable data sheet is a parsing error.
func (r *Reader) ReadTable(path string) (*domain.RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewSourceError(path, err)
	}
	defer f.Close()

	rows, sheetName, headerRow := findDataSheet(f)
	if rows == nil {
		return nil, apperrors.NewParsingError("no data sheet found in workbook", nil).
			WithContext("path", path)
	}

	table := &domain.RawTable{
		Headers: trimCells(rows[headerRow]),
	}
	for _, row := range rows[headerRow+1:] {
		if isEmptyRow(row) {
			continue
		}
		table.Rows = append(table.Rows, row)
	}

	r.logger.Info("loaded source table",
		slog.String("path", path),
		slog.String("sheet", sheetName),
		slog.Int("rows", len(table.Rows)))

	return table, nil
}

// findDataSheet picks the sheet holding the survey data. It prefers a sheet
// whose leading rows carry the OEWS header names; release workbooks
// sometimes put a notes sheet first. Falls back to the first non-empty
// sheet with its first row as header.
func findDataSheet(f *excelize.File) (rows [][]string, sheetName string, headerRow int) {
	for _, name := range f.GetSheetList() {
		sheetRows, err := f.GetRows(name)
		if err != nil {
			continue
		}
		for i, row := range sheetRows {
			if i > 4 {
				break
			}
			if isHeaderRow(row) {
				return sheetRows, name, i
			}
		}
	}

	for _, name := range f.GetSheetList() {
		sheetRows, err := f.GetRows(name)
		if err != nil || len(sheetRows) == 0 {
			continue
		}
		return sheetRows, name, 0
	}

	return nil, "", 0
}

func isHeaderRow(row []string) bool {
	for _, cell := range row {
		normalized := strings.ToUpper(strings.TrimSpace(cell))
		for _, marker := range markerHeaders {
			if normalized == marker {
				return true
			}
		}
	}
	return false
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func trimCells(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = strings.TrimSpace(cell)
	}
	return out
}

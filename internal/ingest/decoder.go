// Package ingest decodes uploaded spreadsheet payloads into a RowSet.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"chainsight/internal/domain"
)

// Decode decodes the payload according to its file type. Only the first
// sheet of a workbook is read; blank cells decode to the empty string.
func Decode(fileType domain.FileType, r io.Reader) (domain.RowSet, error) {
	switch fileType {
	case domain.FileTypeXLSX:
		return DecodeWorkbook(r)
	case domain.FileTypeCSV:
		return DecodeCSV(r)
	default:
		return nil, domain.ErrUnsupportedFileType
	}
}

// DecodeWorkbook reads the first sheet of an Excel workbook into a RowSet.
func DecodeWorkbook(r io.Reader) (domain.RowSet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook contains no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	return tableToRows(rows), nil
}

// DecodeCSV reads a CSV payload into a RowSet.
func DecodeCSV(r io.Reader) (domain.RowSet, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows; missing cells become empty
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	return tableToRows(records), nil
}

// tableToRows converts a header-first table into keyed rows. Rows with no
// content at all are skipped; short rows pad missing columns with the empty
// string.
func tableToRows(table [][]string) domain.RowSet {
	if len(table) < 2 {
		return domain.RowSet{}
	}
	headers := table[0]

	out := make(domain.RowSet, 0, len(table)-1)
	for _, cells := range table[1:] {
		if isEmptyRow(cells) {
			continue
		}
		row := make(domain.Row, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			if i < len(cells) {
				row[h] = cells[i]
			} else {
				row[h] = ""
			}
		}
		out = append(out, row)
	}
	return out
}

func isEmptyRow(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}

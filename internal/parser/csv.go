package parser

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/dmaycock/structdoc/internal/item"
)

// CSVParser handles CSV files: each batch of rows becomes one table item,
// with the header row repeated so every batch is self-describing.
type CSVParser struct{}

// rows per emitted table item
const csvBatchSize = 50

func (p *CSVParser) Parse(r io.Reader, filename string) ([]item.Positioned, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	headers := records[0]
	dataRows := records[1:]

	var items []item.Positioned
	for i := 0; i < len(dataRows); i += csvBatchSize {
		end := i + csvBatchSize
		if end > len(dataRows) {
			end = len(dataRows)
		}

		grid := [][]string{headers}
		grid = append(grid, dataRows[i:end]...)

		items = append(items, item.Positioned{Item: &item.Table{
			Grid:    grid,
			CapList: []string{fmt.Sprintf("%s rows %d-%d", filename, i+2, end+1)},
		}})
	}

	// Header-only file: still emit the single-row table.
	if len(items) == 0 {
		items = append(items, item.Positioned{Item: &item.Table{Grid: [][]string{headers}}})
	}

	return items, nil
}

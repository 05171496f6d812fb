package catalog

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"
)

// ExportJSON renders the catalogue as indented JSON.
func ExportJSON(items []MenuItem) ([]byte, error) {
	return json.MarshalIndent(items, "", "  ")
}

// ExportCSV renders the catalogue as CSV with a header row.
func ExportCSV(items []MenuItem) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Name", "Description", "Price", "Category", "Stock Type", "Stock Count", "Enabled"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, it := range items {
		record := []string{
			it.Name,
			it.Description,
			strconv.Itoa(it.Price),
			string(it.Category),
			string(it.StockType),
			strconv.Itoa(it.StockCount),
			strconv.FormatBool(it.IsEnabled),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

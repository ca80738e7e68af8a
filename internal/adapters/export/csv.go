package export

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"parcel_research/internal/adapters/observability"
	"parcel_research/internal/domain"
)

// ToCSV renders a single-row UTF-8 table: header row in the canonical field
// order, one data row. Nil optionals render as empty cells.
func ToCSV(p domain.ParcelRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	row := []string{
		p.Owner,
		p.MailingAddress,
		p.APN,
		p.ParcelSize,
		p.LegalDescription,
		p.Valuation,
		"",
		"",
		p.Zoning,
		p.SourceURL,
	}
	if p.SaleDate != nil {
		row[6] = *p.SaleDate
	}
	if p.SalePrice != nil {
		row[7] = strconv.FormatInt(*p.SalePrice, 10)
	}

	err := w.Write(domain.FieldNames)
	if err == nil {
		err = w.Write(row)
	}
	w.Flush()
	if err == nil {
		err = w.Error()
	}
	observability.ObserveExport("csv", err)
	if err != nil {
		return nil, &domain.ExportError{Format: "csv", Err: err}
	}
	return buf.Bytes(), nil
}

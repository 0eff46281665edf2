package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// FromCSV parses CSV bytes into a Table. The first record is the header row.
// Cells are resolved into Value variants once here: blank / null markers
// become Null, anything that parses as a float (after stripping thousands
// separators and common currency prefixes) becomes Number, the rest Text.
// Malformed records are skipped; short records are padded with Null.
func FromCSV(data []byte) (*Table, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv headers: %w", err)
	}
	if len(headers) == 0 {
		return nil, fmt.Errorf("csv has no columns")
	}

	columns := make([]Column, len(headers))
	for i, h := range headers {
		columns[i] = Column{Name: strings.TrimSpace(h)}
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		for i := range columns {
			if i < len(record) {
				columns[i].Values = append(columns[i].Values, parseCell(record[i]))
			} else {
				columns[i].Values = append(columns[i].Values, Null())
			}
		}
	}

	return New(columns)
}

// nullMarkers are cell contents treated as missing values.
var nullMarkers = map[string]bool{
	"": true, "null": true, "NULL": true, "N/A": true, "n/a": true, "-": true,
}

func parseCell(raw string) Value {
	s := strings.TrimSpace(raw)
	if nullMarkers[s] {
		return Null()
	}
	if f, ok := parseNumber(s); ok {
		return Number(f)
	}
	return Text(s)
}

// parseNumber accepts plain floats plus lightly formatted numbers such as
// "1,234.56" and "$99.00".
func parseNumber(s string) (float64, bool) {
	cleaned := strings.ReplaceAll(s, ",", "")
	for _, prefix := range []string{"$", "€", "£", "₹"} {
		cleaned = strings.TrimPrefix(cleaned, prefix)
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

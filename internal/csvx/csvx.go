// Package csvx parses raw delimited text into field-keyed records.
//
// The feeds it reads are user-maintained operational exports, not a trust
// boundary: malformed rows produce best-effort partial records instead of
// errors, and only a missing header line fails the parse.
package csvx

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Record maps a header name to the row's value for that column. Columns
// missing from a short row are absent from the map, which is distinct from
// an empty string value.
type Record map[string]string

// ErrNoHeader reports input whose header line cannot be read.
var ErrNoHeader = errors.New("missing header line")

// Parse converts delimited text into records keyed by the first line's
// headers. Quoted fields may contain the delimiter. An empty input yields
// no records; so does a header-only input.
func Parse(text string) ([]Record, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoHeader, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var records []Record
	for {
		fields, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Best effort: a row the reader cannot split is dropped,
			// the rest of the file still parses.
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				continue
			}
			break
		}
		if blank(fields) {
			continue
		}
		rec := make(Record, len(header))
		for i, h := range header {
			if h == "" {
				continue
			}
			if i < len(fields) {
				rec[h] = strings.TrimSpace(fields[i])
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func blank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// Package shape profiles CSV payloads: column types, formats, ranges and
// example values, computed from a sample of rows.
package shape

import (
	"encoding/csv"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// MaxSampleRows bounds how many data rows are inspected per column.
const MaxSampleRows = 200

const (
	maxExamples   = 3
	maxEnumValues = 10
	minEnumRows   = 5
)

var (
	dateRegex     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dateTimeRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}(:\d{2}(\.\d+)?)?(Z|[+-]\d{2}:?\d{2})?$`)
)

// ErrEmpty is returned for a payload without any record.
var ErrEmpty = errors.New("empty CSV")

// Profile describes the columns of a CSV payload.
type Profile struct {
	Columns   []Column `json:"columns"`
	Rows      int      `json:"rows"`
	Sampled   int      `json:"sampled"`
	HasHeader bool     `json:"has_header"`
}

// Column describes one CSV column.
type Column struct {
	Name string `json:"name"`
	// Type is integer, number, boolean or string.
	Type string `json:"type"`
	// Format is date, date-time or enum for string columns.
	Format         string   `json:"format,omitempty"`
	EmptyFrequency float64  `json:"empty_frequency"`
	Min            *float64 `json:"min,omitempty"`
	Max            *float64 `json:"max,omitempty"`
	Examples       []string `json:"examples,omitempty"`
	EnumValues     []string `json:"enum_values,omitempty"`
}

// ProfileCSV parses text and profiles every column. The first record is
// the header unless it looks like data, in which case columns are named
// col_0, col_1, ...
func ProfileCSV(text string) (*Profile, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmpty
	}

	header, rows := records[0], records[1:]
	hasHeader := !looksLikeData(header, rows)
	if !hasHeader {
		rows = records
		header = make([]string, len(records[0]))
		for i := range header {
			header[i] = fmt.Sprintf("col_%d", i)
		}
	}

	sample := rows
	if len(sample) > MaxSampleRows {
		sample = sample[:MaxSampleRows]
	}

	p := &Profile{
		Columns:   make([]Column, len(header)),
		Rows:      len(rows),
		Sampled:   len(sample),
		HasHeader: hasHeader,
	}
	for i, name := range header {
		p.Columns[i] = profileColumn(strings.TrimSpace(name), i, sample)
	}
	return p, nil
}

func profileColumn(name string, idx int, rows [][]string) Column {
	col := Column{Name: name, Type: "string"}

	values := make([]string, 0, len(rows))
	empty := 0
	for _, row := range rows {
		v := ""
		if idx < len(row) {
			v = strings.TrimSpace(row[idx])
		}
		if v == "" {
			empty++
			continue
		}
		values = append(values, v)
	}
	if len(rows) > 0 {
		col.EmptyFrequency = float64(empty) / float64(len(rows))
	}

	seen := make(map[string]bool)
	for _, v := range values {
		if len(col.Examples) == maxExamples {
			break
		}
		if !seen[v] {
			seen[v] = true
			col.Examples = append(col.Examples, v)
		}
	}
	if len(values) == 0 {
		return col
	}

	col.Type = columnType(values)
	switch col.Type {
	case "integer", "number":
		col.Min, col.Max = numericRange(values)
	case "string":
		col.Format, col.EnumValues = stringFormat(values)
	}
	return col
}

func columnType(values []string) string {
	isInt, isNum, isBool := true, true, true
	for _, v := range values {
		if isInt {
			if _, err := strconv.ParseInt(v, 10, 64); err != nil {
				isInt = false
			}
		}
		if isNum {
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				isNum = false
			}
		}
		if isBool {
			switch strings.ToLower(v) {
			case "true", "false":
			default:
				isBool = false
			}
		}
		if !isNum && !isBool {
			break
		}
	}

	switch {
	case isInt:
		return "integer"
	case isNum:
		return "number"
	case isBool:
		return "boolean"
	}
	return "string"
}

func numericRange(values []string) (lo, hi *float64) {
	for _, v := range values {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			continue
		}
		if lo == nil || f < *lo {
			lo = &f
		}
		if hi == nil || f > *hi {
			hi = &f
		}
	}
	return lo, hi
}

func stringFormat(values []string) (string, []string) {
	if allMatch(values, dateRegex) {
		return "date", nil
	}
	if allMatch(values, dateTimeRegex) {
		return "date-time", nil
	}
	if len(values) < minEnumRows {
		return "", nil
	}

	distinct := make(map[string]bool)
	for _, v := range values {
		distinct[v] = true
		if len(distinct) > maxEnumValues {
			return "", nil
		}
	}
	// Every value distinct is an identifier column, not an enum.
	if len(distinct) == len(values) {
		return "", nil
	}

	enum := make([]string, 0, len(distinct))
	for v := range distinct {
		enum = append(enum, v)
	}
	sort.Strings(enum)
	return "enum", enum
}

func allMatch(values []string, re *regexp.Regexp) bool {
	for _, v := range values {
		if !re.MatchString(v) {
			return false
		}
	}
	return true
}

// looksLikeData reports whether the first record reads as a data row: more
// than half of its fields parse as numbers.
func looksLikeData(first []string, rest [][]string) bool {
	if len(rest) == 0 {
		return false
	}
	numeric := 0
	for _, v := range first {
		if _, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			numeric++
		}
	}
	return numeric > len(first)/2
}

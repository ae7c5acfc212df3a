package explorer

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultCSVPreviewChars is how much of a CSV body is shown inline.
	DefaultCSVPreviewChars = 1000

	// CSVFilename is the download name offered for CSV results.
	CSVFilename = "donnees.csv"

	csvDataURIPrefix = "data:text/csv;charset=utf-8,"
)

// CSVPreview summarizes a CSV body for display.
type CSVPreview struct {
	Preview    string   `json:"preview"`
	TotalChars int      `json:"total_chars"`
	Truncated  bool     `json:"truncated"`
	Filename   string   `json:"filename"`
	Columns    []string `json:"columns,omitempty"`
	Rows       int      `json:"rows"`
}

// NewCSVPreview returns the first maxChars characters of text plus the header
// row and data row count. maxChars <= 0 uses DefaultCSVPreviewChars.
// Malformed CSV still yields a preview; only Columns and Rows are affected.
func NewCSVPreview(text string, maxChars int) CSVPreview {
	if maxChars <= 0 {
		maxChars = DefaultCSVPreviewChars
	}

	p := CSVPreview{
		Preview:    text,
		TotalChars: utf8.RuneCountInString(text),
		Filename:   CSVFilename,
	}
	if p.TotalChars > maxChars {
		p.Preview = string([]rune(text)[:maxChars])
		p.Truncated = true
	}

	p.Columns, p.Rows = scanCSV(text)
	return p
}

func scanCSV(text string) ([]string, int) {
	r := csv.NewReader(strings.NewReader(text))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, 0
	}

	rows := 0
	for {
		_, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return header, rows
		}
		rows++
	}
	return header, rows
}

// CSVDataURI returns the data: URI under which text is offered for download.
func CSVDataURI(text string) string {
	return csvDataURIPrefix + EncodeURIComponent(text)
}

package storage

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"dataset-collector/models"
)

// FormatBool renders a boolean the way the published datasets spell it.
func FormatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// FormatCell renders one raw JSON value as a CSV cell: strings verbatim, numbers
// as written in the source, booleans as True/False, null as an empty cell and
// arrays/objects as compact JSON text.
func FormatCell(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}

	switch raw[0] {
	case 'n':
		return ""
	case 't':
		return FormatBool(true)
	case 'f':
		return FormatBool(false)
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return string(raw)
		}
		return s
	case '[', '{':
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return string(raw)
		}
		return buf.String()
	default:
		return string(raw)
	}
}

var newlineReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// StripNewlines replaces line breaks with spaces.
func StripNewlines(s string) string {
	return newlineReplacer.Replace(s)
}

// RecordTable flattens records into a header and rows. The header is the
// union of keys in first-seen order. Columns listed in textColumns get their
// line breaks replaced by spaces.
func RecordTable(records []models.Record, textColumns ...string) ([]string, [][]string) {
	var header []string
	seen := make(map[string]struct{})
	for _, rec := range records {
		for _, k := range rec.Keys {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			header = append(header, k)
		}
	}

	text := make(map[string]bool, len(textColumns))
	for _, c := range textColumns {
		text[c] = true
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row := make([]string, len(header))
		for i, k := range header {
			cell := FormatCell(rec.Values[k])
			if text[k] {
				cell = StripNewlines(cell)
			}
			row[i] = cell
		}
		rows = append(rows, row)
	}
	return header, rows
}

// HolidayHeader is the fixed column order of the holidays CSV.
var HolidayHeader = []string{
	"date", "localName", "name", "countryCode", "fixed", "global", "counties", "launchYear", "types",
}

// HolidayRow renders a holiday in HolidayHeader order.
func HolidayRow(h *models.Holiday) []string {
	launchYear := ""
	if h.LaunchYear != nil {
		launchYear = strconv.Itoa(*h.LaunchYear)
	}
	return []string{
		h.Date,
		h.LocalName,
		h.Name,
		h.CountryCode,
		FormatBool(h.Fixed),
		FormatBool(h.Global),
		strings.Join(h.Counties, ";"),
		launchYear,
		strings.Join(h.Types, ";"),
	}
}

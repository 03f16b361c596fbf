package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"dataset-collector/models"
)

var reviewDateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	models.DateLayout,
}

// ParseReviewDate accepts the timestamp and date layouts found in review dumps
// and returns the calendar date at midnight UTC.
func ParseReviewDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range reviewDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// ReadReviewRows loads the merged review/location CSV at path. The file must
// have latitude, longitude and date columns. Rows whose coordinates or date do
// not parse are returned with Located=false.
func ReadReviewRows(path string) ([]string, []models.ReviewRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("dataset: open merged reviews: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("dataset: read header of %s: %w", path, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	latIdx, lonIdx, dateIdx := -1, -1, -1
	for i, col := range header {
		switch col {
		case "latitude":
			latIdx = i
		case "longitude":
			lonIdx = i
		case "date":
			dateIdx = i
		}
	}
	if latIdx < 0 || lonIdx < 0 || dateIdx < 0 {
		return nil, nil, fmt.Errorf("dataset: %s needs latitude, longitude and date columns", path)
	}

	var rows []models.ReviewRow
	for {
		cells, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("dataset: read %s: %w", path, err)
		}

		row := models.ReviewRow{Cells: cells}
		lat, latErr := strconv.ParseFloat(strings.TrimSpace(cells[latIdx]), 64)
		lon, lonErr := strconv.ParseFloat(strings.TrimSpace(cells[lonIdx]), 64)
		date, dateOK := ParseReviewDate(cells[dateIdx])
		if latErr == nil && lonErr == nil && dateOK {
			row.Location = models.NewLocation(lat, lon)
			row.Date = date
			row.Located = true
		}
		rows = append(rows, row)
	}

	return header, rows, nil
}

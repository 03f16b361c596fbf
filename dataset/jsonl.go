package dataset

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"

	"dataset-collector/models"
	"dataset-collector/utils"
)

// progressEvery is how many lines pass between progress log lines.
const progressEvery = 100000

// ScanStats summarizes one pass over a JSON-lines file.
type ScanStats struct {
	Lines     int
	Malformed int
}

// ScanRecords parses r one JSON object per line and calls fn for each. Blank
// lines are ignored; lines that are not a JSON object are counted as malformed
// and skipped. A non-nil error from fn stops the scan.
func ScanRecords(r io.Reader, logger *utils.Logger, fn func(rec models.Record) error) (ScanStats, error) {
	var stats ScanStats
	br := bufio.NewReaderSize(r, 1<<20)

	for {
		line, readErr := br.ReadBytes('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return stats, fmt.Errorf("jsonl: read line %d: %w", stats.Lines+1, readErr)
		}

		if trimmed := bytes.TrimSpace(line); len(trimmed) > 0 {
			stats.Lines++
			var rec models.Record
			if err := json.Unmarshal(trimmed, &rec); err != nil || rec.Values == nil {
				stats.Malformed++
				logger.Debug("[dataset] Skipping malformed line %d: %v", stats.Lines, err)
			} else if err := fn(rec); err != nil {
				return stats, err
			}

			if stats.Lines%progressEvery == 0 {
				logger.Info("[dataset] Processed %s lines", humanize.Comma(int64(stats.Lines)))
			}
		}

		if errors.Is(readErr, io.EOF) {
			return stats, nil
		}
	}
}

// ReadBusinesses loads every business in the JSON-lines file at path. Lines
// without a business_id are skipped as malformed.
func ReadBusinesses(path string, logger *utils.Logger) ([]*models.Business, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open businesses: %w", err)
	}
	defer f.Close()

	var businesses []*models.Business
	skipped := 0
	stats, err := ScanRecords(f, logger, func(rec models.Record) error {
		b, err := models.NewBusiness(rec)
		if err != nil {
			skipped++
			return nil
		}
		businesses = append(businesses, b)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("dataset: read %s: %w", path, err)
	}

	logger.Info("[dataset] Read %s businesses from %s (%d malformed, %d without id)",
		humanize.Comma(int64(len(businesses))), path, stats.Malformed, skipped)
	return businesses, nil
}

// ReadReviews streams the JSON-lines review file at path and groups the
// reviews whose business_id is in ids by business.
func ReadReviews(path string, ids *utils.OrderedSet[string], logger *utils.Logger) (map[string][]*models.Review, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open reviews: %w", err)
	}
	defer f.Close()

	byBusiness := make(map[string][]*models.Review)
	kept := 0
	stats, err := ScanRecords(f, logger, func(rec models.Record) error {
		r, err := models.NewReview(rec)
		if err != nil || !ids.Contains(r.BusinessID) {
			return nil
		}
		byBusiness[r.BusinessID] = append(byBusiness[r.BusinessID], r)
		kept++
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("dataset: read %s: %w", path, err)
	}

	logger.Info("[dataset] Kept %s of %s reviews for %d businesses (%d malformed)",
		humanize.Comma(int64(kept)), humanize.Comma(int64(stats.Lines)), len(byBusiness), stats.Malformed)
	return byBusiness, nil
}

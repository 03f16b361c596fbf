package pipelines

import (
	"context"
	"fmt"
	"io"
	"os"

	"dataset-collector/dataset"
	"dataset-collector/models"
	"dataset-collector/services"
	"dataset-collector/storage"
	"dataset-collector/utils"
)

// Reviews samples restaurants from the business dataset, samples reviews of
// those restaurants from the review dataset and writes both subsets.
type Reviews struct {
	BusinessPath       string
	ReviewPath         string
	BusinessOutputPath string
	ReviewOutputPath   string

	BusinessSampler *services.BusinessSampler
	ReviewSampler   *services.ReviewSampler
	Report          *services.ReportService
	// ReportOut receives the printed report; nil skips it.
	ReportOut io.Writer
	Logger    *utils.Logger
}

// Run executes the pipeline. Both inputs are read and both samples are built
// before anything is written, so a missing or unreadable input leaves no output.
func (p *Reviews) Run(ctx context.Context) error {
	for _, path := range []string{p.BusinessPath, p.ReviewPath} {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("reviews: input file: %w", err)
		}
	}

	businesses, err := dataset.ReadBusinesses(p.BusinessPath, p.Logger)
	if err != nil {
		return fmt.Errorf("reviews: %w", err)
	}

	selected := p.BusinessSampler.Sample(businesses)
	p.Logger.Info("[reviews] Selected %d restaurants", len(selected))

	ids := utils.NewOrderedSet[string]()
	for _, b := range selected {
		ids.Add(b.ID)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("reviews: %w", err)
	}

	loaded, err := dataset.ReadReviews(p.ReviewPath, ids, p.Logger)
	if err != nil {
		return fmt.Errorf("reviews: %w", err)
	}
	p.Logger.Info("[reviews] Loaded reviews for %d restaurants", len(loaded))

	picked := make(map[string][]*models.Review, len(selected))
	var reviewRecords []models.Record
	for i, b := range selected {
		sample := p.ReviewSampler.Sample(loaded[b.ID])
		picked[b.ID] = sample
		for _, r := range sample {
			reviewRecords = append(reviewRecords, r.Record)
		}
		p.Logger.Info("[reviews] Processed restaurants: %d/%d, reviews: %d", i+1, len(selected), len(sample))
	}

	businessRecords := make([]models.Record, len(selected))
	for i, b := range selected {
		businessRecords[i] = b.Record
	}

	if err := p.writeOutputs(businessRecords, reviewRecords); err != nil {
		return fmt.Errorf("reviews: %w", err)
	}
	p.Logger.Info("[reviews] Saved %d restaurants to %s", len(businessRecords), p.BusinessOutputPath)
	p.Logger.Info("[reviews] Saved %d reviews to %s", len(reviewRecords), p.ReviewOutputPath)

	if p.Report != nil && p.ReportOut != nil {
		p.Report.Print(p.ReportOut, p.Report.Generate(selected, loaded, picked))
	}
	return nil
}

func (p *Reviews) writeOutputs(businessRecords, reviewRecords []models.Record) error {
	bHeader, bRows := storage.RecordTable(businessRecords)
	rHeader, rRows := storage.RecordTable(reviewRecords, "text")

	bw, err := newFilledWriter(p.BusinessOutputPath, bHeader, bRows)
	if err != nil {
		return err
	}
	defer bw.Close()

	rw, err := newFilledWriter(p.ReviewOutputPath, rHeader, rRows)
	if err != nil {
		return err
	}
	defer rw.Close()

	if err := bw.Finish(); err != nil {
		return err
	}
	if err := rw.Finish(); err != nil {
		return err
	}

	if err := bw.Commit(); err != nil {
		return err
	}
	if err := rw.Commit(); err != nil {
		_ = os.Remove(p.BusinessOutputPath)
		return err
	}
	return nil
}

func newFilledWriter(path string, header []string, rows [][]string) (*storage.CSVWriter, error) {
	w, err := storage.NewCSVWriter(path, header)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			w.Close()
			return nil, err
		}
	}
	return w, nil
}

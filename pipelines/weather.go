package pipelines

import (
	"context"
	"fmt"

	"dataset-collector/dataset"
	"dataset-collector/services"
	"dataset-collector/storage"
	"dataset-collector/utils"
)

// Weather backfills the merged review CSV with daily weather codes.
type Weather struct {
	InputPath  string
	OutputPath string
	Joiner     *services.WeatherJoiner
	Logger     *utils.Logger
}

// Run executes the pipeline. Per-location failures leave rows without a code;
// a missing input file or cancellation aborts with no output.
func (p *Weather) Run(ctx context.Context) error {
	header, rows, err := dataset.ReadReviewRows(p.InputPath)
	if err != nil {
		return fmt.Errorf("weather: %w", err)
	}
	p.Logger.Info("[weather] Read %d rows from %s", len(rows), p.InputPath)

	table, err := p.Joiner.BuildTable(ctx, rows)
	if err != nil {
		return fmt.Errorf("weather: %w", err)
	}

	outHeader, outRows := p.Joiner.Join(header, rows, table)
	if err := storage.WriteCSV(p.OutputPath, outHeader, outRows); err != nil {
		return fmt.Errorf("weather: %w", err)
	}
	p.Logger.Info("[weather] Saved %d rows to %s", len(outRows), p.OutputPath)
	return nil
}

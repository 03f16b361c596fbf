package pipelines

import (
	"context"
	"fmt"

	"dataset-collector/models"
	"dataset-collector/services"
	"dataset-collector/storage"
	"dataset-collector/utils"
)

// HolidaySource returns the raw holiday objects for one year and country.
type HolidaySource interface {
	PublicHolidays(ctx context.Context, year int, countryCode string) ([]models.Record, error)
}

// Holidays fetches every year in [StartYear, EndYear] for Country and writes
// the normalized records to OutputPath.
type Holidays struct {
	Source     HolidaySource
	Normalizer *services.HolidayNormalizer
	// Sink is optional; when set, holidays are also stored there.
	Sink       storage.HolidayWriter
	Country    string
	StartYear  int
	EndYear    int
	OutputPath string
	Logger     *utils.Logger
}

// Run executes the pipeline. A failed year is logged and contributes no
// records; only an invalid range, cancellation or a CSV error aborts.
func (p *Holidays) Run(ctx context.Context) error {
	if p.StartYear > p.EndYear {
		return fmt.Errorf("holidays: start year %d is after end year %d", p.StartYear, p.EndYear)
	}

	var all []*models.Holiday
	failed := 0
	for year := p.StartYear; year <= p.EndYear; year++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("holidays: %w", err)
		}

		raw, err := p.Source.PublicHolidays(ctx, year, p.Country)
		if err != nil {
			failed++
			p.Logger.Error("[holidays] Year %d (%s) failed: %v", year, p.Country, err)
			continue
		}

		holidays := p.Normalizer.Normalize(raw)
		all = append(all, holidays...)
		p.Logger.Info("[holidays] Year %d: %d holidays", year, len(holidays))
	}

	rows := make([][]string, 0, len(all))
	for _, h := range all {
		rows = append(rows, storage.HolidayRow(h))
	}
	if err := storage.WriteCSV(p.OutputPath, storage.HolidayHeader, rows); err != nil {
		return fmt.Errorf("holidays: %w", err)
	}
	p.Logger.Info("[holidays] Saved %d holidays to %s (%d years failed)", len(all), p.OutputPath, failed)

	if p.Sink != nil && len(all) > 0 {
		if err := p.Sink.WriteHolidays(ctx, all); err != nil {
			p.Logger.Error("[holidays] PostgreSQL write failed: %v", err)
			return nil
		}
		p.Logger.Info("[holidays] Stored %d holidays in PostgreSQL (table: holidays)", len(all))

		stored, err := p.Sink.CountHolidays(ctx, p.Country)
		if err != nil {
			p.Logger.Error("[holidays] Failed to count stored holidays: %v", err)
			return nil
		}
		p.Logger.Info("[holidays] PostgreSQL now holds %d holidays for %s", stored, p.Country)
	}

	return nil
}

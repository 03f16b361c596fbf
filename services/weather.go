package services

import (
	"context"
	"strconv"
	"time"

	"dataset-collector/models"
	"dataset-collector/utils"
)

// MissingWeatherCode is written when no weather code matches a row.
const MissingWeatherCode = ""

// WeatherJoinColumns are appended to the input header by Join.
var WeatherJoinColumns = []string{"date_only", "lat_rounded", "lon_rounded", "weather_code"}

// WeatherSource returns the daily weather codes for one location and date range.
type WeatherSource interface {
	DailyWeatherCodes(ctx context.Context, loc models.Location, start, end time.Time) ([]models.DailyCode, error)
}

// WeatherTable maps a rounded location and date to a weather code. It is built
// once by WeatherJoiner.BuildTable and only read afterwards.
type WeatherTable map[models.WeatherKey]float64

// Lookup returns the code stored for exactly key.
func (t WeatherTable) Lookup(key models.WeatherKey) (float64, bool) {
	code, ok := t[key]
	return code, ok
}

type dateRange struct {
	min, max time.Time
}

// WeatherJoiner backfills review rows with historical weather codes.
type WeatherJoiner struct {
	source   WeatherSource
	throttle *utils.Throttle
	logger   *utils.Logger
}

// NewWeatherJoiner creates a joiner that pauses at least pause between
// location queries.
func NewWeatherJoiner(source WeatherSource, pause time.Duration, logger *utils.Logger) *WeatherJoiner {
	return &WeatherJoiner{
		source:   source,
		throttle: utils.NewThrottle(pause),
		logger:   logger,
	}
}

// BuildTable issues one ranged query per distinct rounded location, in the
// order locations first appear. A failed location is logged and left unfilled.
// Only a cancelled ctx stops the loop early.
func (j *WeatherJoiner) BuildTable(ctx context.Context, rows []models.ReviewRow) (WeatherTable, error) {
	locations := utils.NewOrderedSet[models.Location]()
	ranges := make(map[models.Location]*dateRange)

	for _, row := range rows {
		if !row.Located {
			continue
		}
		if locations.Add(row.Location) {
			ranges[row.Location] = &dateRange{min: row.Date, max: row.Date}
			continue
		}
		r := ranges[row.Location]
		if row.Date.Before(r.min) {
			r.min = row.Date
		}
		if row.Date.After(r.max) {
			r.max = row.Date
		}
	}

	j.logger.Info("[weather] Found %d unique locations", locations.Size())

	table := make(WeatherTable)
	failed := 0
	for i, loc := range locations.Values() {
		if err := j.throttle.Wait(ctx); err != nil {
			return table, err
		}

		r := ranges[loc]
		j.logger.Info("[weather] Location %d/%d (%s, %s): %s to %s",
			i+1, locations.Size(), loc.LatString(), loc.LonString(),
			r.min.Format(models.DateLayout), r.max.Format(models.DateLayout))

		days, err := j.source.DailyWeatherCodes(ctx, loc, r.min, r.max)
		if err != nil {
			if ctx.Err() != nil {
				return table, ctx.Err()
			}
			failed++
			j.logger.Error("[weather] Location (%s, %s) failed: %v", loc.LatString(), loc.LonString(), err)
			continue
		}

		filled := 0
		for _, d := range days {
			if d.Code == nil {
				continue
			}
			table[models.WeatherKey{Location: loc, Date: d.Date}] = *d.Code
			filled++
		}
		j.logger.Info("[weather] Received %d daily records (%d with a code)", len(days), filled)
	}

	if failed > 0 {
		j.logger.Warn("[weather] %d of %d locations failed and were left unfilled", failed, locations.Size())
	}
	return table, nil
}

// Join appends WeatherJoinColumns to header and to every row. A row gets the
// code stored under its own rounded location and date, or MissingWeatherCode.
func (j *WeatherJoiner) Join(header []string, rows []models.ReviewRow, table WeatherTable) ([]string, [][]string) {
	outHeader := append(append([]string{}, header...), WeatherJoinColumns...)

	out := make([][]string, 0, len(rows))
	matched := 0
	for _, row := range rows {
		cells := append(make([]string, 0, len(row.Cells)+len(WeatherJoinColumns)), row.Cells...)
		if !row.Located {
			out = append(out, append(cells, "", "", "", MissingWeatherCode))
			continue
		}

		key := row.Key()
		code := MissingWeatherCode
		if v, ok := table.Lookup(key); ok {
			code = strconv.FormatFloat(v, 'f', -1, 64)
			matched++
		}
		out = append(out, append(cells, key.Date, row.Location.LatString(), row.Location.LonString(), code))
	}

	j.logger.Info("[weather] Matched a weather code for %d of %d rows", matched, len(rows))
	return outHeader, out
}

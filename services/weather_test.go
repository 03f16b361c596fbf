package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataset-collector/models"
)

type fakeWeatherSource struct {
	calls []fakeCall
	codes map[models.Location][]models.DailyCode
	fail  map[models.Location]bool
}

type fakeCall struct {
	loc        models.Location
	start, end string
}

func (f *fakeWeatherSource) DailyWeatherCodes(_ context.Context, loc models.Location, start, end time.Time) ([]models.DailyCode, error) {
	f.calls = append(f.calls, fakeCall{loc, start.Format(models.DateLayout), end.Format(models.DateLayout)})
	if f.fail[loc] {
		return nil, errors.New("archive unavailable")
	}
	return f.codes[loc], nil
}

func code(v float64) *float64 { return &v }

func row(lat, lon float64, date string, cells ...string) models.ReviewRow {
	d, err := time.Parse(models.DateLayout, date)
	if err != nil {
		panic(err)
	}
	return models.ReviewRow{Cells: cells, Location: models.NewLocation(lat, lon), Date: d, Located: true}
}

func TestBuildTableOneQueryPerLocation(t *testing.T) {
	a := models.NewLocation(40.0, -75.0)
	b := models.NewLocation(41.0, -74.0)
	src := &fakeWeatherSource{codes: map[models.Location][]models.DailyCode{
		a: {{Date: "2020-01-01", Code: code(3)}, {Date: "2020-01-02", Code: nil}, {Date: "2020-01-03", Code: code(61)}},
		b: {{Date: "2021-06-01", Code: code(0)}},
	}}
	j := NewWeatherJoiner(src, 0, newTestLogger())

	rows := []models.ReviewRow{
		row(40.0, -75.0, "2020-01-03", "r1"),
		row(41.0, -74.0, "2021-06-01", "r2"),
		row(40.000001, -75.000001, "2020-01-01", "r3"),
		{Cells: []string{"r4"}},
	}

	table, err := j.BuildTable(context.Background(), rows)
	require.NoError(t, err)

	require.Len(t, src.calls, 2)
	assert.Equal(t, fakeCall{a, "2020-01-01", "2020-01-03"}, src.calls[0])
	assert.Equal(t, fakeCall{b, "2021-06-01", "2021-06-01"}, src.calls[1])

	assert.Len(t, table, 3, "null codes are not stored")
	v, ok := table.Lookup(models.WeatherKey{Location: a, Date: "2020-01-03"})
	assert.True(t, ok)
	assert.Equal(t, 61.0, v)
}

func TestBuildTableFailedLocationLeftUnfilled(t *testing.T) {
	a := models.NewLocation(40.0, -75.0)
	b := models.NewLocation(41.0, -74.0)
	src := &fakeWeatherSource{
		codes: map[models.Location][]models.DailyCode{b: {{Date: "2021-06-01", Code: code(2)}}},
		fail:  map[models.Location]bool{a: true},
	}
	j := NewWeatherJoiner(src, 0, newTestLogger())

	rows := []models.ReviewRow{row(40.0, -75.0, "2020-01-01"), row(41.0, -74.0, "2021-06-01")}
	table, err := j.BuildTable(context.Background(), rows)

	require.NoError(t, err)
	assert.Len(t, src.calls, 2, "a failure does not stop later locations")
	assert.Len(t, table, 1)
}

func TestBuildTableStopsOnCancel(t *testing.T) {
	src := &fakeWeatherSource{}
	j := NewWeatherJoiner(src, time.Hour, newTestLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rows := []models.ReviewRow{row(40.0, -75.0, "2020-01-01"), row(41.0, -74.0, "2021-06-01")}
	_, err := j.BuildTable(ctx, rows)
	assert.ErrorIs(t, err, context.Canceled)
	assert.LessOrEqual(t, len(src.calls), 1)
}

func TestJoinUsesExactKeyOnly(t *testing.T) {
	a := models.NewLocation(40.0, -75.0)
	b := models.NewLocation(41.0, -74.0)
	table := WeatherTable{
		{Location: a, Date: "2020-01-01"}: 3,
		{Location: b, Date: "2020-01-02"}: 71,
	}
	j := NewWeatherJoiner(&fakeWeatherSource{}, 0, newTestLogger())

	rows := []models.ReviewRow{
		row(40.0, -75.0, "2020-01-01", "hit"),
		row(40.0, -75.0, "2020-01-02", "wrong-date"),
		row(41.0, -74.0, "2020-01-01", "wrong-location"),
		row(40.000004, -74.999996, "2020-01-01", "rounds-to-a"),
		{Cells: []string{"unlocated"}},
	}

	header, out := j.Join([]string{"id"}, rows, table)

	assert.Equal(t, []string{"id", "date_only", "lat_rounded", "lon_rounded", "weather_code"}, header)
	require.Len(t, out, 5)
	assert.Equal(t, []string{"hit", "2020-01-01", "40", "-75", "3"}, out[0])
	assert.Equal(t, MissingWeatherCode, out[1][4])
	assert.Equal(t, MissingWeatherCode, out[2][4])
	assert.Equal(t, "3", out[3][4])
	assert.Equal(t, []string{"unlocated", "", "", "", MissingWeatherCode}, out[4])
}

func TestJoinDoesNotAliasInputCells(t *testing.T) {
	j := NewWeatherJoiner(&fakeWeatherSource{}, 0, newTestLogger())
	cells := make([]string, 1, 8)
	cells[0] = "x"
	rows := []models.ReviewRow{{Cells: cells}, {Cells: cells}}

	_, out := j.Join([]string{"id"}, rows, WeatherTable{})
	out[0][1] = "changed"
	assert.Equal(t, "", out[1][1])
}

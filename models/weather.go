package models

import (
	"math"
	"strconv"
	"time"
)

// coordScale turns degrees into integer hundred-thousandths (5 decimal places).
const coordScale = 1e5

// DateLayout is the calendar-date format used for keys, queries and CSV cells.
const DateLayout = "2006-01-02"

// Location is a coordinate pair rounded to 5 decimal places. Storing the
// rounded value as an integer keeps equality exact.
type Location struct {
	LatE5 int64
	LonE5 int64
}

// NewLocation rounds lat/lon to 5 decimal places.
func NewLocation(lat, lon float64) Location {
	return Location{
		LatE5: int64(math.Round(lat * coordScale)),
		LonE5: int64(math.Round(lon * coordScale)),
	}
}

func (l Location) Lat() float64 { return float64(l.LatE5) / coordScale }
func (l Location) Lon() float64 { return float64(l.LonE5) / coordScale }

// LatString formats the rounded latitude without trailing zeros.
func (l Location) LatString() string { return strconv.FormatFloat(l.Lat(), 'f', -1, 64) }

// LonString formats the rounded longitude without trailing zeros.
func (l Location) LonString() string { return strconv.FormatFloat(l.Lon(), 'f', -1, 64) }

// WeatherKey identifies one day of weather at one rounded location.
type WeatherKey struct {
	Location
	Date string
}

// DailyCode is one day of an archive series. Code is nil when the archive has
// no value for that day.
type DailyCode struct {
	Date string
	Code *float64
}

// ReviewRow is one row of the merged review/location CSV. Cells holds the
// original values in header order; Located is false when the coordinates or
// the date could not be parsed.
type ReviewRow struct {
	Cells    []string
	Location Location
	Date     time.Time
	Located  bool
}

// Key returns the weather lookup key for the row.
func (r ReviewRow) Key() WeatherKey {
	return WeatherKey{Location: r.Location, Date: r.Date.Format(DateLayout)}
}

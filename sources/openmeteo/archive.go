package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"dataset-collector/models"
	"dataset-collector/sources/httpx"
)

// DefaultBaseURL is the historical weather archive API root.
const DefaultBaseURL = "https://archive-api.open-meteo.com/v1"

// Client queries the Open-Meteo archive for daily weather codes.
type Client struct {
	http    *httpx.Client
	baseURL string
}

// New creates a Client rooted at baseURL.
func New(http *httpx.Client, baseURL string) *Client {
	return &Client{http: http, baseURL: strings.TrimRight(baseURL, "/")}
}

type archiveResponse struct {
	UTCOffsetSeconds int `json:"utc_offset_seconds"`
	Daily            struct {
		Time        []int64    `json:"time"`
		WeatherCode []*float64 `json:"weather_code"`
	} `json:"daily"`
}

// DailyWeatherCodes fetches the daily weather_code series for loc between start
// and end inclusive, in the location's local time zone.
func (c *Client) DailyWeatherCodes(ctx context.Context, loc models.Location, start, end time.Time) ([]models.DailyCode, error) {
	query := url.Values{}
	query.Set("latitude", loc.LatString())
	query.Set("longitude", loc.LonString())
	query.Set("start_date", start.Format(models.DateLayout))
	query.Set("end_date", end.Format(models.DateLayout))
	query.Set("daily", "weather_code")
	query.Set("timezone", "auto")
	query.Set("timeformat", "unixtime")

	body, err := c.http.Get(ctx, c.baseURL+"/archive", query)
	if err != nil {
		return nil, err
	}

	var resp archiveResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("openmeteo: decode archive response: %w", err)
	}
	return resp.days()
}

func (r *archiveResponse) days() ([]models.DailyCode, error) {
	if len(r.Daily.Time) != len(r.Daily.WeatherCode) {
		return nil, fmt.Errorf("openmeteo: daily axis has %d times but %d weather codes",
			len(r.Daily.Time), len(r.Daily.WeatherCode))
	}

	offset := time.Duration(r.UTCOffsetSeconds) * time.Second
	days := make([]models.DailyCode, len(r.Daily.Time))
	for i, ts := range r.Daily.Time {
		local := time.Unix(ts, 0).UTC().Add(offset)
		days[i] = models.DailyCode{Date: local.Format(models.DateLayout), Code: r.Daily.WeatherCode[i]}
	}
	return days, nil
}

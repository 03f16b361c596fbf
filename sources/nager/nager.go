package nager

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"dataset-collector/models"
	"dataset-collector/sources/httpx"
)

// DefaultBaseURL is the public-holiday API root.
const DefaultBaseURL = "https://date.nager.at/api/v3"

// Client reads public holidays from the Nager.Date API.
type Client struct {
	http    *httpx.Client
	baseURL string
}

// New creates a Client rooted at baseURL.
func New(http *httpx.Client, baseURL string) *Client {
	return &Client{http: http, baseURL: strings.TrimRight(baseURL, "/")}
}

// PublicHolidays returns the raw holiday objects for one year and country.
// An empty response body yields no records.
func (c *Client) PublicHolidays(ctx context.Context, year int, countryCode string) ([]models.Record, error) {
	url := c.baseURL + "/publicholidays/" + strconv.Itoa(year) + "/" + countryCode

	body, err := c.http.Get(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	var items []models.Record
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("nager: decode %d/%s: %w", year, countryCode, err)
	}
	return items, nil
}

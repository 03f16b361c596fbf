package services

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"dataset-collector/models"
	"dataset-collector/utils"
)

func newTestLogger() *utils.Logger { return utils.NewDiscardLogger() }

func record(t *testing.T, raw string) models.Record {
	t.Helper()
	var rec models.Record
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))
	return rec
}

func business(id, categories string, stars float64, reviewCount int) *models.Business {
	return &models.Business{ID: id, Categories: categories, Stars: stars, ReviewCount: reviewCount}
}

func review(id string, stars *int, useful int) *models.Review {
	return &models.Review{ID: id, BusinessID: "b", Stars: stars, Useful: useful}
}

func starsPtr(s int) *int { return &s }

// reviewsWithStars returns n reviews rated stars, with useful counts n..1.
func reviewsWithStars(prefix string, stars, n int) []*models.Review {
	out := make([]*models.Review, n)
	for i := range out {
		out[i] = review(fmt.Sprintf("%s%d", prefix, i), starsPtr(stars), n-i)
	}
	return out
}

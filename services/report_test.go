package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataset-collector/models"
)

func TestReportGenerate(t *testing.T) {
	svc := NewReportService(newTestLogger())

	a := business("a", "Restaurants", 4.5, 10)
	a.Record = record(t, `{"business_id":"a","name":"Pat's King of Steaks"}`)
	b := business("b", "Restaurants", 3.0, 5)
	c := business("c", "Restaurants", 4.5, 1)

	loaded := map[string][]*models.Review{
		"a": reviewsWithStars("a", 5, 4),
		"b": reviewsWithStars("b", 3, 2),
	}
	selected := map[string][]*models.Review{
		"a": loaded["a"][:3],
		"b": loaded["b"],
	}

	r := svc.Generate([]*models.Business{a, b, c}, loaded, selected)

	assert.Equal(t, 3, r.TotalBusinesses)
	assert.Equal(t, 5, r.TotalReviews)
	assert.Equal(t, []models.StarCount{{Stars: 3.0, Count: 1}, {Stars: 4.5, Count: 2}}, r.StarDistribution)
	require.Len(t, r.PerBusiness, 3)
	assert.Equal(t, models.BusinessReviewCount{BusinessID: "a", Name: "Pat's King of Steaks", Stars: 4.5, Loaded: 4, Selected: 3}, r.PerBusiness[0])
	assert.Equal(t, 0, r.PerBusiness[2].Loaded)
}

func TestReportPrint(t *testing.T) {
	svc := NewReportService(newTestLogger())
	r := &models.SampleReport{
		TotalBusinesses:  1,
		TotalReviews:     2,
		StarDistribution: []models.StarCount{{Stars: 4.0, Count: 1}},
		PerBusiness:      []models.BusinessReviewCount{{BusinessID: "a", Name: "Reading Terminal Market", Stars: 4.0, Loaded: 9, Selected: 2}},
	}

	var buf bytes.Buffer
	svc.Print(&buf, r)

	out := buf.String()
	assert.Contains(t, out, "Reading Terminal Market")
	assert.Contains(t, out, "4.0")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "Café Ol...", truncate("Café Olé Olé Olé", 10))
}

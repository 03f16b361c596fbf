package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataset-collector/models"
)

func ids(reviews []*models.Review) []string {
	out := make([]string, len(reviews))
	for i, r := range reviews {
		out[i] = r.ID
	}
	return out
}

func TestReviewSamplerHeadTailSplit(t *testing.T) {
	s := NewReviewSampler(130, newTestLogger())

	// 10 five-star reviews out of 260 in total: n = round(10/260*130) = 5,
	// high = 3 most useful, low = 2 least useful.
	fiveStar := reviewsWithStars("five", 5, 10)
	oneStar := reviewsWithStars("one", 1, 250)
	input := append(append([]*models.Review{}, oneStar...), fiveStar...)

	got := s.Sample(input)
	require.Len(t, got, 130)

	tail := got[len(got)-5:]
	assert.Equal(t, []string{"five0", "five1", "five2", "five8", "five9"}, ids(tail))
	assert.Equal(t, []int{10, 9, 8, 2, 1}, []int{tail[0].Useful, tail[1].Useful, tail[2].Useful, tail[3].Useful, tail[4].Useful})

	for _, r := range got[:125] {
		assert.Equal(t, 1, *r.Stars)
	}
}

func TestReviewSamplerSmallBusinessTakesEverything(t *testing.T) {
	s := NewReviewSampler(130, newTestLogger())
	input := reviewsWithStars("r", 4, 3)

	got := s.Sample(input)
	assert.Equal(t, []string{"r0", "r1", "r2"}, ids(got))
}

func TestReviewSamplerOverlappingHeadAndTail(t *testing.T) {
	s := NewReviewSampler(130, newTestLogger())

	// 10 of 100: n = 13, high = 7 from the head, low = 6 from the tail.
	// The tail starts at index 4, so a2..a6 appear twice.
	input := append(reviewsWithStars("a", 2, 10), reviewsWithStars("b", 3, 90)...)

	got := s.Sample(input)

	var twoStar []string
	for _, r := range got {
		if *r.Stars == 2 {
			twoStar = append(twoStar, r.ID)
		}
	}
	assert.Equal(t, []string{
		"a0", "a1", "a2", "a3", "a4", "a5", "a6",
		"a4", "a5", "a6", "a7", "a8", "a9",
	}, twoStar)
}

func TestReviewSamplerDropsInvalidStars(t *testing.T) {
	s := NewReviewSampler(130, newTestLogger())
	input := []*models.Review{
		review("none", nil, 1),
		review("neg", starsPtr(-1), 1),
		review("six", starsPtr(6), 1),
		review("ok", starsPtr(0), 1),
	}

	got := s.Sample(input)
	assert.Equal(t, []string{"ok"}, ids(got))
}

func TestReviewSamplerBucketOrderAndMinimumOne(t *testing.T) {
	s := NewReviewSampler(130, newTestLogger())

	// One 0-star review among 1000 still gets one slot.
	input := append(reviewsWithStars("five", 5, 999), review("zero", starsPtr(0), 0))

	got := s.Sample(input)
	require.NotEmpty(t, got)
	assert.Equal(t, "zero", got[0].ID, "buckets are ascending by stars")
	assert.LessOrEqual(t, len(got), 130)
}

func TestReviewSamplerNeverExceedsLimit(t *testing.T) {
	s := NewReviewSampler(130, newTestLogger())

	var input []*models.Review
	for stars := 0; stars <= 5; stars++ {
		input = append(input, reviewsWithStars("r", stars, 7)...)
	}
	got := s.Sample(input)
	assert.LessOrEqual(t, len(got), 130)
	for _, r := range got {
		require.NotNil(t, r.Stars)
		assert.GreaterOrEqual(t, *r.Stars, 0)
		assert.LessOrEqual(t, *r.Stars, 5)
	}
}

func TestReviewSamplerEmpty(t *testing.T) {
	s := NewReviewSampler(130, newTestLogger())
	assert.Empty(t, s.Sample(nil))
}

package services

import (
	"math"
	"slices"

	"dataset-collector/models"
	"dataset-collector/utils"
)

const (
	// DefaultReviewLimit is the most reviews kept per business by default.
	DefaultReviewLimit = 130

	maxStars = 5
	// highShare is the part of each bucket's picks taken from the most useful end.
	highShare = 0.6
)

// ReviewSampler selects a star-stratified mix of very useful and barely useful
// reviews for one business.
type ReviewSampler struct {
	limit  int
	logger *utils.Logger
}

// NewReviewSampler creates a sampler that keeps at most limit reviews.
func NewReviewSampler(limit int, logger *utils.Logger) *ReviewSampler {
	if limit <= 0 {
		limit = DefaultReviewLimit
	}
	return &ReviewSampler{limit: limit, logger: logger}
}

// Sample buckets reviews by whole-star rating 0..5 and takes
// max(1, round(bucket/total*limit)) reviews from each bucket: 60% (rounded
// down) from the most useful end and the rest from the least useful end. In a
// small bucket the two ends can overlap, so a review may be picked twice.
// Buckets are concatenated in ascending star order and the result is cut to limit.
func (s *ReviewSampler) Sample(reviews []*models.Review) []*models.Review {
	total := len(reviews)
	if total == 0 {
		return nil
	}

	var buckets [maxStars + 1][]*models.Review
	dropped := 0
	for _, r := range reviews {
		if r.Stars == nil || *r.Stars < 0 || *r.Stars > maxStars {
			dropped++
			continue
		}
		buckets[*r.Stars] = append(buckets[*r.Stars], r)
	}
	if dropped > 0 {
		s.logger.Debug("[sampler] Dropped %d reviews without a valid star rating", dropped)
	}

	var selected []*models.Review
	for _, bucket := range buckets {
		if len(bucket) == 0 {
			continue
		}
		selected = append(selected, s.pick(bucket, total)...)
	}

	if len(selected) > s.limit {
		selected = selected[:s.limit]
	}
	return selected
}

func (s *ReviewSampler) pick(bucket []*models.Review, total int) []*models.Review {
	slices.SortStableFunc(bucket, func(a, b *models.Review) int {
		return b.Useful - a.Useful
	})

	ratio := float64(len(bucket)) / float64(total)
	n := max(1, int(math.RoundToEven(ratio*float64(s.limit))))
	high := int(highShare * float64(n))
	low := n - high

	headEnd := min(high, len(bucket))
	picks := slices.Clone(bucket[:headEnd])

	if low > 0 && len(bucket) > high {
		picks = append(picks, bucket[max(len(bucket)-low, 0):]...)
	}
	return picks
}

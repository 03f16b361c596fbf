package services

import (
	"slices"
	"strings"

	"dataset-collector/models"
	"dataset-collector/utils"
)

// DefaultBusinessTarget is the number of businesses kept by default.
const DefaultBusinessTarget = 75

// RatingBin is a half-open star range [Low, High).
type RatingBin struct {
	Low  float64
	High float64
}

func (b RatingBin) Contains(stars float64) bool {
	return stars >= b.Low && stars < b.High
}

// RatingBins partitions the valid rating domain in ascending order. The last
// bin is widened to 5.1 so that 5-star businesses are kept.
var RatingBins = []RatingBin{
	{2.0, 2.5},
	{2.5, 3.0},
	{3.0, 3.5},
	{3.5, 4.0},
	{4.0, 4.5},
	{4.5, 5.1},
}

// BusinessSampler picks a rating-stratified, popularity-ranked subset of
// restaurants.
type BusinessSampler struct {
	target int
	logger *utils.Logger
}

// NewBusinessSampler creates a sampler that keeps at most target businesses.
func NewBusinessSampler(target int, logger *utils.Logger) *BusinessSampler {
	if target <= 0 {
		target = DefaultBusinessTarget
	}
	return &BusinessSampler{target: target, logger: logger}
}

// IsRestaurant reports whether categories mention a restaurant, ignoring case.
func IsRestaurant(categories string) bool {
	return strings.Contains(strings.ToLower(categories), "restaurant")
}

// Sample filters restaurants, buckets them by RatingBins, orders each bin by
// review_count descending (stable) and fills the result bin by bin with
// floor(target/nonEmptyBins)+1 records per bin. Filling stops as soon as the
// result reaches target, so later bins can be left out entirely.
func (s *BusinessSampler) Sample(businesses []*models.Business) []*models.Business {
	bins := make([][]*models.Business, len(RatingBins))
	restaurants, outOfRange := 0, 0

	for _, b := range businesses {
		if !IsRestaurant(b.Categories) {
			continue
		}
		restaurants++
		idx := binIndex(b.Stars)
		if idx < 0 {
			outOfRange++
			continue
		}
		bins[idx] = append(bins[idx], b)
	}

	nonEmpty := 0
	for _, bin := range bins {
		if len(bin) > 0 {
			nonEmpty++
		}
	}
	s.logger.Info("[sampler] %d restaurants in %d non-empty rating bins (%d outside bins)",
		restaurants, nonEmpty, outOfRange)
	if nonEmpty == 0 {
		return nil
	}

	quota := s.target/nonEmpty + 1
	result := make([]*models.Business, 0, s.target+quota)

	for i, bin := range bins {
		if len(bin) == 0 {
			continue
		}
		slices.SortStableFunc(bin, func(a, b *models.Business) int {
			return b.ReviewCount - a.ReviewCount
		})

		take := min(quota, len(bin))
		result = append(result, bin[:take]...)
		s.logger.Debug("[sampler] Bin [%.1f, %.1f): took %d of %d",
			RatingBins[i].Low, RatingBins[i].High, take, len(bin))

		if len(result) >= s.target {
			result = result[:s.target]
			break
		}
	}

	return result
}

func binIndex(stars float64) int {
	for i, bin := range RatingBins {
		if bin.Contains(stars) {
			return i
		}
	}
	return -1
}

package models

import (
	"errors"
	"fmt"
)

// ErrMissingBusinessID is returned when a dataset line carries no usable business_id.
var ErrMissingBusinessID = errors.New("missing business_id")

// Business is the typed view over one line of the business dataset.
type Business struct {
	ID          string
	Categories  string
	Stars       float64
	ReviewCount int
	Record      Record
}

// NewBusiness validates rec and extracts the known business fields. Missing
// categories, stars and review_count fall back to zero values.
func NewBusiness(rec Record) (*Business, error) {
	id, ok := rec.String("business_id")
	if !ok || id == "" {
		return nil, ErrMissingBusinessID
	}

	categories, _ := rec.String("categories")
	stars, _ := rec.Float("stars")
	reviewCount, _ := rec.Int("review_count")

	return &Business{
		ID:          id,
		Categories:  categories,
		Stars:       stars,
		ReviewCount: reviewCount,
		Record:      rec,
	}, nil
}

// Review is the typed view over one line of the review dataset.
type Review struct {
	ID         string
	BusinessID string
	// Stars is nil when the source value is absent, null or not a whole number.
	Stars  *int
	Useful int
	Record Record
}

// NewReview validates rec and extracts the known review fields.
func NewReview(rec Record) (*Review, error) {
	businessID, ok := rec.String("business_id")
	if !ok || businessID == "" {
		return nil, fmt.Errorf("review: %w", ErrMissingBusinessID)
	}

	id, _ := rec.String("review_id")
	useful, _ := rec.Int("useful")

	var stars *int
	if s, ok := rec.Int("stars"); ok {
		stars = &s
	}

	return &Review{
		ID:         id,
		BusinessID: businessID,
		Stars:      stars,
		Useful:     useful,
		Record:     rec,
	}, nil
}

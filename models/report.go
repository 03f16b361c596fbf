package models

// StarCount is the number of selected businesses with one star rating.
type StarCount struct {
	Stars float64
	Count int
}

// BusinessReviewCount tracks how many reviews were loaded and kept for one business.
type BusinessReviewCount struct {
	BusinessID string
	Name       string
	Stars      float64
	Loaded     int
	Selected   int
}

// SampleReport holds the summary printed after the review pipeline.
type SampleReport struct {
	TotalBusinesses  int
	TotalReviews     int
	StarDistribution []StarCount
	PerBusiness      []BusinessReviewCount
}

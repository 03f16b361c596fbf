package models

// Holiday is one normalized public-holiday entry for a single year and country.
type Holiday struct {
	Date        string
	LocalName   string
	Name        string
	CountryCode string
	Fixed       bool
	Global      bool
	Counties    []string
	LaunchYear  *int
	Types       []string
}

package services

import (
	"dataset-collector/models"
	"dataset-collector/utils"
)

// HolidayNormalizer turns raw holiday objects into Holidays with explicit
// defaults for every missing or mistyped field.
type HolidayNormalizer struct {
	logger *utils.Logger
}

// NewHolidayNormalizer creates a HolidayNormalizer with the given logger.
func NewHolidayNormalizer(logger *utils.Logger) *HolidayNormalizer {
	return &HolidayNormalizer{logger: logger}
}

// Normalize converts every raw item. It never fails: text fields default to "",
// booleans to false, launchYear to nil and list fields to empty.
func (n *HolidayNormalizer) Normalize(raw []models.Record) []*models.Holiday {
	result := make([]*models.Holiday, 0, len(raw))
	for _, r := range raw {
		result = append(result, normalizeHoliday(r))
	}
	n.logger.Debug("[holidays] Normalized %d records", len(result))
	return result
}

func normalizeHoliday(r models.Record) *models.Holiday {
	h := &models.Holiday{}
	h.Date, _ = r.String("date")
	h.LocalName, _ = r.String("localName")
	h.Name, _ = r.String("name")
	h.CountryCode, _ = r.String("countryCode")
	h.Fixed, _ = r.Bool("fixed")
	h.Global, _ = r.Bool("global")
	h.Counties, _ = r.Strings("counties")
	h.Types, _ = r.Strings("types")
	if year, ok := r.Int("launchYear"); ok {
		h.LaunchYear = &year
	}
	return h
}

package services

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"dataset-collector/models"
	"dataset-collector/utils"
)

type ReportService struct {
	logger *utils.Logger
}

func NewReportService(logger *utils.Logger) *ReportService {
	return &ReportService{logger: logger}
}

// Generate summarizes the selected businesses and, per business, how many
// reviews were loaded and selected. Businesses keep their selection order.
func (s *ReportService) Generate(businesses []*models.Business, loaded map[string][]*models.Review, selected map[string][]*models.Review) *models.SampleReport {
	report := &models.SampleReport{TotalBusinesses: len(businesses)}

	dist := make(map[float64]int)
	for _, b := range businesses {
		dist[b.Stars]++

		name, _ := b.Record.String("name")
		count := models.BusinessReviewCount{
			BusinessID: b.ID,
			Name:       name,
			Stars:      b.Stars,
			Loaded:     len(loaded[b.ID]),
			Selected:   len(selected[b.ID]),
		}
		report.TotalReviews += count.Selected
		report.PerBusiness = append(report.PerBusiness, count)
	}

	for stars, n := range dist {
		report.StarDistribution = append(report.StarDistribution, models.StarCount{Stars: stars, Count: n})
	}
	sort.Slice(report.StarDistribution, func(i, j int) bool {
		return report.StarDistribution[i].Stars < report.StarDistribution[j].Stars
	})

	return report
}

// Print writes the report as tables to w.
func (s *ReportService) Print(w io.Writer, r *models.SampleReport) {
	stars := table.NewWriter()
	stars.SetOutputMirror(w)
	stars.SetTitle("Selected restaurants by rating")
	stars.AppendHeader(table.Row{"Stars", "Restaurants"})
	for _, sc := range r.StarDistribution {
		stars.AppendRow(table.Row{fmt.Sprintf("%.1f", sc.Stars), sc.Count})
	}
	stars.AppendFooter(table.Row{"Total", r.TotalBusinesses})
	stars.SetStyle(table.StyleLight)
	stars.Render()

	fmt.Fprintln(w)

	reviews := table.NewWriter()
	reviews.SetOutputMirror(w)
	reviews.SetTitle("Reviews per restaurant")
	reviews.AppendHeader(table.Row{"#", "Restaurant", "Stars", "Loaded", "Selected"})
	for i, c := range r.PerBusiness {
		reviews.AppendRow(table.Row{i + 1, truncate(c.Name, 40), fmt.Sprintf("%.1f", c.Stars), c.Loaded, c.Selected})
	}
	reviews.AppendFooter(table.Row{"", "Total", "", "", r.TotalReviews})
	reviews.SetStyle(table.StyleLight)
	reviews.Render()
}

func truncate(s string, max int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= max {
		return string(runes)
	}
	return string(runes[:max-3]) + "..."
}

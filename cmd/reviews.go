package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"dataset-collector/pipelines"
	"dataset-collector/services"
)

func init() {
	rootCmd.AddCommand(reviewsCmd)
}

var reviewsCmd = &cobra.Command{
	Use:   "reviews",
	Short: "Samples restaurants and their reviews from the business and review datasets.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e := newEnv(cmd.Context())
		defer e.Close()
		cfg := e.cfg

		e.logger.Info("=== Review sampling starting ===")
		e.logger.Info("Config: restaurants %d | reviews/restaurant %d",
			cfg.BusinessSampleSize, cfg.ReviewSampleSize)

		p := &pipelines.Reviews{
			BusinessPath:       cfg.BusinessInputPath,
			ReviewPath:         cfg.ReviewInputPath,
			BusinessOutputPath: cfg.BusinessOutputPath,
			ReviewOutputPath:   cfg.ReviewOutputPath,
			BusinessSampler:    services.NewBusinessSampler(cfg.BusinessSampleSize, e.logger),
			ReviewSampler:      services.NewReviewSampler(cfg.ReviewSampleSize, e.logger),
			Report:             services.NewReportService(e.logger),
			ReportOut:          os.Stdout,
			Logger:             e.logger,
		}
		return p.Run(cmd.Context())
	},
}

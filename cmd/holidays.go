package cmd

import (
	"github.com/spf13/cobra"

	"dataset-collector/pipelines"
	"dataset-collector/services"
	"dataset-collector/sources/nager"
	"dataset-collector/storage"
)

func init() {
	rootCmd.AddCommand(holidaysCmd)
}

var holidaysCmd = &cobra.Command{
	Use:   "holidays",
	Short: "Collects public holidays for a country and year range into a CSV.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e := newEnv(ctx)
		defer e.Close()
		cfg := e.cfg

		e.logger.Info("=== Holiday collection starting ===")
		e.logger.Info("Config: country %s | years %d-%d | output %s",
			cfg.HolidayCountry, cfg.HolidayStartYear, cfg.HolidayEndYear, cfg.HolidayOutputPath)

		p := &pipelines.Holidays{
			Source:     nager.New(e.http, cfg.HolidayAPIBase),
			Normalizer: services.NewHolidayNormalizer(e.logger),
			Country:    cfg.HolidayCountry,
			StartYear:  cfg.HolidayStartYear,
			EndYear:    cfg.HolidayEndYear,
			OutputPath: cfg.HolidayOutputPath,
			Logger:     e.logger,
		}

		if cfg.PostgresEnabled {
			pg, err := storage.NewPostgresWriter(ctx, cfg.DSN(), e.logger)
			if err != nil {
				e.logger.Error("Failed to connect to PostgreSQL, writing CSV only: %v", err)
			} else {
				defer pg.Close()
				p.Sink = pg
			}
		}

		return p.Run(ctx)
	},
}

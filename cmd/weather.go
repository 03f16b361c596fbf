package cmd

import (
	"github.com/spf13/cobra"

	"dataset-collector/pipelines"
	"dataset-collector/services"
	"dataset-collector/sources/openmeteo"
)

func init() {
	rootCmd.AddCommand(weatherCmd)
}

var weatherCmd = &cobra.Command{
	Use:   "weather",
	Short: "Backfills the merged review CSV with historical daily weather codes.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e := newEnv(cmd.Context())
		defer e.Close()
		cfg := e.cfg

		e.logger.Info("=== Weather backfill starting ===")
		e.logger.Info("Config: input %s | output %s | pause %dms",
			cfg.WeatherInputPath, cfg.WeatherOutputPath, cfg.WeatherPauseMs)

		archive := openmeteo.New(e.http, cfg.WeatherAPIBase)
		p := &pipelines.Weather{
			InputPath:  cfg.WeatherInputPath,
			OutputPath: cfg.WeatherOutputPath,
			Joiner:     services.NewWeatherJoiner(archive, cfg.WeatherPause(), e.logger),
			Logger:     e.logger,
		}
		return p.Run(cmd.Context())
	},
}

package main

import (
	"log/slog"

	"github.com/rasterstat/rasterstat/internal/config"
	"github.com/rasterstat/rasterstat/internal/logs"
	"github.com/spf13/cobra"
)

var (
	cfgPath  string
	logLevel string
	logDir   string

	cfg      config.Config
	logStore *logs.Store
)

var rootCmd = &cobra.Command{
	Use:   "rasterstat",
	Short: "Vertical-accuracy statistics for raster surfaces",
	Long: `Rasterstat compares co-registered raster surfaces and reports accuracy
statistics (mean vertical error, RMSE, linear accuracy at the 95% confidence
limit). Diagnostics go to a rotating log store that can be viewed and cleared
from the command line.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		// Flags win over the config file.
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		if logDir != "" {
			cfg.LogDir = logDir
		}

		logStore, err = logs.NewStore(cfg.LogDir)
		if err != nil {
			return err
		}
		logStore.MaxSizeMB = cfg.LogMaxSizeMB
		logStore.MaxBackups = cfg.LogMaxBackups
		logStore.MaxAgeDays = cfg.LogMaxAgeDays

		var level slog.Level
		switch cfg.LogLevel {
		case "debug":
			level = slog.LevelDebug
		case "info":
			level = slog.LevelInfo
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		default:
			level = slog.LevelInfo
		}

		opts := &slog.HandlerOptions{Level: level}
		handler := slog.NewJSONHandler(logStore.Writer(), opts)
		slog.SetDefault(slog.New(handler))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", config.DefaultPath, "Config file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Log directory (overrides config)")
}

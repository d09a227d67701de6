package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"StockScan/internal/analyzer"
	"StockScan/internal/collector"
	"StockScan/internal/config"
	"StockScan/internal/notifier"
	"StockScan/internal/recorder"
	"StockScan/internal/scanner"
	"StockScan/internal/scheduler"
)

var (
	cfgPath    string
	outputPath string
	noDiscord  bool
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	// .env is optional; missing files are fine.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "stockscan",
		Short: "Stock watchlist scanner for bullish setups",
		Long: `StockScan computes deterministic technical signals (weekly trend, SMA
profile, Darvas box, volatility compression, sector relative strength) for a
watchlist of stocks, has Gemini judge the evidence, and reports the verdicts.`,
	}
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "configs/config.yaml", "Path to YAML config")

	scanCmd := &cobra.Command{
		Use:   "scan [watchlist.csv]",
		Short: "Run one scan over a watchlist CSV",
		Long:  "Fetches history for every ticker in the CSV (columns: ticker, exchange), computes indicators, and analyzes them.",
		Args:  cobra.ExactArgs(1),
		RunE:  runScan,
	}
	scanCmd.Flags().StringVar(&outputPath, "output", "results.json", "Output JSON path")
	scanCmd.Flags().BoolVar(&noDiscord, "no-discord", false, "Skip Discord notifications")

	watchCmd := &cobra.Command{
		Use:   "watch [watchlist.csv]",
		Short: "Run scans on a cron schedule",
		Long:  "Keeps running and re-scans the watchlist on the configured cron expression (schedule.scan_cron).",
		Args:  cobra.ExactArgs(1),
		RunE:  runWatch,
	}
	watchCmd.Flags().StringVar(&outputPath, "output", "results.json", "Output JSON path")
	watchCmd.Flags().BoolVar(&noDiscord, "no-discord", false, "Skip Discord notifications")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(watchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildScanner loads config and wires all collaborators.
func buildScanner() (*scanner.Scanner, *config.Config, func(), error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}

	fetcher := collector.NewYahooFetcher(cfg.Proxy)
	log.Info().Str("source", fetcher.Name()).Msg("data source ready")

	an := analyzer.NewClient(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Proxy, cfg.Scan.BatchSize)
	dn := notifier.NewDiscordNotifier(cfg.Discord.WebhookURL, cfg.Proxy)

	var rec recorder.Recorder
	cleanup := func() {}
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Warn().Err(err).Msg("sqlite recorder unavailable, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			cleanup = func() { sr.Close() }
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	return scanner.New(cfg, fetcher, an, dn, rec), cfg, cleanup, nil
}

func runScan(cmd *cobra.Command, args []string) error {
	sc, _, cleanup, err := buildScanner()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return sc.Run(ctx, args[0], outputPath, !noDiscord)
}

func runWatch(cmd *cobra.Command, args []string) error {
	sc, cfg, cleanup, err := buildScanner()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sched := scheduler.NewScheduler(ctx, sc, args[0], outputPath, !noDiscord)
	if err := sched.Register(cfg.Schedule.ScanCron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Info().Msg("RUN_ON_START enabled, scanning now")
		go sched.RunNow()
	}

	log.Info().Str("cron", cfg.Schedule.ScanCron).Msg("watch mode running, press Ctrl+C to stop")
	<-ctx.Done()
	log.Info().Msg("shutdown signal received, stopping")
	return nil
}

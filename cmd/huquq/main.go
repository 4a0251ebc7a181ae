package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/srahimian/huquq/internal/config"
	"github.com/srahimian/huquq/internal/metal"
	"github.com/srahimian/huquq/internal/recorder"
	"github.com/srahimian/huquq/internal/solar"
	"github.com/srahimian/huquq/internal/timewindow"
	"github.com/srahimian/huquq/pkg/constants"
	"github.com/srahimian/huquq/pkg/datetime"
	"github.com/srahimian/huquq/pkg/huquq"
	"github.com/srahimian/huquq/pkg/output"
	"github.com/srahimian/huquq/pkg/validation"
)

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "warn" // Quiet by default; the calculation itself goes to stdout
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	// Determine output format
	format := loggingConfig.Format
	if format == "" {
		format = "console" // Default to console for an interactive CLI
	}

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}
		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	basicOverride := flag.Float64("basic", 0, "user-supplied basic sum equal to 19 mithqals of gold; replaces the computed one")
	currencyOverride := flag.String("curr", "", "3-letter currency code overriding the configured currency")
	detail := flag.Bool("detail", false, "detailed output: dates, basic sum, remainder, payable, source")
	recordFile := flag.String("file", "", "CSV file to record this run in; overrides the configured path")
	priceOverride := flag.String("price", "", "user-supplied metal price as '[currency],[price],[weight]' (e.g., 'usd,1950.25,troy oz')")
	metalFlag := flag.String("metal", "gold", "metal to price: gold or silver")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: huquq [flags] <wealth amount>")
		flag.PrintDefaults()
		os.Exit(2)
	}
	wealth, err := strconv.ParseFloat(flag.Arg(0), 64)
	if err != nil || wealth < 0 {
		fmt.Fprintf(os.Stderr, "wealth amount must be a non-negative number, got %q\n", flag.Arg(0))
		os.Exit(2)
	}

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration at %s: %v\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := conf.ValidateConfiguration(); err != nil {
		logger.Fatal("configuration validation failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	if *currencyOverride != "" {
		if err := validation.ValidateCurrencyCode(*currencyOverride); err != nil {
			logger.Fatal(err.Error(), zap.String("op", "main"))
		}
		conf.Pricing.Currency = strings.ToUpper(*currencyOverride)
	}
	if *recordFile != "" {
		conf.Record.File = *recordFile
	}

	element, err := metal.ParseMetal(strings.ToLower(*metalFlag))
	if err != nil {
		logger.Fatal(err.Error(), zap.String("op", "main"))
	}

	now := time.Now()

	// Resolve the fiscal moment the price is anchored to.
	almanac, err := solar.NewAlmanac(logger)
	if err != nil {
		logger.Fatal("failed to initialize solar almanac",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	target, err := almanac.Moment(conf, now)
	if err != nil {
		logger.Fatal("failed to resolve the fiscal moment",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	obs, err := resolvePrice(conf, logger, *priceOverride, element, target, now)
	if err != nil {
		logger.Fatal("failed to resolve a metal price",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	calc, err := huquq.New(wealth, obs.Price, obs.Unit)
	if err != nil {
		logger.Fatal("failed to compute the payment",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	if *basicOverride != 0 {
		if *basicOverride < 0 {
			logger.Fatal("basic sum override must be positive", zap.String("op", "main"))
		}
		if err := calc.SetBasic(*basicOverride); err != nil {
			logger.Fatal("failed to recompute with the overridden basic sum",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}

	if *detail {
		output.DetailedFormat(target, obs, calc)
	} else {
		output.TerseFormat(obs, calc)
	}

	// Best-effort run history; the result has already been delivered.
	rec := recorder.NewCSVRecorder(conf.Record.File, logger)
	if err := rec.Record(recorder.Row{
		RunTime:     now,
		TargetTime:  target,
		Observation: obs,
		Wealth:      calc.Wealth,
		Payable:     calc.Payable,
	}); err != nil {
		logger.Debug("failed to record run",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}

// resolvePrice produces the observation the calculation uses: the user's
// price override when given, otherwise the nearest observation to the target
// from the configured price sources.
func resolvePrice(conf *config.Configuration, logger *zap.Logger, override string, element metal.Metal, target, now time.Time) (metal.Observation, error) {
	if override != "" {
		parsed, err := validation.ParsePriceOverride(override)
		if err != nil {
			return metal.Observation{}, err
		}
		return metal.Observation{
			Price:     parsed.Price,
			Timestamp: datetime.ToEpochMillis(now),
			Currency:  parsed.Currency,
			Unit:      parsed.Unit,
			Metal:     element,
			Source:    metal.UserSource,
		}, nil
	}

	window := timewindow.Plan(target, now)
	sources := []metal.Source{
		metal.NewGoldPriceClient(logger),
		metal.NewGoldOrgClient(conf.Pricing.Unit, logger),
	}
	resolver := metal.NewResolver(sources, logger)
	obs, advisory, err := resolver.Resolve(context.Background(), target, conf.Pricing.Currency, element, window)
	if err != nil {
		return metal.Observation{}, err
	}
	if advisory != "" {
		logger.Warn(advisory, zap.String("op", "main"))
	}
	return obs, nil
}

package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mgerber/venue-forecast/internal/config"
	"github.com/mgerber/venue-forecast/internal/report"
	"github.com/mgerber/venue-forecast/internal/scenario"
	"github.com/mgerber/venue-forecast/internal/server"
	"github.com/mgerber/venue-forecast/internal/store"
	"github.com/mgerber/venue-forecast/pkg/calendarweek"
	"github.com/mgerber/venue-forecast/pkg/constants"
)

var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info" // Default to info level
	}

	// Parse log level
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
		format = "json" // Default to JSON for production
	}

	// Configure encoder
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
		// Ensure the directory exists
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		// Test if we can create/write to the file
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	scenarioLocation := flag.String("scenario", "", "path to a scenario YAML file to compute")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	serve := flag.Bool("serve", false, "start the HTTP API server")
	listen := flag.String("listen", "", "listen address override for -serve")
	flag.Parse()

	// A missing .env is fine; it only supplies optional overrides such as
	// the Postgres DSN.
	_ = godotenv.Load()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		if *configLocation != constants.DefaultConfigFile {
			fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
			return
		}
		conf = config.DefaultConfiguration()
	}

	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	if *serve {
		runServer(logger, conf, *listen)
		return
	}

	if *scenarioLocation == "" {
		logger.Fatal("no scenario file given; pass -scenario or start the API with -serve",
			zap.String("op", "main"),
		)
	}

	sf, err := config.LoadScenarioFile(*scenarioLocation)
	if err != nil {
		logger.Fatal("failed to load scenario file",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	for _, warning := range sf.Validate() {
		logger.Warn("Scenario warning: "+warning,
			zap.String("op", "main"),
		)
	}

	currentWeek := conf.EffectiveCurrentWeek(calendarweek.Current())
	s := scenario.New(sf.Name, sf.Inputs)
	s.Recompute(sf.ComputeOptions(currentWeek))

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		report.PrettyFormat(s)
	case constants.OutputFormatCSV:
		report.CsvFormat(s)
	default:
		logger.Fatal(fmt.Sprintf("invalid output format: %s", outputFormat),
			zap.String("op", "main"),
		)
	}
}

func runServer(logger *zap.Logger, conf *config.Configuration, listenOverride string) {
	st, err := buildStore(logger, conf)
	if err != nil {
		logger.Fatal("failed to initialize scenario store",
			zap.String("op", "main.runServer"),
			zap.Error(err),
		)
	}

	currentWeek := func() int {
		return conf.EffectiveCurrentWeek(calendarweek.Current())
	}

	handler := server.NewHandler(logger, st, conf.Server.MaxBodySize, version,
		server.WithCurrentWeekFunc(currentWeek))

	address := conf.Server.Address
	if listenOverride != "" {
		address = listenOverride
	}

	logger.Info("starting HTTP server",
		zap.String("op", "main.runServer"),
		zap.String("address", address),
		zap.String("storeBackend", conf.Store.Backend),
	)

	if err := http.ListenAndServe(address, handler); err != nil {
		logger.Fatal("HTTP server failed",
			zap.String("op", "main.runServer"),
			zap.Error(err),
		)
	}
}

func buildStore(logger *zap.Logger, conf *config.Configuration) (store.Store, error) {
	switch conf.Store.Backend {
	case constants.StoreBackendPostgres:
		return store.NewPostgresStore(context.Background(), conf.Store.PostgresDSN, logger)
	default:
		return store.NewFileStore(conf.Store.DataDir, logger)
	}
}

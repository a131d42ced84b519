package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/launchdarkly/rest-contract-tests/config"
	"github.com/launchdarkly/rest-contract-tests/credentials"
	"github.com/launchdarkly/rest-contract-tests/framework"
	"github.com/launchdarkly/rest-contract-tests/logging"
	"github.com/launchdarkly/rest-contract-tests/usertests"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	logger := logging.New(os.Stderr, params.debugAll)
	if params.jsonLog {
		logger = logging.NewJSON(os.Stderr, params.debugAll)
	}

	cfg, err := config.Load(params.loadOptions())
	if err != nil {
		if credentials.IsMissing(err) {
			logger.Error().Err(err).Msg("No API token is available; set it before running the tests")
		} else {
			logger.Error().Stack().Err(err).Msg("Invalid configuration")
		}
		os.Exit(1)
	}

	seed := params.randomSeed()
	logger.Info().EmbedObject(cfg).Int64("seed", seed).Msg("Configuration loaded")

	fmt.Println()
	framework.PrintFilterDescription(os.Stdout, params.filters)

	fmt.Println("Running test suite")

	testLogger := &ConsoleTestLogger{
		Out:                  os.Stdout,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	env := usertests.NewEnvironment(cfg, seed, clientLogger(logger, params.debugAll))
	results := usertests.RunTestSuite(
		context.Background(),
		env,
		usertests.DefaultRegistry(),
		params.filters.AsFilter,
		testLogger,
	)

	fmt.Println()
	framework.PrintResults(os.Stdout, results)
	if !results.OK() {
		fmt.Printf("To repeat this run with the same generated data, use -seed %d\n", seed)
		os.Exit(1)
	}
}

// clientLogger is the logger for HTTP client warnings, which are only interesting with -debug-all.
func clientLogger(logger zerolog.Logger, debugAll bool) zerolog.Logger {
	if !debugAll {
		return logger.Level(zerolog.ErrorLevel)
	}
	return logger.With().Str("component", "http").Logger()
}

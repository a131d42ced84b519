package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/launchdarkly/rest-contract-tests/config"
	"github.com/launchdarkly/rest-contract-tests/framework"
)

type commandParams struct {
	baseURI    string
	configFile string
	tokenFile  string
	schemaDir  string
	timeout    time.Duration
	filters    framework.RegexFilters
	seed       optionalIntFlag
	debug      bool
	debugAll   bool
	jsonLog    bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.StringVar(&c.baseURI, "url", "", "base URI of the API (default "+config.DefaultSettings().BaseURI+")")
	fs.StringVar(&c.configFile, "config", "", "YAML file of settings")
	fs.StringVar(&c.tokenFile, "token-file", "", "file containing the bearer token")
	fs.StringVar(&c.schemaDir, "schema-dir", "", "directory of JSON Schema documents to use instead of the built-in ones")
	fs.DurationVar(&c.timeout, "timeout", 0, "HTTP request timeout (default "+config.DefaultTimeout.String()+")")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.Var(&c.seed, "seed", "random seed for generated data (default: based on the current time)")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")
	fs.BoolVar(&c.jsonLog, "log-json", false, "write process log events as JSON")

	if err := fs.Parse(args[1:]); err != nil {
		if err != flag.ErrHelp {
			fmt.Fprintln(os.Stderr, err)
		}
		return false
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %v\n", fs.Args())
		fs.Usage()
		return false
	}
	return true
}

func (c *commandParams) loadOptions() config.LoadOptions {
	return config.LoadOptions{
		ConfigFile: c.configFile,
		Overrides: config.Settings{
			BaseURI:   c.baseURI,
			Timeout:   c.timeout,
			SchemaDir: c.schemaDir,
			TokenFile: c.tokenFile,
		},
	}
}

// randomSeed returns the seed given on the command line, or else one derived from the clock.
func (c *commandParams) randomSeed() int64 {
	if n, ok := c.seed.Get(); ok {
		return int64(n)
	}
	return time.Now().UnixNano()
}

// optionalIntFlag is a flag.Value that remembers whether it was set at all.
type optionalIntFlag struct {
	ldvalue.OptionalInt
}

func (f *optionalIntFlag) String() string {
	if n, ok := f.Get(); ok {
		return strconv.Itoa(n)
	}
	return ""
}

func (f *optionalIntFlag) Set(value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("not an integer: %q", value)
	}
	f.OptionalInt = ldvalue.NewOptionalInt(n)
	return nil
}

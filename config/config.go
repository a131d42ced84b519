// Package config resolves the process-wide settings that every scenario reads.
package config

import (
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/launchdarkly/rest-contract-tests/credentials"
	"github.com/launchdarkly/rest-contract-tests/servicedef"
)

// EnvPrefix is prepended to the names of the environment variables read by Load,
// e.g. CONTRACT_TESTS_BASE_URI.
const EnvPrefix = "CONTRACT_TESTS"

// DefaultTimeout is the HTTP client timeout when none is configured.
const DefaultTimeout = 30 * time.Second

// Settings are the adjustable inputs that Load resolves into a Configuration. A zero field
// means "not set" at every layer.
//
// Environment variable names are derived from the field names, and only the prefixed form is
// read: CONTRACT_TESTS_BASE_URI, never BASE_URI.
type Settings struct {
	BaseURI   string        `yaml:"baseUri" split_words:"true"`
	Timeout   time.Duration `yaml:"timeout" split_words:"true"`
	SchemaDir string        `yaml:"schemaDir" split_words:"true"`
	TokenEnv  string        `yaml:"tokenEnv" split_words:"true"`
	TokenFile string        `yaml:"tokenFile" split_words:"true"`
}

// DefaultSettings returns the settings used when nothing else is configured.
func DefaultSettings() Settings {
	return Settings{
		BaseURI:  servicedef.DefaultBaseURI,
		Timeout:  DefaultTimeout,
		TokenEnv: credentials.DefaultTokenEnvVar,
	}
}

// merge overwrites fields of s with the non-zero fields of other.
func (s *Settings) merge(other Settings) {
	if other.BaseURI != "" {
		s.BaseURI = other.BaseURI
	}
	if other.Timeout != 0 {
		s.Timeout = other.Timeout
	}
	if other.SchemaDir != "" {
		s.SchemaDir = other.SchemaDir
	}
	if other.TokenEnv != "" {
		s.TokenEnv = other.TokenEnv
	}
	if other.TokenFile != "" {
		s.TokenFile = other.TokenFile
	}
}

func (s Settings) credentialSource() credentials.Source {
	var chain credentials.Chain
	if s.TokenFile != "" {
		chain = append(chain, credentials.FileSource{Path: s.TokenFile})
	}
	return append(chain, credentials.EnvSource{Var: s.TokenEnv})
}

// Configuration is the immutable configuration shared by all scenarios.
type Configuration struct {
	baseURI        string
	bearerToken    string
	tokenReference string
	timeout        time.Duration
	schemaDir      string
}

// New creates a Configuration directly from settings and a token, without consulting files,
// the environment or any credential source. The token is assumed to be the one in the
// settings' token environment variable when a shell command needs to refer to it.
func New(s Settings, token string) Configuration {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return Configuration{
		baseURI:        strings.TrimRight(s.BaseURI, "/"),
		bearerToken:    token,
		tokenReference: credentials.EnvSource{Var: s.TokenEnv}.ShellReference(),
		timeout:        timeout,
		schemaDir:      s.SchemaDir,
	}
}

// BaseURI is the root of the API, without a trailing slash.
func (c Configuration) BaseURI() string { return c.baseURI }

// BearerToken is the token sent in the Authorization header.
func (c Configuration) BearerToken() string { return c.bearerToken }

// TokenReference is how a shell command can refer to the bearer token without containing it,
// such as "$GOREST_TOKEN".
func (c Configuration) TokenReference() string { return c.tokenReference }

// Timeout is the per-request HTTP client timeout.
func (c Configuration) Timeout() time.Duration { return c.timeout }

// SchemaDir is a directory of schema documents overriding the embedded ones, or "".
func (c Configuration) SchemaDir() string { return c.schemaDir }

// MarshalZerologObject logs the configuration with the token masked.
func (c Configuration) MarshalZerologObject(e *zerolog.Event) {
	e.Str("base_uri", c.baseURI).
		Str("token", credentials.Mask(c.bearerToken)).
		Dur("timeout", c.timeout)
	if c.schemaDir != "" {
		e.Str("schema_dir", c.schemaDir)
	}
}

// LoadOptions controls Load.
type LoadOptions struct {
	// ConfigFile is an optional YAML file of Settings.
	ConfigFile string
	// Overrides win over every other layer; typically set from command-line flags.
	Overrides Settings
	// Credentials replaces the token source derived from the settings.
	Credentials credentials.Source
}

// Load builds the Configuration from defaults, then the YAML file, then CONTRACT_TESTS_*
// environment variables, then the overrides. It fails with a *credentials.MissingCredentialError
// if no token can be found.
func Load(opts LoadOptions) (Configuration, error) {
	s := DefaultSettings()

	if opts.ConfigFile != "" {
		data, err := os.ReadFile(opts.ConfigFile)
		if err != nil {
			return Configuration{}, errors.Wrapf(err, "reading config %s", opts.ConfigFile)
		}
		var fileSettings Settings
		if err := yaml.Unmarshal(data, &fileSettings); err != nil {
			return Configuration{}, errors.Wrapf(err, "parsing config %s", opts.ConfigFile)
		}
		s.merge(fileSettings)
	}

	var envSettings Settings
	if err := envconfig.Process(EnvPrefix, &envSettings); err != nil {
		return Configuration{}, errors.Wrap(err, "failed to process environment variables")
	}
	s.merge(envSettings)
	s.merge(opts.Overrides)

	if err := validateBaseURI(s.BaseURI); err != nil {
		return Configuration{}, err
	}

	source := opts.Credentials
	if source == nil {
		source = s.credentialSource()
	}
	token, reference, err := credentials.Lookup(source)
	if err != nil {
		return Configuration{}, err
	}

	c := New(s, token)
	c.tokenReference = reference
	return c, nil
}

func validateBaseURI(baseURI string) error {
	u, err := url.Parse(baseURI)
	if err != nil {
		return errors.Wrapf(err, "invalid base URI %q", baseURI)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.Errorf("invalid base URI %q: scheme must be http or https", baseURI)
	}
	if u.Host == "" {
		return errors.Errorf("invalid base URI %q: missing host", baseURI)
	}
	return nil
}

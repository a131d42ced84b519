package usertests

import (
	"io/fs"
	"os"

	"github.com/rs/zerolog"

	"github.com/launchdarkly/rest-contract-tests/client"
	"github.com/launchdarkly/rest-contract-tests/config"
	"github.com/launchdarkly/rest-contract-tests/schemas"
	"github.com/launchdarkly/rest-contract-tests/userdata"
	"github.com/launchdarkly/rest-contract-tests/validate"
)

// Environment is what scenarios share: the configuration, and stateless helpers built from it.
type Environment struct {
	Config    config.Configuration
	Client    *client.Client
	Validator *validate.Validator
	Generator *userdata.Generator
}

// NewEnvironment creates the shared environment. Schemas come from the configured schema
// directory if there is one, or else from the documents embedded in the binary.
func NewEnvironment(cfg config.Configuration, seed int64, logger zerolog.Logger) *Environment {
	var schemaFS fs.FS = schemas.FS()
	if cfg.SchemaDir() != "" {
		schemaFS = os.DirFS(cfg.SchemaDir())
	}
	return &Environment{
		Config:    cfg,
		Client:    client.New(cfg.Timeout(), logger),
		Validator: validate.NewValidator(validate.NewSchemaSet(schemaFS)),
		Generator: userdata.NewGenerator(seed),
	}
}

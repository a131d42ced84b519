// Package credentials supplies the bearer token used to authenticate requests to the service.
//
// A token is never invented: if no source has one, Token returns a *MissingCredentialError and
// the test run must stop before any scenario executes.
package credentials

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alessio/shellescape"
)

// DefaultTokenEnvVar is the environment variable read when no other source is configured.
const DefaultTokenEnvVar = "GOREST_TOKEN"

// PlaceholderReference stands for the token in shell commands when its source cannot be
// referred to from a shell.
const PlaceholderReference = "$TOKEN"

// Source is anything that can produce a bearer token.
type Source interface {
	Token() (string, error)
	String() string
}

// MissingCredentialError means that a source had no token to give.
type MissingCredentialError struct {
	Source string
	Err    error
}

func (e *MissingCredentialError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("no API token available from %s: %s", e.Source, e.Err)
	}
	return fmt.Sprintf("no API token available from %s", e.Source)
}

func (e *MissingCredentialError) Unwrap() error {
	return e.Err
}

// IsMissing returns true if err is, or wraps, a *MissingCredentialError.
func IsMissing(err error) bool {
	var m *MissingCredentialError
	return errors.As(err, &m)
}

// EnvSource reads the token from an environment variable.
type EnvSource struct {
	Var string
}

func (s EnvSource) Token() (string, error) {
	name := s.Var
	if name == "" {
		name = DefaultTokenEnvVar
	}
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return "", &MissingCredentialError{Source: s.String()}
	}
	return value, nil
}

func (s EnvSource) String() string {
	return "environment variable " + s.name()
}

// ShellReference is the shell expansion of the variable, e.g. "$GOREST_TOKEN".
func (s EnvSource) ShellReference() string {
	return "$" + s.name()
}

func (s EnvSource) name() string {
	if s.Var == "" {
		return DefaultTokenEnvVar
	}
	return s.Var
}

// FileSource reads the token from a file, such as a mounted secret. Surrounding whitespace
// is ignored.
type FileSource struct {
	Path string
}

func (s FileSource) Token() (string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return "", &MissingCredentialError{Source: s.String(), Err: err}
	}
	value := strings.TrimSpace(string(data))
	if value == "" {
		return "", &MissingCredentialError{Source: s.String(), Err: errors.New("file is empty")}
	}
	return value, nil
}

func (s FileSource) String() string {
	return "file " + s.Path
}

// ShellReference is a command substitution that reads the file.
func (s FileSource) ShellReference() string {
	return "$(cat " + shellescape.Quote(s.Path) + ")"
}

// StaticSource is a token that was supplied directly.
type StaticSource string

func (s StaticSource) Token() (string, error) {
	if strings.TrimSpace(string(s)) == "" {
		return "", &MissingCredentialError{Source: s.String()}
	}
	return string(s), nil
}

func (s StaticSource) String() string {
	return "static configuration"
}

// Chain tries each source in order and returns the first token found. Errors other than a
// missing credential are returned immediately.
type Chain []Source

func (c Chain) Token() (string, error) {
	token, _, err := c.resolve()
	return token, err
}

func (c Chain) resolve() (string, Source, error) {
	for _, s := range c {
		token, err := s.Token()
		if err == nil {
			return token, s, nil
		}
		if !IsMissing(err) {
			return "", nil, err
		}
	}
	return "", nil, &MissingCredentialError{Source: c.String()}
}

func (c Chain) String() string {
	if len(c) == 0 {
		return "no configured source"
	}
	names := make([]string, 0, len(c))
	for _, s := range c {
		names = append(names, s.String())
	}
	return strings.Join(names, " or ")
}

// Lookup gets the token from s, along with a way for a shell command to refer to the same
// token without containing it. For a Chain, the reference is to whichever source supplied the
// token. Sources that cannot be referred to give PlaceholderReference.
func Lookup(s Source) (token, reference string, err error) {
	from := s
	if chain, ok := s.(Chain); ok {
		token, from, err = chain.resolve()
	} else {
		token, err = s.Token()
	}
	if err != nil {
		return "", "", err
	}
	return token, ShellReference(from), nil
}

// ShellReference returns how a shell command can refer to the token from s.
func ShellReference(s Source) string {
	if r, ok := s.(interface{ ShellReference() string }); ok {
		return r.ShellReference()
	}
	return PlaceholderReference
}

// Mask renders a token for logs, keeping at most its last four characters.
func Mask(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return "****" + token[len(token)-4:]
}

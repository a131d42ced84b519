package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/alessio/shellescape"

	"github.com/launchdarkly/rest-contract-tests/config"
	"github.com/launchdarkly/rest-contract-tests/credentials"
	"github.com/launchdarkly/rest-contract-tests/servicedef"
)

// Request is a fully built HTTP request that has not been sent yet.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
	// TokenReference replaces the bearer token in CurlCommand, e.g. "$GOREST_TOKEN".
	TokenReference string
}

// SerializationError means that a request body could not be converted to JSON.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("could not serialize request body as JSON: %s", e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// BuildCreateUserRequest builds a POST to the users collection carrying the payload as JSON.
func BuildCreateUserRequest(cfg config.Configuration, payload json.Marshaler) (*Request, error) {
	return BuildJSONRequest(cfg, http.MethodPost, servicedef.UsersPath, payload)
}

// BuildJSONRequest builds an authenticated request to a path under the base URI. If body is
// nil, the request has no body.
func BuildJSONRequest(cfg config.Configuration, method, path string, body interface{}) (*Request, error) {
	req := &Request{
		Method:         method,
		URL:            cfg.BaseURI() + "/" + strings.TrimPrefix(path, "/"),
		Header:         make(http.Header),
		TokenReference: cfg.TokenReference(),
	}
	req.Header.Set("Authorization", "Bearer "+cfg.BearerToken())
	req.Header.Set("Accept", "application/json")
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &SerializationError{Err: err}
		}
		req.Header.Set("Content-Type", "application/json")
		req.Body = data
	}
	return req, nil
}

// RedactedHeader returns a copy of the headers with the credential masked.
func (r *Request) RedactedHeader() http.Header {
	h := r.Header.Clone()
	if auth := h.Get("Authorization"); auth != "" {
		scheme, token, found := strings.Cut(auth, " ")
		if found {
			h.Set("Authorization", scheme+" "+credentials.Mask(token))
		} else {
			h.Set("Authorization", credentials.Mask(auth))
		}
	}
	return h
}

// Describe renders the request for diagnostic output, with the credential masked.
func (r *Request) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", r.Method, r.URL)
	h := r.RedactedHeader()
	for _, name := range sortedKeys(h) {
		for _, value := range h[name] {
			fmt.Fprintf(&b, "%s: %s\n", name, value)
		}
	}
	if len(r.Body) > 0 {
		b.WriteString("\n")
		b.Write(r.Body)
		b.WriteString("\n")
	}
	return b.String()
}

// CurlCommand renders a shell command that repeats the request. The credential is replaced by
// TokenReference, or by a $TOKEN placeholder if that is not set.
func (r *Request) CurlCommand() string {
	var cmd commandBuilder
	cmd.add("curl", "-i", "-X", r.Method)
	for _, name := range sortedKeys(r.Header) {
		for _, value := range r.Header[name] {
			if name == "Authorization" {
				cmd.addRaw("-H", `"Authorization: Bearer `+r.tokenReference()+`"`)
				continue
			}
			cmd.add("-H", name+": "+value)
		}
	}
	if len(r.Body) > 0 {
		cmd.add("--data", string(r.Body))
	}
	cmd.add(r.URL)
	return cmd.String()
}

func (r *Request) tokenReference() string {
	if r.TokenReference == "" {
		return credentials.PlaceholderReference
	}
	return r.TokenReference
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b *commandBuilder) addRaw(args ...string) {
	*b = append(*b, args...)
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

func sortedKeys(h http.Header) []string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

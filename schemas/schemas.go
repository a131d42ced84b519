// Package schemas holds the JSON Schema documents that describe the service's responses.
package schemas

import (
	"embed"
	"io/fs"
)

// Names of the embedded schema documents.
const (
	User        = "user-schema.json"
	FieldErrors = "field-errors-schema.json"
)

//go:embed *.json
var files embed.FS

// FS returns the embedded schema documents.
func FS() fs.FS {
	return files
}

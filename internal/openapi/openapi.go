package openapi

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

// ContentType is the media type of the served document.
const ContentType = "application/vnd.oai.openapi+json"

// embedded is the document shipped with the binary.
//
//go:embed openapi.json
var embedded []byte

// Embedded returns the bundled OpenAPI document.
func Embedded() []byte {
	return embedded
}

// Load returns the document at path, or the embedded one when path is empty.
// The file is read once; it must be valid JSON.
func Load(path string) ([]byte, error) {
	if path == "" {
		return embedded, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read openapi document: %w", err)
	}
	if !json.Valid(b) {
		return nil, fmt.Errorf("openapi document %s is not valid JSON", path)
	}
	return b, nil
}

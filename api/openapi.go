// Package api holds the discoverer's OpenAPI document and the wire types shared by the registry server
// (handlers.RegistryServer) and its client (adapters.RegistryHTTP).
package api

import (
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed discoverer.openapi.yaml
var discovererSpec []byte

// LoadSwagger parses and validates the embedded OpenAPI document.
//
// Called from handlers.NewOpenAPIValidator.
func LoadSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(discovererSpec)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return doc, nil
}

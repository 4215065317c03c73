// Package api carries the OpenAPI description of the HTTP interface. The
// same document validates incoming requests and feeds the Swagger UI.
package api

import (
	_ "embed"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.json
var document []byte

// Document returns the raw OpenAPI document.
func Document() []byte {
	return document
}

// Load parses and validates the document.
func Load() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(document)
	if err != nil {
		return nil, err
	}
	if err = doc.Validate(loader.Context); err != nil {
		return nil, err
	}
	return doc, nil
}

type swaggerDoc struct{}

// ReadDoc serves the embedded document to the Swagger UI.
func (swaggerDoc) ReadDoc() string {
	return string(document)
}

var registerOnce sync.Once

// RegisterSwagger makes the document available to swag readers such as
// echo-swagger under the default instance name. Safe to call repeatedly.
func RegisterSwagger() {
	registerOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc{})
	})
}

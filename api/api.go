// Package api holds the OpenAPI contract of the warehouse HTTP transport.
package api

import _ "embed"

//go:embed openapi.yaml
var OpenAPI []byte

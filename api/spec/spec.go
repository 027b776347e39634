// Package spec embeds the OpenAPI description of the portal API.
package spec

import _ "embed"

//go:embed openapi.yaml
var OpenAPI []byte

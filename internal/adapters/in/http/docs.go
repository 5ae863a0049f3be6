package http

import (
	"sync"

	"github.com/swaggo/swag"
)

var registerDocOnce sync.Once

// apiDoc serves the OpenAPI document to the Swagger UI.
type apiDoc struct {
	json string
}

func (d apiDoc) ReadDoc() string {
	return d.json
}

// registerSwaggerDoc exposes the document under swag's default name, which is
// where echo-swagger looks it up. Only the first call registers.
func registerSwaggerDoc(specJSON []byte) {
	registerDocOnce.Do(func() {
		swag.Register(swag.Name, apiDoc{json: string(specJSON)})
	})
}

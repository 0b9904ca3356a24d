package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

// documentedPrefix is the API prefix the embedded OpenAPI document is written against.
const documentedPrefix = "/v1"

// RegisterDocsRoutes registers documentation routes on the given mux. The
// served document lists the account paths under apiPrefix.
//
// GET /            → Redirect to /docs
//
// GET /docs         → Swagger UI
//
// GET /docs/openapi → OpenAPI spec (JSON)
func RegisterDocsRoutes(mux *http.ServeMux, apiPrefix string) {
	mux.HandleFunc("GET /{$}", handleRootRedirect)
	mux.HandleFunc("GET /docs", handleSwaggerUI)
	mux.HandleFunc("GET /docs/openapi", openAPISpecHandler(apiPrefix))
}

func handleRootRedirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/docs", http.StatusMovedPermanently)
}

func openAPISpecHandler(apiPrefix string) http.HandlerFunc {
	encoded := sync.OnceValues(func() ([]byte, error) {
		spec, err := GetSwagger()
		if err != nil {
			return nil, err
		}
		return json.Marshal(withPrefix(spec, apiPrefix))
	})

	return func(w http.ResponseWriter, _ *http.Request) {
		body, err := encoded()
		if err != nil {
			http.Error(w, "Failed to load OpenAPI spec", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body) //nolint:errcheck // Nothing useful to do if write fails
	}
}

// withPrefix returns a shallow copy of spec whose versioned paths are moved
// under apiPrefix. The shared document is left untouched.
func withPrefix(spec *openapi3.T, apiPrefix string) *openapi3.T {
	if apiPrefix == documentedPrefix {
		return spec
	}

	clone := *spec
	clone.Paths = openapi3.NewPaths()
	for path, item := range spec.Paths.Map() {
		clone.Paths.Set(rewritePath(path, apiPrefix), item)
	}
	return &clone
}

// PrefixedMux wraps mux so that routes registered by HandlerWithOptions land
// under apiPrefix instead of the documented /v1. Unversioned routes such as
// /health are registered as is.
func PrefixedMux(mux *http.ServeMux, apiPrefix string) ServeMux {
	return prefixedMux{ServeMux: mux, prefix: apiPrefix}
}

type prefixedMux struct {
	*http.ServeMux
	prefix string
}

func (m prefixedMux) HandleFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	if method, path, ok := strings.Cut(pattern, " "); ok {
		pattern = method + " " + rewritePath(path, m.prefix)
	} else {
		pattern = rewritePath(pattern, m.prefix)
	}
	m.ServeMux.HandleFunc(pattern, handler)
}

func rewritePath(path, apiPrefix string) string {
	if rest, ok := strings.CutPrefix(path, documentedPrefix+"/"); ok {
		return apiPrefix + "/" + rest
	}
	return path
}

func handleSwaggerUI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(swaggerUIHTML)) //nolint:errcheck // Nothing useful to do if write fails
}

const swaggerUIHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Account API - Swagger UI</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
  <style>body { margin: 0; padding: 0; }</style>
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-standalone-preset.js"></script>
  <script>
    window.onload = () => {
      SwaggerUIBundle({
        url: '/docs/openapi',
        dom_id: '#swagger-ui',
        presets: [SwaggerUIBundle.presets.apis, SwaggerUIStandalonePreset],
        layout: 'StandaloneLayout'
      });
    };
  </script>
</body>
</html>`

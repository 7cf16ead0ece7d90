package endpoint

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"gopkg.in/yaml.v3"
)

// ServeSpec returns a handler that serves the built document as JSON.
func (c *Catalog) ServeSpec(init func() Document) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, c.Build(init))
	})
}

// ServeSpecYAML returns a handler that serves the built document as YAML.
func (c *Catalog) ServeSpecYAML(init func() Document) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := c.WriteSpecYAML(&buf, init); err != nil {
			writeErrorResponse(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		//nolint:errcheck,gosec // best-effort after WriteHeader
		buf.WriteTo(w)
	})
}

// WriteSpec writes the built document as indented JSON to w.
func (c *Catalog) WriteSpec(w io.Writer, init func() Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(c.Build(init))
}

// WriteSpecYAML writes the built document as YAML to w. The document is
// encoded through JSON first so the JSON field names and the schemas'
// own marshalers decide the output.
func (c *Catalog) WriteSpecYAML(w io.Writer, init func() Document) error {
	data, err := json.Marshal(c.Build(init))
	if err != nil {
		return fmt.Errorf("encode openapi document: %w", err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return fmt.Errorf("convert openapi document: %w", err)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return fmt.Errorf("write openapi document: %w", err)
	}
	return enc.Close()
}

package endpoint_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bjaus/endpoint"
)

func specCatalog(t *testing.T) *endpoint.Catalog {
	t.Helper()

	c := quietCatalog()
	_, err := endpoint.Get(c, "/todos/:id", getTodo, endpoint.WithTags("todos"))
	require.NoError(t, err)
	_, err = endpoint.Post(c, "/todos", createTodo)
	require.NoError(t, err)
	return c
}

func TestServeSpec(t *testing.T) {
	t.Parallel()

	c := specCatalog(t)
	rec := httptest.NewRecorder()
	c.ServeSpec(info("Todos")).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var spec map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &spec))
	assert.Equal(t, endpoint.OpenAPIVersion, spec["openapi"])

	paths, ok := spec["paths"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, paths, "/todos/{id}")
	assert.Contains(t, paths, "/todos")
}

func TestServeSpec_same_document_every_request(t *testing.T) {
	t.Parallel()

	c := specCatalog(t)
	h := c.ServeSpec(info("Todos"))

	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))

	_, err := endpoint.Delete(c, "/todos/:id", getTodo)
	require.NoError(t, err)

	second := httptest.NewRecorder()
	h.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))

	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestServeSpecYAML(t *testing.T) {
	t.Parallel()

	c := specCatalog(t)
	rec := httptest.NewRecorder()
	c.ServeSpecYAML(info("YAML Test")).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal(body, &parsed))
	assert.Equal(t, endpoint.OpenAPIVersion, parsed["openapi"])

	meta, ok := parsed["info"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "YAML Test", meta["title"])
}

func TestWriteSpec(t *testing.T) {
	t.Parallel()

	c := specCatalog(t)

	var buf bytes.Buffer
	require.NoError(t, c.WriteSpec(&buf, info("Write Test")))
	assert.Contains(t, buf.String(), "\n  \"info\"", "output is indented")

	var doc endpoint.Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "Write Test", doc.Info.Title)
	assert.Equal(t, "1.0.0", doc.Info.Version)
	require.Contains(t, doc.Paths, "/todos/{id}")
	assert.Equal(t, []string{"todos"}, doc.Paths["/todos/{id}"]["get"].Tags)
	assert.Equal(t, "getTodo", doc.Paths["/todos/{id}"]["get"].OperationID)
}

func TestWriteSpecYAML(t *testing.T) {
	t.Parallel()

	c := specCatalog(t)

	var buf bytes.Buffer
	require.NoError(t, c.WriteSpecYAML(&buf, info("YAML Write")))

	var spec map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &spec))
	assert.Equal(t, endpoint.OpenAPIVersion, spec["openapi"])

	paths, ok := spec["paths"].(map[string]any)
	require.True(t, ok)
	item, ok := paths["/todos"].(map[string]any)
	require.True(t, ok)
	post, ok := item["post"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "createTodo", post["operationId"])
	assert.Contains(t, post, "requestBody")
}

func TestWriteSpecYAML_matches_json(t *testing.T) {
	t.Parallel()

	c := specCatalog(t)

	var jsonBuf, yamlBuf bytes.Buffer
	require.NoError(t, c.WriteSpec(&jsonBuf, info("Todos")))
	require.NoError(t, c.WriteSpecYAML(&yamlBuf, info("Todos")))

	var fromJSON, fromYAML map[string]any
	require.NoError(t, json.Unmarshal(jsonBuf.Bytes(), &fromJSON))
	require.NoError(t, yaml.Unmarshal(yamlBuf.Bytes(), &fromYAML))

	again, err := json.Marshal(fromYAML)
	require.NoError(t, err)
	want, err := json.Marshal(fromJSON)
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(again))
}

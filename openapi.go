package endpoint

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/invopop/jsonschema"
)

// OpenAPIVersion is used when the document initializer leaves it empty.
const OpenAPIVersion = "3.1.0"

// Document is the top-level OpenAPI 3.1 document.
type Document struct {
	OpenAPI string   `json:"openapi"`
	Info    Info     `json:"info"`
	Servers []Server `json:"servers,omitempty"`
	Paths   Paths    `json:"paths"`
}

// Info holds API metadata.
type Info struct {
	Title       string `json:"title"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
}

// Server is an OpenAPI server entry.
type Server struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// Paths maps canonical paths to their operations.
type Paths map[string]PathItem

// PathItem maps lower-case HTTP methods to operations.
type PathItem map[string]Operation

// Operation describes a single API operation on a path.
type Operation struct {
	Summary     string       `json:"summary,omitempty"`
	Description string       `json:"description,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
	OperationID string       `json:"operationId,omitempty"`
	Parameters  []Parameter  `json:"parameters,omitempty"`
	RequestBody *RequestBody `json:"requestBody,omitempty"`
	Responses   Responses    `json:"responses"`
	Deprecated  bool         `json:"deprecated,omitempty"`
}

// Parameter describes a single operation parameter.
type Parameter struct {
	Name        string             `json:"name"`
	In          string             `json:"in"`
	Description string             `json:"description,omitempty"`
	Required    bool               `json:"required,omitempty"`
	Schema      *jsonschema.Schema `json:"schema,omitempty"`
}

// RequestBody describes the request body.
type RequestBody struct {
	Required bool                 `json:"required"`
	Content  map[string]MediaType `json:"content"`
}

// MediaType is a media type object with an optional schema.
type MediaType struct {
	Schema *jsonschema.Schema `json:"schema,omitempty"`
}

// Responses maps HTTP status codes to response objects.
type Responses map[string]Response

// Response describes a single response.
type Response struct {
	Description string               `json:"description"`
	Content     map[string]MediaType `json:"content,omitempty"`
}

const contentTypeJSON = "application/json"

// successStatus is the status every documented response is recorded under.
var successStatus = strconv.Itoa(http.StatusOK)

// merge folds one entry into the path map. A later entry for the same
// method replaces the earlier one.
func (p Paths) merge(e Entry) {
	item, ok := p[e.Path]
	if !ok {
		item = make(PathItem)
		p[e.Path] = item
	}
	item[strings.ToLower(e.Method)] = e.Operation
}

// operation resolves every schema a descriptor refers to. It runs with no
// catalog lock held because resolvers may consult their own registries.
func (c *Catalog) operation(d Descriptor) (Operation, error) {
	op := Operation{
		Summary:     d.Summary,
		Description: d.Description,
		Tags:        d.Tags,
		OperationID: d.OperationID,
		Deprecated:  d.Deprecated,
		Responses:   make(Responses),
	}

	if d.Query != nil {
		params, err := c.params.Params(*d.Query)
		if err != nil {
			return Operation{}, err
		}
		op.Parameters = append(op.Parameters, params...)
	}

	for _, pp := range d.PathParams {
		schema, err := c.schemas.Schema(pp.Type)
		if err != nil {
			return Operation{}, err
		}
		op.Parameters = append(op.Parameters, Parameter{
			Name:     pp.Name,
			In:       "path",
			Required: true,
			Schema:   schema,
		})
	}

	if d.Body != nil {
		schema, err := c.schemas.Schema(*d.Body)
		if err != nil {
			return Operation{}, err
		}
		op.RequestBody = &RequestBody{
			Required: true,
			Content:  map[string]MediaType{contentTypeJSON: {Schema: schema}},
		}
	}

	if d.Response == nil {
		op.Responses[successStatus] = Response{Description: "Successful response"}
		return op, nil
	}

	schema, err := c.schemas.Schema(*d.Response)
	if err != nil {
		return Operation{}, err
	}
	op.Responses[successStatus] = Response{
		Description: "Successful response",
		Content:     map[string]MediaType{contentTypeJSON: {Schema: schema}},
	}
	return op, nil
}

package endpoint

import "net/http"

// OperationInfo provides OpenAPI metadata for raw handlers whose types say
// nothing about the operation.
type OperationInfo struct {
	Summary     string
	Description string
	Tags        []string
	OperationID string
	Deprecated  bool
}

// Raw registers an http.Handler with manual metadata. Its response is
// documented as opaque and it has no documented parameters.
func Raw(reg Registrar, method, template string, h http.Handler, info OperationInfo) (Route, error) {
	ri := routeInfo{
		method:      method,
		template:    template,
		sig:         Signature{Result: &TypeRef{Expr: "http.Handler"}, Handler: h},
		summary:     info.Summary,
		desc:        info.Description,
		tags:        info.Tags,
		operationID: info.OperationID,
		deprecated:  info.Deprecated,
	}
	return reg.addRoute(ri)
}

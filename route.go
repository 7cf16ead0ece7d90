package endpoint

// routeInfo holds the registration-time metadata of one route before it is
// classified.
type routeInfo struct {
	method   string
	template string
	sig      Signature

	summary     string
	desc        string
	tags        []string
	deprecated  bool
	operationID string

	middleware []Middleware
}

// RouteOption configures a route at registration time.
type RouteOption func(*routeInfo)

// WithSummary sets the OpenAPI summary for the route.
func WithSummary(s string) RouteOption {
	return func(ri *routeInfo) {
		ri.summary = s
	}
}

// WithDescription sets the OpenAPI description for the route.
func WithDescription(d string) RouteOption {
	return func(ri *routeInfo) {
		ri.desc = d
	}
}

// WithTags adds OpenAPI tags to the route.
func WithTags(tags ...string) RouteOption {
	return func(ri *routeInfo) {
		ri.tags = append(ri.tags, tags...)
	}
}

// WithDeprecated marks the route as deprecated in the OpenAPI document.
func WithDeprecated() RouteOption {
	return func(ri *routeInfo) {
		ri.deprecated = true
	}
}

// WithOperationID sets the operationId instead of deriving one from the
// handler name.
func WithOperationID(id string) RouteOption {
	return func(ri *routeInfo) {
		ri.operationID = id
	}
}

// WithRouteMiddleware wraps the mounted handler of this route only.
func WithRouteMiddleware(mw ...Middleware) RouteOption {
	return func(ri *routeInfo) {
		ri.middleware = append(ri.middleware, mw...)
	}
}

// Route is the binding produced by a successful registration. Mount turns a
// set of routes into live handlers.
type Route struct {
	Method      string
	Path        string // canonical, with {name} placeholders
	Template    string // as registered
	OperationID string

	// Handler is the registered function or http.Handler.
	Handler any

	// State is the shared state type the handler requires, if any.
	State *TypeRef

	middleware []Middleware
}

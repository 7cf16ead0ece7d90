package endpoint

import (
	"log/slog"
	"net/http"
)

// Registrar is the interface accepted by the registration functions.
// Both *Catalog and *Group implement it.
type Registrar interface {
	addRoute(ri routeInfo) (Route, error)
}

// Register documents h under method and template and returns its route
// binding. h must be a function; its parameter and result types are the
// source of the operation's documentation:
//
//	func getTodo(ctx context.Context, id endpoint.Path[int], s endpoint.State[*Store]) (endpoint.JSON[Todo], error)
//
// On failure nothing is added to the catalog and the error is a
// *RegistrationError.
func Register(reg Registrar, method, template string, h any, opts ...RouteOption) (Route, error) {
	sig, err := SignatureOf(h)
	if err != nil {
		return Route{}, &RegistrationError{Method: method, Template: template, Err: err}
	}
	return RegisterSignature(reg, method, template, sig, opts...)
}

// RegisterSignature documents an explicitly declared signature. It is the
// entry point for handlers whose types are known only by expression.
func RegisterSignature(reg Registrar, method, template string, sig Signature, opts ...RouteOption) (Route, error) {
	ri := routeInfo{
		method:   method,
		template: template,
		sig:      sig,
	}
	for _, opt := range opts {
		opt(&ri)
	}
	return reg.addRoute(ri)
}

// Get registers a GET handler.
func Get(reg Registrar, template string, h any, opts ...RouteOption) (Route, error) {
	return Register(reg, http.MethodGet, template, h, opts...)
}

// Post registers a POST handler.
func Post(reg Registrar, template string, h any, opts ...RouteOption) (Route, error) {
	return Register(reg, http.MethodPost, template, h, opts...)
}

// Put registers a PUT handler.
func Put(reg Registrar, template string, h any, opts ...RouteOption) (Route, error) {
	return Register(reg, http.MethodPut, template, h, opts...)
}

// Patch registers a PATCH handler.
func Patch(reg Registrar, template string, h any, opts ...RouteOption) (Route, error) {
	return Register(reg, http.MethodPatch, template, h, opts...)
}

// Delete registers a DELETE handler.
func Delete(reg Registrar, template string, h any, opts ...RouteOption) (Route, error) {
	return Register(reg, http.MethodDelete, template, h, opts...)
}

// Head registers a HEAD handler.
func Head(reg Registrar, template string, h any, opts ...RouteOption) (Route, error) {
	return Register(reg, http.MethodHead, template, h, opts...)
}

// Options registers an OPTIONS handler.
func Options(reg Registrar, template string, h any, opts ...RouteOption) (Route, error) {
	return Register(reg, http.MethodOptions, template, h, opts...)
}

// Connect registers a CONNECT handler.
func Connect(reg Registrar, template string, h any, opts ...RouteOption) (Route, error) {
	return Register(reg, http.MethodConnect, template, h, opts...)
}

// addRoute classifies ri, builds its operation and appends one entry.
// Schemas are resolved before the registry lock is taken.
func (c *Catalog) addRoute(ri routeInfo) (Route, error) {
	fail := func(err error) (Route, error) {
		return Route{}, &RegistrationError{Method: ri.method, Template: ri.template, Err: err}
	}

	method, err := normalizeMethod(ri.method)
	if err != nil {
		return fail(err)
	}

	args := make([]Argument, 0, len(ri.sig.Params))
	for i, p := range ri.sig.Params {
		arg, ok, err := c.classifier.Classify(p)
		if err != nil {
			return fail(&ParamError{Index: i, Expr: p.Expr, Err: err})
		}
		if !ok {
			msg := "parameter left undocumented"
			if c.classifier.MissingTypeArgument(p) {
				msg = "marker type argument is not a named type; parameter left undocumented"
			}
			c.logger.Debug(msg,
				slog.String("method", method),
				slog.String("template", ri.template),
				slog.String("type", p.Expr),
			)
			continue
		}
		args = append(args, arg)
	}

	resp, err := c.classifier.ClassifyResult(ri.sig.Result)
	if err != nil {
		return fail(err)
	}
	if resp == nil && ri.sig.Result != nil && c.classifier.MissingTypeArgument(*ri.sig.Result) {
		c.logger.Debug("marker type argument is not a named type; response schema omitted",
			slog.String("method", method),
			slog.String("template", ri.template),
			slog.String("type", ri.sig.Result.Expr),
		)
	}

	path := TransformRoute(ri.template)

	opID := ri.operationID
	if opID == "" {
		opID = funcOperationID(ri.sig.Name)
	}
	if opID == "" {
		opID = generateOperationID(method, path)
	}

	d, err := BuildDescriptor(DescriptorInput{
		Method:          method,
		Path:            path,
		OperationID:     opID,
		Summary:         ri.summary,
		Description:     ri.desc,
		Tags:            ri.tags,
		Deprecated:      ri.deprecated,
		Placeholders:    ExtractPlaceholders(path),
		Args:            args,
		Response:        resp,
		CheckPathParams: c.checkPathParams,
	})
	if err != nil {
		return fail(err)
	}

	op, err := c.operation(d)
	if err != nil {
		return fail(err)
	}

	c.registry.Register(Entry{Path: path, Method: method, Operation: op})

	c.logger.Debug("route registered",
		slog.String("method", method),
		slog.String("path", path),
		slog.String("operation_id", opID),
	)

	return Route{
		Method:      method,
		Path:        path,
		Template:    ri.template,
		OperationID: opID,
		Handler:     ri.sig.Handler,
		State:       d.State,
		middleware:  ri.middleware,
	}, nil
}

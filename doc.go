// Package endpoint derives OpenAPI 3.1 documentation from the declared types
// of HTTP handler functions. Handler parameter and result types are the
// source of truth: one registration call produces both the route binding
// used for dispatch and the operation's entry in a documentation catalog.
//
// Parameters are wrapped in marker generics that say what they are:
//
//	func updateTodo(
//	    ctx context.Context,
//	    id endpoint.Path[int],
//	    in endpoint.JSON[TodoPatch],
//	    store endpoint.State[*Store],
//	) (endpoint.JSON[Todo], error)
//
// JSON is the request body, Query the query parameters, Path one path
// parameter (matched to placeholders by position), and State shared
// application state that is never documented. A JSON result is the
// documented response; any other result is opaque.
//
// Routes are registered on a Catalog:
//
//	c := endpoint.New()
//	rt, err := endpoint.Patch(c, "/todos/:id", updateTodo, endpoint.WithTags("todos"))
//
// Templates may use either :name or {name} placeholders; the document always
// uses {name}. Catalog.Build folds every registered operation into a single
// cached Document until Catalog.Reset:
//
//	doc := c.Build(func() endpoint.Document {
//	    return endpoint.Document{Info: endpoint.Info{Title: "Todos", Version: "1.0.0"}}
//	})
//
// Mount installs the returned routes on a chi router and binds each marker
// from the request.
package endpoint

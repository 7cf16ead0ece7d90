package endpoint

// Group registers routes under a shared prefix with shared tags and
// middleware.
type Group struct {
	parent     Registrar
	prefix     string
	middleware []Middleware
	tags       []string
}

// GroupOption configures a Group.
type GroupOption func(*Group)

// WithGroupTags adds default tags to all routes registered on the group.
func WithGroupTags(tags ...string) GroupOption {
	return func(g *Group) {
		g.tags = append(g.tags, tags...)
	}
}

// WithGroupMiddleware adds middleware applied to every mounted route of the
// group.
func WithGroupMiddleware(mw ...Middleware) GroupOption {
	return func(g *Group) {
		g.middleware = append(g.middleware, mw...)
	}
}

// Group creates a route group with the given prefix and options.
func (c *Catalog) Group(prefix string, opts ...GroupOption) *Group {
	return newGroup(c, prefix, opts)
}

// Group creates a nested group. Prefixes, tags and middleware accumulate
// from the outside in.
func (g *Group) Group(prefix string, opts ...GroupOption) *Group {
	return newGroup(g, prefix, opts)
}

func newGroup(parent Registrar, prefix string, opts []GroupOption) *Group {
	g := &Group{
		parent: parent,
		prefix: prefix,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// addRoute implements Registrar for Group.
func (g *Group) addRoute(ri routeInfo) (Route, error) {
	ri.template = g.prefix + ri.template
	ri.tags = append(append([]string(nil), g.tags...), ri.tags...)
	ri.middleware = append(append([]Middleware(nil), g.middleware...), ri.middleware...)
	return g.parent.addRoute(ri)
}

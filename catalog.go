package endpoint

import (
	"log/slog"
)

// Catalog is a documentation context: the pending registry, the built
// document cache, and the policies used to classify and resolve handlers.
// Independent catalogs never share state.
type Catalog struct {
	registry *Registry
	cache    documentCache

	classifier *Classifier
	schemas    SchemaResolver
	params     ParamsResolver
	types      *TypeRegistry

	roles           map[string]Role
	strict          bool
	checkPathParams bool

	logger *slog.Logger
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the logger used for registration and build events.
func WithLogger(l *slog.Logger) Option {
	return func(c *Catalog) {
		c.logger = l
	}
}

// WithStrictTypeArgs rejects type arguments that a type chain cannot
// represent instead of silently dropping them.
func WithStrictTypeArgs() Option {
	return func(c *Catalog) {
		c.strict = true
	}
}

// WithPathParamCheck rejects registrations whose path argument count differs
// from the number of placeholders in the route.
func WithPathParamCheck() Option {
	return func(c *Catalog) {
		c.checkPathParams = true
	}
}

// WithRole adds or replaces a marker in the role table. name is matched
// against the final identifier of a parameter's outer type.
func WithRole(name string, role Role) Option {
	return func(c *Catalog) {
		c.roles[name] = role
	}
}

// WithSchemaResolver replaces the default reflection-based resolver.
func WithSchemaResolver(s SchemaResolver) Option {
	return func(c *Catalog) {
		c.schemas = s
	}
}

// WithParamsResolver replaces the default struct-field query resolver.
func WithParamsResolver(p ParamsResolver) Option {
	return func(c *Catalog) {
		c.params = p
	}
}

// WithTypes sets the registry used to resolve declared type expressions.
func WithTypes(t *TypeRegistry) Option {
	return func(c *Catalog) {
		c.types = t
	}
}

// New creates a Catalog with the given options.
func New(opts ...Option) *Catalog {
	c := &Catalog{
		registry: NewRegistry(),
		roles:    defaultRoles(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.types == nil {
		c.types = NewTypeRegistry()
	}
	if c.schemas == nil {
		c.schemas = NewReflectResolver(c.types)
	}
	if c.params == nil {
		c.params = NewStructParams(c.schemas, c.types)
	}
	c.classifier = NewClassifier(c.roles, c.strict)
	return c
}

// Types returns the registry used for declared type expressions.
func (c *Catalog) Types() *TypeRegistry { return c.types }

// Pending returns the number of entries waiting for the next build.
func (c *Catalog) Pending() int { return c.registry.Len() }

// Build returns the catalog's document. The first call after construction or
// Reset drains every pending entry, merges them in registration order, and
// caches the result; later calls return the same pointer without calling init.
// A nil init starts from an empty document. The document is shared by every
// caller until Reset and must not be modified.
func (c *Catalog) Build(init func() Document) *Document {
	doc, built := c.cache.buildOrGet(c.registry, init)
	if built {
		c.logger.Info("openapi document built",
			slog.Int("paths", len(doc.Paths)),
			slog.String("title", doc.Info.Title),
		)
	}
	return doc
}

// Reset discards pending entries and the cached document.
func (c *Catalog) Reset() {
	c.cache.reset(c.registry)
	c.logger.Debug("openapi catalog reset")
}

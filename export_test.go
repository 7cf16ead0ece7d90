package endpoint

// Test-only exports for internal functions.
var (
	BaseName            = baseName
	NormalizeMethod     = normalizeMethod
	FuncOperationID     = funcOperationID
	GenerateOperationID = generateOperationID
	SetValue            = setValue
	TagOptions          = tagOptions
	TagContains         = tagContains
	QueryName           = queryName
	BindQuery           = bindQuery
	DecodeBody          = decodeBody
)

// Drain exposes the registry's drain for tests.
func (r *Registry) Drain() []Entry { return r.drain() }

// Merge exposes path merging for tests.
func (p Paths) Merge(e Entry) { p.merge(e) }

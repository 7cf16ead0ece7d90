package endpoint

import "fmt"

// PathParam is a documented path parameter aligned to a placeholder.
type PathParam struct {
	Name string
	Type TypeRef
}

// Descriptor is the documentation-level description of one operation, before
// any schema is resolved.
type Descriptor struct {
	Method      string
	Path        string
	OperationID string
	Summary     string
	Description string
	Tags        []string
	Deprecated  bool

	Response   *TypeRef // nil for an opaque response
	Body       *TypeRef
	Query      *TypeRef
	PathParams []PathParam
	State      *TypeRef
}

// DescriptorInput holds everything BuildDescriptor combines.
type DescriptorInput struct {
	Method      string
	Path        string // canonical
	OperationID string
	Summary     string
	Description string
	Tags        []string
	Deprecated  bool

	Placeholders []string
	Args         []Argument // declaration order
	Response     *TypeRef   // classified result

	// CheckPathParams turns a placeholder/argument count mismatch into
	// ErrMismatchedPathParameters instead of truncating.
	CheckPathParams bool
}

// BuildDescriptor combines classified arguments, the canonical path and the
// classified result. The first body and first query argument win; path
// arguments are zipped with placeholders and truncated to the shorter list.
func BuildDescriptor(in DescriptorInput) (Descriptor, error) {
	d := Descriptor{
		Method:      in.Method,
		Path:        in.Path,
		OperationID: in.OperationID,
		Summary:     in.Summary,
		Description: in.Description,
		Tags:        in.Tags,
		Deprecated:  in.Deprecated,
		Response:    in.Response,
		PathParams:  []PathParam{},
	}

	var paths []TypeRef
	for _, arg := range in.Args {
		switch arg.Role {
		case RoleBody:
			if d.Body == nil {
				d.Body = &arg.Type
			}
		case RoleQuery:
			if d.Query == nil {
				d.Query = &arg.Type
			}
		case RoleState:
			if d.State == nil {
				d.State = &arg.Type
			}
		case RolePath:
			paths = append(paths, arg.Type)
		}
	}

	if in.CheckPathParams && len(paths) != len(in.Placeholders) {
		return Descriptor{}, fmt.Errorf("%w: %d path arguments for %d placeholders in %s",
			ErrMismatchedPathParameters, len(paths), len(in.Placeholders), in.Path)
	}

	n := min(len(paths), len(in.Placeholders))
	for i := range n {
		d.PathParams = append(d.PathParams, PathParam{Name: in.Placeholders[i], Type: paths[i]})
	}

	return d, nil
}

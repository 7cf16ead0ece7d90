package endpoint

import (
	"reflect"
	"strings"
)

// queryFields walks the exported fields of a query parameter struct,
// flattening embedded structs. fn receives the parameter name and the
// field's index path.
func queryFields(t reflect.Type, index []int, fn func(name string, f reflect.StructField, index []int)) {
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		idx := append(append([]int(nil), index...), i)

		if f.Anonymous && f.Type.Kind() == reflect.Struct && f.Tag.Get("query") == "" {
			queryFields(f.Type, idx, fn)
			continue
		}

		name := queryName(f)
		if name == "-" {
			continue
		}
		fn(name, f, idx)
	}
}

// queryName picks the query parameter name: the query tag, then the json
// tag, then the field name.
func queryName(f reflect.StructField) string {
	if name, _ := tagOptions(f.Tag.Get("query")); name != "" {
		return name
	}
	if name, _ := tagOptions(f.Tag.Get("json")); name != "" {
		return name
	}
	return f.Name
}

// tagOptions splits a struct tag value on comma and returns
// the name and remaining options.
func tagOptions(tag string) (string, string) {
	name, opts, _ := strings.Cut(tag, ",")
	return name, opts
}

// tagContains reports whether a comma-separated list of options
// contains a particular option.
func tagContains(opts string, name string) bool {
	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		if opt == name {
			return true
		}
	}
	return false
}

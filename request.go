package endpoint

import (
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

// input is the per-request state shared by the extractors of one call.
type input struct {
	r      *http.Request
	names  []string // placeholders of the route, in order
	next   int
	states map[reflect.Type]reflect.Value
}

// nextPlaceholder returns the name the next path argument binds to. Path
// arguments beyond the placeholder count get their zero value.
func (in *input) nextPlaceholder() (string, bool) {
	if in.next >= len(in.names) {
		return "", false
	}
	name := in.names[in.next]
	in.next++
	return name, true
}

func (in *input) pathValue(name string) string {
	if v := chi.URLParam(in.r, name); v != "" {
		return v
	}
	return in.r.PathValue(name)
}

// bindQuery binds the URL query to the fields of target, a pointer to a
// struct or to a pointer to one. Missing values fall back to the field's
// default tag.
func bindQuery(r *http.Request, target any) error {
	v := reflect.ValueOf(target).Elem()
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("%w: %s is not a struct", ErrBindQuery, v.Type())
	}

	values := r.URL.Query()
	var err error
	queryFields(v.Type(), nil, func(name string, f reflect.StructField, index []int) {
		if err != nil {
			return
		}
		field := v.FieldByIndex(index)

		raw, ok := values[name]
		if !ok || len(raw) == 0 {
			if def := f.Tag.Get("default"); def != "" {
				raw = []string{def}
			}
		}
		if len(raw) == 0 {
			return
		}

		if field.Kind() == reflect.Slice && field.Type().Elem().Kind() != reflect.Uint8 {
			s := reflect.MakeSlice(field.Type(), len(raw), len(raw))
			for i, val := range raw {
				if serr := setValue(s.Index(i), val); serr != nil {
					err = fmt.Errorf("%w: %s: %w", ErrBindQuery, name, serr)
					return
				}
			}
			field.Set(s)
			return
		}

		if serr := setValue(field, raw[0]); serr != nil {
			err = fmt.Errorf("%w: %s: %w", ErrBindQuery, name, serr)
		}
	})
	return err
}

var (
	durationType        = reflect.TypeFor[time.Duration]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// setValue sets a reflect.Value from a string, supporting scalars,
// time.Duration, pointers to those, and encoding.TextUnmarshaler.
func setValue(field reflect.Value, value string) error {
	if field.Kind() == reflect.Pointer {
		p := reflect.New(field.Type().Elem())
		if err := setValue(p.Elem(), value); err != nil {
			return err
		}
		field.Set(p)
		return nil
	}

	if field.CanAddr() && field.Addr().Type().Implements(textUnmarshalerType) {
		return field.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(value))
	}

	if field.Type() == durationType {
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		field.SetInt(int64(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(value, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetFloat(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported type: %s", field.Type())
	}
	return nil
}

var errEmptyBody = errors.New("request body is empty")

// decodeBody decodes the request body as JSON into target. An empty body
// leaves target unchanged.
func decodeBody(r *http.Request, target any) error {
	err := decodeRequiredBody(r, target)
	if errors.Is(err, errEmptyBody) {
		return nil
	}
	return err
}

// decodeRequiredBody is decodeBody for documented bodies, which are always
// required: an empty body fails with errEmptyBody.
func decodeRequiredBody(r *http.Request, target any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return errEmptyBody
	}
	err := json.NewDecoder(r.Body).Decode(target)
	if errors.Is(err, io.EOF) {
		return errEmptyBody
	}
	return err
}

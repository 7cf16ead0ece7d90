package endpoint

import (
	"errors"
	"net/http"
	"reflect"
)

// SelfValidator is implemented by body and query types that validate
// themselves after binding. A failure without its own status is reported
// as 422. A nil pointer, as decoded from a JSON null, is not validated.
type SelfValidator interface {
	Validate() error
}

func validate[T any](v *T) error {
	sv, ok := any(v).(SelfValidator)
	if !ok {
		sv, ok = any(*v).(SelfValidator)
	}
	if !ok || isNilPointer(sv) {
		return nil
	}

	err := sv.Validate()
	if err == nil {
		return nil
	}
	var sc StatusCoder
	if errors.As(err, &sc) {
		return err
	}
	return &HTTPError{Status: http.StatusUnprocessableEntity, Message: err.Error()}
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

package endpoint

import (
	"fmt"
	"net/http"
	"strings"
)

var supportedMethods = map[string]struct{}{
	http.MethodGet:     {},
	http.MethodPost:    {},
	http.MethodPut:     {},
	http.MethodDelete:  {},
	http.MethodHead:    {},
	http.MethodOptions: {},
	http.MethodConnect: {},
	http.MethodPatch:   {},
}

// normalizeMethod upper-cases a method token and checks it is supported.
func normalizeMethod(method string) (string, error) {
	m := strings.ToUpper(strings.TrimSpace(method))
	if _, ok := supportedMethods[m]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedHTTPMethod, method)
	}
	return m, nil
}

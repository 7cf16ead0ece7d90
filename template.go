package endpoint

import "strings"

// TransformRoute rewrites colon placeholders to brace placeholders:
// "/todos/:id" → "/todos/{id}". Brace placeholders and plain segments are
// left alone, so the transform is idempotent.
func TransformRoute(template string) string {
	segs := strings.Split(template, "/")
	for i, seg := range segs {
		if name, ok := strings.CutPrefix(seg, ":"); ok {
			segs[i] = "{" + name + "}"
		}
	}
	return strings.Join(segs, "/")
}

// ExtractPlaceholders returns the placeholder names of a canonical path in
// left-to-right order. Names are neither validated nor deduplicated.
func ExtractPlaceholders(path string) []string {
	var names []string
	for _, seg := range strings.Split(path, "/") {
		if isPlaceholder(seg) {
			names = append(names, seg[1:len(seg)-1])
		}
	}
	return names
}

func isPlaceholder(seg string) bool {
	return len(seg) >= 2 && seg[0] == '{' && seg[len(seg)-1] == '}'
}

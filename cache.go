package endpoint

import "sync"

// documentCache holds at most one built document. Its lock is always taken
// before the registry's.
type documentCache struct {
	mu  sync.Mutex
	doc *Document
}

// buildOrGet returns the cached document, building it from a single drain of
// reg when the cache is empty. built reports whether this call built it.
func (dc *documentCache) buildOrGet(reg *Registry, init func() Document) (doc *Document, built bool) {
	dc.mu.Lock()
	defer dc.mu.Unlock()

	if dc.doc != nil {
		return dc.doc, false
	}

	paths := make(Paths)
	for _, e := range reg.drain() {
		paths.merge(e)
	}

	var d Document
	if init != nil {
		d = init()
	}
	if d.OpenAPI == "" {
		d.OpenAPI = OpenAPIVersion
	}
	d.Paths = paths

	dc.doc = &d
	return dc.doc, true
}

// reset clears the cache and reg together.
func (dc *documentCache) reset(reg *Registry) {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	reg.Reset()
	dc.doc = nil
}

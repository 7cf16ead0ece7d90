package endpoint

import "sync"

// Entry is one documented path fragment holding a single method slot.
type Entry struct {
	Path      string
	Method    string
	Operation Operation
}

// Registry is an append-only, ordered store of entries waiting to be folded
// into a document. Insertion order decides which of two entries for the same
// path and method wins.
type Registry struct {
	mu      sync.Mutex
	entries []Entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends e. Duplicate path and method pairs are kept.
func (r *Registry) Register(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
}

// Len returns the number of pending entries.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Reset discards every pending entry.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}

// drain removes and returns every pending entry in insertion order.
func (r *Registry) drain() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries := r.entries
	r.entries = nil
	return entries
}

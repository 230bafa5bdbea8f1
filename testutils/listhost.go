package testutils

import (
	"net/http"
	"strings"
	"sync"
)

// ListFiles is an in-memory host for eligibility list files. Requests are
// matched on the URL path, so cache-busting query parameters are ignored.
type ListFiles struct {
	mu       sync.Mutex
	files    map[string]string
	statuses map[string]int
	hits     map[string]int
	queries  map[string][]string
}

func NewListFiles() *ListFiles {
	return &ListFiles{
		files:    make(map[string]string),
		statuses: make(map[string]int),
		hits:     make(map[string]int),
		queries:  make(map[string][]string),
	}
}

func (f *ListFiles) Set(path, content string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[normalizePath(path)] = content
	delete(f.statuses, normalizePath(path))
}

// Fail makes path answer with status until Set is called again.
func (f *ListFiles) Fail(path string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses[normalizePath(path)] = status
}

func (f *ListFiles) Hits(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[normalizePath(path)]
}

func (f *ListFiles) Queries(path string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries[normalizePath(path)]...)
}

func (f *ListFiles) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := normalizePath(r.URL.Path)

	f.mu.Lock()
	f.hits[path]++
	f.queries[path] = append(f.queries[path], r.URL.RawQuery)
	status, failing := f.statuses[path]
	content, ok := f.files[path]
	f.mu.Unlock()

	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if failing {
		w.WriteHeader(status)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(content))
}

func normalizePath(path string) string {
	return "/" + strings.TrimLeft(path, "/")
}

// Package restapitest provides an in-memory stand-in for the REST backend.
package restapitest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// Call is one request the backend received.
type Call struct {
	Method string
	Path   string
	Body   map[string]any
}

type fault struct {
	status int
	times  int
}

// Backend keeps every collection as an ordered slice of JSON objects and
// assigns ids on POST, like the real backend.
type Backend struct {
	mu      sync.Mutex
	data    map[string][]map[string]any
	nextID  map[string]int
	faults  map[string]*fault
	calls   []Call
	handler http.Handler
}

func New() *Backend {
	b := &Backend{
		data:   map[string][]map[string]any{},
		nextID: map[string]int{},
		faults: map[string]*fault{},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{collection}", b.list)
	mux.HandleFunc("POST /{collection}", b.create)
	mux.HandleFunc("PUT /{collection}/{id}", b.replace)
	mux.HandleFunc("DELETE /{collection}/{id}", b.remove)
	b.handler = mux
	return b
}

// Start serves the backend on an httptest server closed when t finishes.
func Start(t *testing.T) (*Backend, *httptest.Server) {
	t.Helper()
	b := New()
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)
	return b, srv
}

func (b *Backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var raw []byte
	if r.Body != nil {
		raw, _ = io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(raw))
	}
	var body map[string]any
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &body)
	}

	b.mu.Lock()
	b.calls = append(b.calls, Call{Method: r.Method, Path: r.URL.Path, Body: body})
	if f := b.faults[r.Method+" "+firstSegment(r.URL.Path)]; f != nil && f.times != 0 {
		f.times--
		b.mu.Unlock()
		http.Error(w, "injected failure", f.status)
		return
	}
	b.mu.Unlock()
	b.handler.ServeHTTP(w, r)
}

// Seed appends records to a collection, assigning ids to those without one.
func (b *Backend) Seed(collection string, records ...map[string]any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, rec := range records {
		cp := copyRecord(rec)
		if id := toInt(cp["id"]); id > 0 {
			if id >= b.nextID[collection] {
				b.nextID[collection] = id
			}
		} else {
			b.nextID[collection]++
			cp["id"] = b.nextID[collection]
		}
		b.data[collection] = append(b.data[collection], cp)
	}
}

// Fail makes the next n requests with method on collection answer status.
// n < 0 fails until Heal is called.
func (b *Backend) Fail(method, collection string, status, n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.faults[method+" "+collection] = &fault{status: status, times: n}
}

// Heal removes every injected failure.
func (b *Backend) Heal() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.faults = map[string]*fault{}
}

// Calls returns a copy of the requests received so far.
func (b *Backend) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Call(nil), b.calls...)
}

// Records returns a copy of a collection as stored.
func (b *Backend) Records(collection string) []map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]map[string]any, 0, len(b.data[collection]))
	for _, rec := range b.data[collection] {
		out = append(out, copyRecord(rec))
	}
	return out
}

func (b *Backend) list(w http.ResponseWriter, r *http.Request) {
	collection := r.PathValue("collection")
	b.mu.Lock()
	out := make([]map[string]any, 0, len(b.data[collection]))
	for _, rec := range b.data[collection] {
		out = append(out, readShape(collection, rec))
	}
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) create(w http.ResponseWriter, r *http.Request) {
	collection := r.PathValue("collection")
	body, ok := decodeBody(r)
	if !ok {
		http.Error(w, "missing body", http.StatusBadRequest)
		return
	}
	b.mu.Lock()
	b.nextID[collection]++
	rec := copyRecord(body)
	rec["id"] = b.nextID[collection]
	b.data[collection] = append(b.data[collection], rec)
	b.mu.Unlock()
	writeJSON(w, http.StatusCreated, rec)
}

func (b *Backend) replace(w http.ResponseWriter, r *http.Request) {
	collection := r.PathValue("collection")
	id, err := strconv.Atoi(r.PathValue("id"))
	body, ok := decodeBody(r)
	if err != nil || !ok {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, rec := range b.data[collection] {
		if toInt(rec["id"]) == id {
			cp := copyRecord(body)
			cp["id"] = id
			b.data[collection][i] = cp
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	http.Error(w, fmt.Sprintf("%s %d not found", collection, id), http.StatusNotFound)
}

func (b *Backend) remove(w http.ResponseWriter, r *http.Request) {
	collection := r.PathValue("collection")
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	recs := b.data[collection]
	for i, rec := range recs {
		if toInt(rec["id"]) == id {
			b.data[collection] = append(recs[:i:i], recs[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	http.Error(w, fmt.Sprintf("%s %d not found", collection, id), http.StatusNotFound)
}

// readShape turns the stored plain language ids of an employee into the
// [{"languageId":N}] objects the real backend returns.
func readShape(collection string, rec map[string]any) map[string]any {
	cp := copyRecord(rec)
	if collection != "Employees" {
		return cp
	}
	var ids []any
	switch v := cp["languages"].(type) {
	case []any:
		ids = v
	case []int:
		for _, id := range v {
			ids = append(ids, id)
		}
	}
	links := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		links = append(links, map[string]any{"languageId": toInt(id)})
	}
	cp["languages"] = links
	return cp
}

func decodeBody(r *http.Request) (map[string]any, bool) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body == nil {
		return nil, false
	}
	return body, true
}

func firstSegment(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return path
}

func copyRecord(rec map[string]any) map[string]any {
	cp := make(map[string]any, len(rec))
	for k, v := range rec {
		cp[k] = v
	}
	return cp
}

func toInt(v any) int {
	switch x := v.(type) {
	case int:
		return x
	case float64:
		return int(x)
	case json.Number:
		i, _ := x.Int64()
		return int(i)
	}
	return 0
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

package fakeapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	jsonpatch "github.com/evanphx/json-patch/v5"

	"github.com/rentdesk/rentdesk/internal/storage"
	"github.com/rentdesk/rentdesk/pkg/entity"
	"github.com/rentdesk/rentdesk/pkg/httputil"
)

// resource describes one REST collection.
type resource[T any] struct {
	name  string
	store *storage.InMemoryStore[T]

	// criteria maps a filter name such as "patronId" to the reference it tests.
	criteria map[string]func(*T) *int64

	// hydrate replaces references with stored copies and reports unknown ones.
	hydrate func(*T) []httputil.FieldError

	// referenced reports whether another entity still points at id.
	referenced func(id int64) bool
}

func register[T any](s *Server, path string, r *resource[T]) {
	s.mux.HandleFunc("GET "+path, func(w http.ResponseWriter, req *http.Request) {
		r.list(w, req)
	})
	s.mux.HandleFunc("GET "+path+"/count", func(w http.ResponseWriter, req *http.Request) {
		r.count(w, req)
	})
	s.mux.HandleFunc("GET "+path+"/{id}", func(w http.ResponseWriter, req *http.Request) {
		r.get(w, req)
	})
	s.mux.HandleFunc("POST "+path, func(w http.ResponseWriter, req *http.Request) {
		s.writeMu.Lock()
		defer s.writeMu.Unlock()
		r.create(w, req, path)
	})
	s.mux.HandleFunc("PUT "+path+"/{id}", func(w http.ResponseWriter, req *http.Request) {
		s.writeMu.Lock()
		defer s.writeMu.Unlock()
		r.update(w, req)
	})
	s.mux.HandleFunc("PATCH "+path+"/{id}", func(w http.ResponseWriter, req *http.Request) {
		s.writeMu.Lock()
		defer s.writeMu.Unlock()
		r.partialUpdate(w, req)
	})
	s.mux.HandleFunc("DELETE "+path+"/{id}", func(w http.ResponseWriter, req *http.Request) {
		s.writeMu.Lock()
		defer s.writeMu.Unlock()
		r.delete(w, req)
	})
}

func (r *resource[T]) identify(e *T) *int64 {
	return r.store.Accessors().Identify(e)
}

func (r *resource[T]) list(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()
	view, err := r.filter(q)
	if err != nil {
		httputil.WriteBadRequest(w, "error.criteria", err.Error())
		return
	}
	items := view.List()
	if sortDescending(q["sort"]) {
		slices.Reverse(items)
	}

	page, size, err := paging(q)
	if err != nil {
		httputil.WriteBadRequest(w, "error.paging", err.Error())
		return
	}
	total := len(items)
	from := min(page*size, total)
	to := min(from+size, total)
	httputil.WritePage(w, items[from:to], total)
}

func (r *resource[T]) count(w http.ResponseWriter, req *http.Request) {
	view, err := r.filter(req.URL.Query())
	if err != nil {
		httputil.WriteBadRequest(w, "error.criteria", err.Error())
		return
	}
	httputil.WriteOK(w, view.Count())
}

func (r *resource[T]) get(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req)
	if !ok {
		return
	}
	e := r.store.Get(id)
	if e == nil {
		r.notFound(w, id)
		return
	}
	httputil.WriteOK(w, e)
}

func (r *resource[T]) create(w http.ResponseWriter, req *http.Request, path string) {
	e, ok := decodeBody[T](w, req)
	if !ok {
		return
	}
	if r.identify(e) != nil {
		httputil.WriteBadRequest(w, "error.idexists", fmt.Sprintf("a new %s cannot already have an ID", r.name))
		return
	}
	if !r.accept(w, e) {
		return
	}
	stored := r.store.Insert(e)
	httputil.WriteCreated(w, path+"/"+strconv.FormatInt(*r.identify(stored), 10), stored)
}

func (r *resource[T]) update(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req)
	if !ok {
		return
	}
	e, ok := decodeBody[T](w, req)
	if !ok || !r.checkBodyID(w, e, id) {
		return
	}
	if !r.store.Exists(id) {
		r.notFound(w, id)
		return
	}
	if !r.accept(w, e) {
		return
	}
	r.store.Replace(id, e)
	httputil.WriteOK(w, r.store.Get(id))
}

func (r *resource[T]) partialUpdate(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req)
	if !ok {
		return
	}
	patch, err := io.ReadAll(req.Body)
	if err != nil {
		httputil.WriteBadRequest(w, "error.body", err.Error())
		return
	}
	var probe T
	if err := json.Unmarshal(patch, &probe); err != nil {
		httputil.WriteBadRequest(w, "error.body", err.Error())
		return
	}
	if !r.checkBodyID(w, &probe, id) {
		return
	}

	existing := r.store.Get(id)
	if existing == nil {
		r.notFound(w, id)
		return
	}
	doc, err := json.Marshal(existing)
	if err != nil {
		httputil.WriteInternalError(w, "error.internal", err.Error())
		return
	}
	merged, err := jsonpatch.MergePatch(doc, patch)
	if err != nil {
		httputil.WriteBadRequest(w, "error.patch", err.Error())
		return
	}
	var e T
	if err := json.Unmarshal(merged, &e); err != nil {
		httputil.WriteBadRequest(w, "error.patch", err.Error())
		return
	}
	if !r.accept(w, &e) {
		return
	}
	r.store.Replace(id, &e)
	httputil.WriteOK(w, r.store.Get(id))
}

func (r *resource[T]) delete(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req)
	if !ok {
		return
	}
	if !r.store.Exists(id) {
		r.notFound(w, id)
		return
	}
	if r.referenced != nil && r.referenced(id) {
		httputil.WriteConflict(w, "error.referenced", fmt.Sprintf("%s %d is still referenced", r.name, id))
		return
	}
	r.store.Delete(id)
	httputil.WriteNoContent(w)
}

// accept validates e and resolves its references, writing a 400 on failure.
func (r *resource[T]) accept(w http.ResponseWriter, e *T) bool {
	var fields []httputil.FieldError
	if err := entity.Validate(e); err != nil {
		var verr *entity.ValidationError
		if !errors.As(err, &verr) {
			httputil.WriteInternalError(w, "error.internal", err.Error())
			return false
		}
		for _, fe := range verr.Errors {
			fields = append(fields, httputil.FieldError{ObjectName: r.name, Field: fe.Field, Message: fe.Message})
		}
	}
	if len(fields) == 0 && r.hydrate != nil {
		fields = r.hydrate(e)
	}
	if len(fields) > 0 {
		httputil.WriteValidationProblem(w, "invalid "+r.name, fields)
		return false
	}
	return true
}

func (r *resource[T]) checkBodyID(w http.ResponseWriter, e *T, id int64) bool {
	bodyID := r.identify(e)
	if bodyID == nil {
		httputil.WriteBadRequest(w, "error.idnull", "invalid id")
		return false
	}
	if *bodyID != id {
		httputil.WriteBadRequest(w, "error.idinvalid", "id in body does not match path")
		return false
	}
	return true
}

func (r *resource[T]) notFound(w http.ResponseWriter, id int64) {
	httputil.WriteNotFound(w, "error.notfound", fmt.Sprintf("%s %d not found", r.name, id))
}

// filter builds a live view restricted by "<criterion>.equals" query parameters.
func (r *resource[T]) filter(q url.Values) (*storage.FilteredStore[T], error) {
	type test struct {
		ref  func(*T) *int64
		want int64
	}
	var tests []test
	for key, values := range q {
		name, op, found := strings.Cut(key, ".")
		if !found {
			continue
		}
		ref := r.criteria[name]
		if name == "id" {
			ref = r.identify
		}
		if ref == nil || op != "equals" || len(values) == 0 {
			return nil, fmt.Errorf("unsupported criterion %q", key)
		}
		want, err := strconv.ParseInt(values[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("criterion %q: %w", key, err)
		}
		tests = append(tests, test{ref: ref, want: want})
	}
	return storage.NewFilteredStore[T](r.store, func(e *T) bool {
		for _, t := range tests {
			if !idEquals(t.ref(e), t.want) {
				return false
			}
		}
		return true
	}), nil
}

func decodeBody[T any](w http.ResponseWriter, req *http.Request) (*T, bool) {
	var e T
	if err := json.NewDecoder(req.Body).Decode(&e); err != nil {
		httputil.WriteBadRequest(w, "error.body", err.Error())
		return nil, false
	}
	return &e, true
}

func pathID(w http.ResponseWriter, req *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(req.PathValue("id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "error.idinvalid", "invalid id "+strconv.Quote(req.PathValue("id")))
		return 0, false
	}
	return id, true
}

func paging(q url.Values) (page, size int, err error) {
	size = DefaultPageSize
	if v := q.Get("page"); v != "" {
		if page, err = strconv.Atoi(v); err != nil || page < 0 {
			return 0, 0, fmt.Errorf("invalid page %q", v)
		}
	}
	if v := q.Get("size"); v != "" {
		if size, err = strconv.Atoi(v); err != nil || size <= 0 {
			return 0, 0, fmt.Errorf("invalid size %q", v)
		}
	}
	return page, size, nil
}

// sortDescending reports whether the first sort order asks for descending ids.
// Only identifier order is supported.
func sortDescending(sorts []string) bool {
	if len(sorts) == 0 {
		return false
	}
	field, dir, _ := strings.Cut(sorts[0], ",")
	return field == "id" && strings.EqualFold(dir, "desc")
}

func idEquals(ref *int64, id int64) bool {
	return ref != nil && *ref == id
}

package http

import (
	"context"
	"net/http"

	"wealth/internal/auth"
)

type creatable[T any] interface {
	toModel(owner string) T
}

// resource wires the five CRUD routes and the summary route of one record
// family. Every operation receives the caller's id as owner.
type resource[T any, C creatable[T], P any] struct {
	path     string
	thing    string
	notFound string

	create  func(ctx context.Context, item T) (T, error)
	list    func(r *http.Request, owner string) ([]T, error)
	get     func(ctx context.Context, owner, id string) (T, error)
	update  func(ctx context.Context, owner, id string, patch P) (T, error)
	remove  func(ctx context.Context, owner, id string) error
	summary func(r *http.Request, owner string) (any, error)
}

type routeSet interface {
	register(mux *http.ServeMux, protect func(http.Handler) http.Handler)
}

func (res resource[T, C, P]) register(mux *http.ServeMux, protect func(http.Handler) http.Handler) {
	handle := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, protect(h))
	}
	handle("POST "+res.path, res.handleCreate)
	handle("GET "+res.path, res.handleList)
	handle("GET "+res.path+"/summary", res.handleSummary)
	handle("GET "+res.path+"/{id}", res.handleGet)
	handle("PATCH "+res.path+"/{id}", res.handleUpdate)
	handle("DELETE "+res.path+"/{id}", res.handleDelete)
}

// owner returns the authenticated user id. Routes are only reachable
// through the auth middleware, so a missing user is a wiring bug.
func owner(r *http.Request) string {
	u, ok := auth.FromContext(r.Context())
	if !ok {
		panic("http: handler reached without authenticated user")
	}
	return u.ID
}

func (res resource[T, C, P]) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req C
	if !decodeBody(w, r, &req) {
		return
	}
	item, err := res.create(r.Context(), req.toModel(owner(r)))
	if err != nil {
		respondError(w, r, err, res.notFound)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (res resource[T, C, P]) handleList(w http.ResponseWriter, r *http.Request) {
	items, err := res.list(r, owner(r))
	if err != nil {
		respondError(w, r, err, res.notFound)
		return
	}
	if items == nil {
		items = []T{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (res resource[T, C, P]) handleSummary(w http.ResponseWriter, r *http.Request) {
	s, err := res.summary(r, owner(r))
	if err != nil {
		respondError(w, r, err, res.notFound)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (res resource[T, C, P]) handleGet(w http.ResponseWriter, r *http.Request) {
	item, err := res.get(r.Context(), owner(r), r.PathValue("id"))
	if err != nil {
		respondError(w, r, err, res.notFound)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (res resource[T, C, P]) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var patch P
	if !decodeBody(w, r, &patch) {
		return
	}
	item, err := res.update(r.Context(), owner(r), r.PathValue("id"), patch)
	if err != nil {
		respondError(w, r, err, res.notFound)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (res resource[T, C, P]) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := res.remove(r.Context(), owner(r), r.PathValue("id")); err != nil {
		respondError(w, r, err, res.notFound)
		return
	}
	writeJSON(w, http.StatusOK, messageBody{Message: res.thing + " deleted successfully"})
}

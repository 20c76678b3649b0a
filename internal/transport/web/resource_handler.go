package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Olprog59/go-fromagerie/internal/dto"
	"github.com/Olprog59/go-fromagerie/internal/service"
)

// Resource serves one collection: GET/POST on Path, GET/PUT/DELETE on Path/{id}.
// Sert une collection : GET/POST sur Path, GET/PUT/DELETE sur Path/{id}.
type Resource[T any, K comparable, P any, D any] struct {
	Path     string
	svc      *service.CRUDService[T, K, P]
	parseKey func(string) (K, error)
	toDTO    func(*T) D
}

// NewResource builds a collection handler / Construit le gestionnaire d'une collection
func NewResource[T any, K comparable, P any, D any](
	path string,
	svc *service.CRUDService[T, K, P],
	parseKey func(string) (K, error),
	toDTO func(*T) D,
) *Resource[T, K, P, D] {
	return &Resource[T, K, P, D]{Path: path, svc: svc, parseKey: parseKey, toDTO: toDTO}
}

// Register binds the five routes of the collection on mux.
func (res *Resource[T, K, P, D]) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET "+res.Path, res.List)
	mux.HandleFunc("POST "+res.Path, res.Create)
	mux.HandleFunc("GET "+res.Path+"/{id}", res.Get)
	mux.HandleFunc("PUT "+res.Path+"/{id}", res.Update)
	mux.HandleFunc("DELETE "+res.Path+"/{id}", res.Delete)
}

func (res *Resource[T, K, P, D]) List(w http.ResponseWriter, r *http.Request) {
	items, err := res.svc.List(r.Context())
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, dto.Map(items, res.toDTO))
}

func (res *Resource[T, K, P, D]) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := res.key(w, r)
	if !ok {
		return
	}

	item, err := res.svc.Get(r.Context(), id)
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, res.toDTO(item))
}

func (res *Resource[T, K, P, D]) Create(w http.ResponseWriter, r *http.Request) {
	var patch P
	if code, err := decodeJSON(w, r, &patch); err != nil {
		ErrorResponse(w, err.Error(), code)
		return
	}

	item, err := res.svc.Create(r.Context(), patch)
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, res.toDTO(item))
}

func (res *Resource[T, K, P, D]) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := res.key(w, r)
	if !ok {
		return
	}

	var patch P
	if code, err := decodeJSON(w, r, &patch); err != nil {
		ErrorResponse(w, err.Error(), code)
		return
	}

	item, err := res.svc.Update(r.Context(), id, patch)
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, res.toDTO(item))
}

func (res *Resource[T, K, P, D]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := res.key(w, r)
	if !ok {
		return
	}

	if err := res.svc.Delete(r.Context(), id); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// key parses the {id} path value, writing a 400 on failure
func (res *Resource[T, K, P, D]) key(w http.ResponseWriter, r *http.Request) (K, bool) {
	raw := r.PathValue("id")
	id, err := res.parseKey(raw)
	if err != nil {
		ErrorResponse(w, fmt.Sprintf("invalid %s id %q: %s", res.svc.Entity(), raw, err.Error()), http.StatusBadRequest)
		return id, false
	}
	return id, true
}

// intKey parses integer collection keys / Analyse les clés entières
func intKey(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("must be an integer")
	}
	return id, nil
}

// stringKey accepts any non-empty code / Accepte tout code non vide
func stringKey(s string) (string, error) {
	if s == "" {
		return "", fmt.Errorf("must not be empty")
	}
	return s, nil
}

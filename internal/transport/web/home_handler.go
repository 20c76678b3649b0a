package web

import "net/http"

// collections lists every CRUD collection served by the API.
var collections = []string{
	"/clients",
	"/commandes",
	"/communes",
	"/conditionnements",
	"/departements",
	"/objets",
	"/utilisateurs",
}

// Home answers the root path with a greeting and the list of collections.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]any{
		"Hello":       "World",
		"collections": collections,
	})
}

package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"coride/pkg/model"
)

func respondWithError(w http.ResponseWriter, code int, payload interface{}) {
	respondWithJSON(w, code, map[string]interface{}{"error": payload})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithModelError maps the data-layer taxonomy to status codes.
func respondWithModelError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, model.ErrConflict):
		respondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, model.ErrBadFilter):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, err.Error())
	}
}

// chain wraps a handler in middleware, first middleware outermost.
func chain(h http.HandlerFunc, mws ...mux.MiddlewareFunc) http.Handler {
	var handler http.Handler = h
	for i := len(mws) - 1; i >= 0; i-- {
		handler = mws[i](handler)
	}
	return handler
}

// pathID reads an integer path parameter.
func pathID(r *http.Request, name string) (int, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return 0, errors.New("missing path parameter " + name)
	}
	return strconv.Atoi(raw)
}

// filterFromQuery builds the filter specification for a collection GET from
// the query string, visiting the binding's filterable columns in declaration
// order so predicate order is deterministic.
func filterFromQuery(r *http.Request, binding model.Binding) model.Filter {
	var filter model.Filter
	query := r.URL.Query()
	for _, column := range binding.FilterColumns {
		if value := query.Get(column); value != "" {
			filter = filter.Where(column, value)
		}
	}
	return filter
}

// decodeBody decodes a JSON request body into dst.
func decodeBody(r *http.Request, dst interface{}) error {
	defer func() { _ = r.Body.Close() }()
	return json.NewDecoder(r.Body).Decode(dst)
}

// idPayload is the {"id": n} body used by junction and delete routes.
type idPayload struct {
	ID int `json:"id"`
}

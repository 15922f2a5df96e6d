package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"tasknest/app/services"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps the service error taxonomy onto HTTP statuses:
// validation 400, auth 401, not-found 404, depth-limit/conflict 409.
func writeServiceError(w http.ResponseWriter, err error) {
	switch services.KindOf(err) {
	case services.KindInvalid:
		writeError(w, http.StatusBadRequest, err.Error())
	case services.KindUnauthorized:
		writeError(w, http.StatusUnauthorized, err.Error())
	case services.KindNotFound:
		writeError(w, http.StatusNotFound, err.Error())
	case services.KindDepthLimit, services.KindConflict:
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// pathID reads a numeric path variable. Routes constrain these to
// digits, so a parse failure can only mean an unregistered route.
func pathID(r *http.Request, name string) uint {
	id, _ := strconv.ParseUint(mux.Vars(r)[name], 10, 64)
	return uint(id)
}

package app

import (
	"encoding/json"
	"net/http"
)

// errorResponse is the JSON body of every non-2xx reply.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON serializes v with the given status. Encoding failures are logged
// only; the status line has already been written by then.
func (app *Application) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		app.Logger.Error("failed to write response", "error", err)
	}
}

// writeError replies with the standard error body.
func (app *Application) writeError(w http.ResponseWriter, status int, message string) {
	app.writeJSON(w, status, errorResponse{Error: message})
}

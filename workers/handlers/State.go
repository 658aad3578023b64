package handlers

import (
	"net/http"
)

// State is the liveness probe.
func State(w http.ResponseWriter, r *http.Request) {
	responseJSON(w, &APIStateResponse{
		Status: "ok",
	}, http.StatusOK)
}

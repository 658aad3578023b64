package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"cw20ics20bridge/bridge"
	"cw20ics20bridge/store"
)

// HealthCheck reports ready once state is reachable and the bridge is instantiated.
func (a *API) HealthCheck(w http.ResponseWriter, r *http.Request) {
	var ready bool
	err := a.Runtime.Query(func(s store.KVStore) (err error) {
		ready, err = bridge.Instantiated(s)
		return err
	})
	if err != nil {
		zap.L().Warn("health check failed", zap.Error(err))
		responseJSON(w, &APIResponse{
			Status:  "error",
			Message: "state unavailable",
		}, http.StatusServiceUnavailable)
		return
	}
	if !ready {
		responseJSON(w, &APIResponse{
			Status:  "error",
			Message: "not instantiated",
		}, http.StatusServiceUnavailable)
		return
	}
	responseJSON(w, &APIResponse{
		Status: "ok",
	}, http.StatusOK)
}

package handlers

import (
	"net/http"

	"cw20ics20bridge/bridge"
	"cw20ics20bridge/host"
	"cw20ics20bridge/store"
)

// API binds the HTTP surface to one bridge running on one host runtime.
type API struct {
	Runtime *host.Runtime
	Bridge  *bridge.Bridge
}

func (a *API) execute(w http.ResponseWriter, name string, h host.Handler) {
	res, err := a.Runtime.Execute(name, h)
	if err != nil {
		responseError(w, err)
		return
	}
	responseJSON(w, &APIExecuteResponse{
		Status:     "ok",
		Attributes: res.Attributes,
		Messages:   res.Messages,
	}, http.StatusOK)
}

// Receive is called by a cw20 contract after tokens were sent to the bridge.
// The request sender is the token contract.
func (a *API) Receive(w http.ResponseWriter, r *http.Request) {
	var req ExecuteRequest[bridge.Cw20ReceiveMsg]
	if !decodeBody(w, r, &req) {
		return
	}
	a.execute(w, "receive", func(s store.KVStore, env bridge.Env) (*bridge.Response, error) {
		return a.Bridge.ExecuteReceive(s, env, req.info(), req.Msg)
	})
}

func (a *API) Allow(w http.ResponseWriter, r *http.Request) {
	var req ExecuteRequest[bridge.AllowMsg]
	if !decodeBody(w, r, &req) {
		return
	}
	a.execute(w, "allow", func(s store.KVStore, env bridge.Env) (*bridge.Response, error) {
		return a.Bridge.ExecuteAllow(s, req.info(), req.Msg)
	})
}

func (a *API) UpdateAdmin(w http.ResponseWriter, r *http.Request) {
	var req ExecuteRequest[UpdateAdminMsg]
	if !decodeBody(w, r, &req) {
		return
	}
	a.execute(w, "update_admin", func(s store.KVStore, env bridge.Env) (*bridge.Response, error) {
		return a.Bridge.ExecuteUpdateAdmin(s, req.info(), req.Msg.Admin)
	})
}

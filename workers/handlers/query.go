package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"cw20ics20bridge/bridge"
	"cw20ics20bridge/store"
	"cw20ics20bridge/types"
)

// query runs f against committed state and writes its result as JSON.
func query[T any](a *API, w http.ResponseWriter, f func(s store.KVStore) (T, error)) {
	var res T
	err := a.Runtime.Query(func(s store.KVStore) error {
		var err error
		res, err = f(s)
		return err
	})
	if err != nil {
		responseError(w, err)
		return
	}
	responseJSON(w, res, http.StatusOK)
}

func (a *API) Config(w http.ResponseWriter, r *http.Request) {
	query(a, w, a.Bridge.QueryConfig)
}

func (a *API) Admin(w http.ResponseWriter, r *http.Request) {
	query(a, w, a.Bridge.QueryAdmin)
}

func (a *API) Allowed(w http.ResponseWriter, r *http.Request) {
	contract := chi.URLParam(r, "contract")
	query(a, w, func(s store.KVStore) (bridge.AllowedResponse, error) {
		return a.Bridge.QueryAllowed(s, contract)
	})
}

func (a *API) ListChannels(w http.ResponseWriter, r *http.Request) {
	query(a, w, a.Bridge.QueryListChannels)
}

func (a *API) Channel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	query(a, w, func(s store.KVStore) (bridge.ChannelResponse, error) {
		return a.Bridge.QueryChannel(s, id)
	})
}

func (a *API) Transfers(w http.ResponseWriter, r *http.Request) {
	channel := chi.URLParam(r, "id")
	status := types.TransferStatus(r.URL.Query().Get("status"))
	query(a, w, func(s store.KVStore) ([]types.TransferRecord, error) {
		return a.Bridge.QueryTransfers(s, channel, status)
	})
}

func (a *API) Transfer(w http.ResponseWriter, r *http.Request) {
	channel := chi.URLParam(r, "id")
	seq, err := strconv.ParseUint(chi.URLParam(r, "sequence"), 10, 64)
	if err != nil {
		responseError(w, fmt.Errorf("%w: bad sequence", types.ErrInvalidRequest))
		return
	}
	query(a, w, func(s store.KVStore) (types.TransferRecord, error) {
		return a.Bridge.QueryTransfer(s, channel, seq)
	})
}

package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"cw20ics20bridge/types"
)

const maxBodyBytes = 1 << 20

func responseJSON(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(data)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		zap.L().Warn("error reading request body", zap.Error(err))
		responseJSON(w, &APIResponse{
			Status:  "error",
			Message: "Error reading request body",
		}, http.StatusBadRequest)
		return false
	}

	if err := json.Unmarshal(body, v); err != nil {
		zap.L().Debug("error unmarshalling request body", zap.Error(err))
		responseJSON(w, &APIResponse{
			Status:  "error",
			Message: "Cannot unmarshal input JSON",
		}, http.StatusBadRequest)
		return false
	}
	return true
}

// errorCode maps the bridge error taxonomy to a stable code and HTTP status.
func errorCode(err error) (string, int) {
	var noChannel *types.NoSuchChannelError
	var underflow *types.LedgerUnderflowError
	switch {
	case errors.As(err, &underflow):
		return "LEDGER_UNDERFLOW", http.StatusConflict
	case errors.As(err, &noChannel):
		return "NO_SUCH_CHANNEL", http.StatusBadRequest
	case errors.Is(err, types.ErrNoFunds):
		return "NO_FUNDS", http.StatusBadRequest
	case errors.Is(err, types.ErrNotOnAllowList):
		return "NOT_ON_ALLOW_LIST", http.StatusBadRequest
	case errors.Is(err, types.ErrPacketValidation):
		return "PACKET_VALIDATION", http.StatusBadRequest
	case errors.Is(err, types.ErrOverflow):
		return "OVERFLOW", http.StatusBadRequest
	case errors.Is(err, types.ErrPaymentRejected):
		return "PAYMENT_REJECTED", http.StatusBadRequest
	case errors.Is(err, types.ErrInvalidDenom):
		return "INVALID_DENOM", http.StatusBadRequest
	case errors.Is(err, types.ErrInvalidAddress):
		return "INVALID_ADDRESS", http.StatusBadRequest
	case errors.Is(err, types.ErrInvalidChannel):
		return "INVALID_CHANNEL", http.StatusBadRequest
	case errors.Is(err, types.ErrInvalidRequest):
		return "INVALID_REQUEST", http.StatusBadRequest
	case errors.Is(err, types.ErrInsufficientFunds):
		return "INSUFFICIENT_FUNDS", http.StatusBadRequest
	case errors.Is(err, types.ErrUnauthorized):
		return "UNAUTHORIZED", http.StatusForbidden
	case errors.Is(err, types.ErrNotFound):
		return "NOT_FOUND", http.StatusNotFound
	}
	return "INTERNAL", http.StatusInternalServerError
}

func responseError(w http.ResponseWriter, err error) {
	code, status := errorCode(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		zap.L().Error("request failed", zap.Error(err))
		msg = "internal error"
	}
	responseJSON(w, &APIResponse{
		Status:  "error",
		Code:    code,
		Message: msg,
	}, status)
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AlexZinkM/coinmaker/internal/failure"
	"github.com/AlexZinkM/coinmaker/internal/model"
	"github.com/AlexZinkM/coinmaker/internal/session"
	"github.com/AlexZinkM/coinmaker/internal/token"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error(), Code: string(failure.KindOf(err))})
}

// writeFailure picks the status code from the failure kind.
func writeFailure(w http.ResponseWriter, err error) {
	writeError(w, statusOf(err), err)
}

func statusOf(err error) int {
	if errors.Is(err, session.ErrConnectInProgress) || errors.Is(err, token.ErrSubmissionInProgress) {
		return http.StatusConflict
	}
	switch failure.KindOf(err) {
	case failure.Validation:
		return http.StatusBadRequest
	case failure.InsufficientBalance:
		return http.StatusPaymentRequired
	case failure.UserRejected:
		return http.StatusForbidden
	case failure.PendingMobileRedirect:
		return http.StatusAccepted
	case failure.NotInstalled:
		return http.StatusServiceUnavailable
	case failure.Timeout:
		return http.StatusGatewayTimeout
	case failure.Backend, failure.Ledger, failure.Wallet:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed. Should be "+method, http.StatusMethodNotAllowed)
		return false
	}
	return true
}

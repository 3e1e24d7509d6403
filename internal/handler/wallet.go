package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/AlexZinkM/coinmaker/internal/common"
	"github.com/AlexZinkM/coinmaker/internal/model"
)

// SessionService is the wallet session as seen by the API.
type SessionService interface {
	Snapshot() model.WalletSession
	Connect(ctx context.Context) (model.WalletSession, error)
	Disconnect(ctx context.Context) (model.WalletSession, error)
	NotifyVisible()
	VerifyOwnership(ctx context.Context, message, signature string) error
}

// BalanceService reads the connected wallet's balance.
type BalanceService interface {
	Balance(ctx context.Context) (uint64, error)
}

// WalletHandler serves the wallet session endpoints
type WalletHandler struct {
	session SessionService
	balance BalanceService
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(session SessionService, balance BalanceService) *WalletHandler {
	return &WalletHandler{session: session, balance: balance}
}

// Session handles GET /wallet/session
// @Summary      Get wallet session
// @Description  Returns the current wallet connection state
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.WalletSession
// @Router       /wallet/session [get]
func (h *WalletHandler) Session(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, h.session.Snapshot())
}

// Connect handles POST /wallet/connect
// @Summary      Connect wallet
// @Description  Requests authorization from the wallet. On mobile without the wallet app this returns 202 with a pending redirect.
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.WalletSession
// @Failure      202  {object}  model.ErrorResponse
// @Failure      403  {object}  model.ErrorResponse
// @Failure      409  {object}  model.ErrorResponse
// @Router       /wallet/connect [post]
func (h *WalletHandler) Connect(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	s, err := h.session.Connect(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// Disconnect handles POST /wallet/disconnect
// @Summary      Disconnect wallet
// @Description  Unregisters the wallet with the backend and revokes the authorization
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.WalletSession
// @Router       /wallet/disconnect [post]
func (h *WalletHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	s, err := h.session.Disconnect(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// Visible handles POST /wallet/visible
// @Summary      Client visible again
// @Description  Schedules a wallet re-check, for clients returning from the wallet app
// @Tags         wallet
// @Success      202
// @Router       /wallet/visible [post]
func (h *WalletHandler) Visible(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	h.session.NotifyVisible()
	w.WriteHeader(http.StatusAccepted)
}

// Balance handles GET /wallet/balance
// @Summary      Get wallet balance
// @Description  Gets the SOL balance of the connected wallet
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.BalanceResponse
// @Failure      400  {object}  model.ErrorResponse
// @Router       /wallet/balance [get]
func (h *WalletHandler) Balance(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	lamports, err := h.balance.Balance(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.BalanceResponse{
		Address:  h.session.Snapshot().Address,
		Lamports: lamports,
		SOL:      common.DisplaySOL(lamports),
	})
}

// Verify handles POST /wallet/verify
// @Summary      Verify wallet ownership
// @Description  Asks the backend to verify a message signed by the connected wallet
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.VerifyOwnershipRequest  true  "Signed message"
// @Success      200      {object}  model.VerifyResult
// @Failure      502      {object}  model.ErrorResponse
// @Router       /wallet/verify [post]
func (h *WalletHandler) Verify(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	var req model.VerifyOwnershipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.session.VerifyOwnership(r.Context(), req.Message, req.Signature); err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.VerifyResult{Verified: true})
}

package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/AlexZinkM/coinmaker/internal/model"

	"github.com/shopspring/decimal"
)

const maxLogoSize = 5 << 20

// TokenService is the creation wizard as seen by the API.
type TokenService interface {
	Draft() model.TokenDraft
	UpdateDraft(d model.TokenDraft) error
	Cost() decimal.Decimal
	PrepareMint() (string, error)
	Submit(ctx context.Context) (*model.CreateResponse, error)
	Progress() model.ProgressResponse
}

// TokenHandler serves the token creation endpoints
type TokenHandler struct {
	wizard TokenService
}

// NewTokenHandler creates a new TokenHandler
func NewTokenHandler(wizard TokenService) *TokenHandler {
	return &TokenHandler{wizard: wizard}
}

// Draft handles GET and PUT /token/draft
// @Summary      Get or replace the token draft
// @Description  GET returns the draft, PUT replaces it. The logo is set with POST /token/logo and kept across PUTs.
// @Tags         token
// @Accept       json
// @Produce      json
// @Param        request  body      model.TokenDraft  false  "Draft (PUT only)"
// @Success      200      {object}  model.TokenDraft
// @Failure      409      {object}  model.ErrorResponse
// @Router       /token/draft [get]
// @Router       /token/draft [put]
func (h *TokenHandler) Draft(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.wizard.Draft())
	case http.MethodPut:
		var d model.TokenDraft
		if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		d.Logo = h.wizard.Draft().Logo
		if err := h.wizard.UpdateDraft(d); err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, http.StatusOK, h.wizard.Draft())
	default:
		http.Error(w, "Method not allowed. Should be GET or PUT", http.StatusMethodNotAllowed)
	}
}

// Logo handles POST /token/logo
// @Summary      Set the token logo
// @Description  Stores the uploaded image (multipart field "file") in the draft
// @Tags         token
// @Accept       mpfd
// @Produce      json
// @Param        file  formData  file  true  "Logo image"
// @Success      200   {object}  model.TokenDraft
// @Failure      400   {object}  model.ErrorResponse
// @Router       /token/logo [post]
func (h *TokenHandler) Logo(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxLogoSize+1<<10)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("failed to read logo: %w", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxLogoSize+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("failed to read logo: %w", err))
		return
	}
	if len(data) > maxLogoSize {
		writeError(w, http.StatusBadRequest, fmt.Errorf("logo must be at most %d bytes", maxLogoSize))
		return
	}

	d := h.wizard.Draft()
	d.Logo = &model.LogoFile{Name: header.Filename, Data: data}
	if err := h.wizard.UpdateDraft(d); err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.wizard.Draft())
}

// Cost handles GET /token/cost
// @Summary      Estimate creation cost
// @Description  Advisory SOL total for the current draft
// @Tags         token
// @Produce      json
// @Success      200  {object}  model.CostResponse
// @Router       /token/cost [get]
func (h *TokenHandler) Cost(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, model.CostResponse{TotalSOL: h.wizard.Cost().StringFixed(2)})
}

// Mint handles POST /token/mint
// @Summary      Prepare mint address
// @Description  Generates the mint keypair for the draft if needed and returns its address
// @Tags         token
// @Produce      json
// @Success      200  {object}  model.MintResponse
// @Router       /token/mint [post]
func (h *TokenHandler) Mint(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	addr, err := h.wizard.PrepareMint()
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.MintResponse{MintAddress: addr})
}

// Create handles POST /token/create
// @Summary      Create token
// @Description  Pays the service fee, uploads the logo and submits the mint transaction. A failed request can be retried without paying the fee again.
// @Tags         token
// @Produce      json
// @Success      200  {object}  model.CreateResponse
// @Failure      400  {object}  model.ErrorResponse
// @Failure      402  {object}  model.ErrorResponse
// @Failure      409  {object}  model.ErrorResponse
// @Failure      502  {object}  model.ErrorResponse
// @Router       /token/create [post]
func (h *TokenHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	// A stage must finish even if the client goes away.
	res, err := h.wizard.Submit(context.WithoutCancel(r.Context()))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Progress handles GET /token/progress
// @Summary      Get creation progress
// @Description  Returns per-stage progress of the current or last submission
// @Tags         token
// @Produce      json
// @Success      200  {object}  model.ProgressResponse
// @Router       /token/progress [get]
func (h *TokenHandler) Progress(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, h.wizard.Progress())
}

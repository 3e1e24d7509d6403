package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AlexZinkM/coinmaker/internal/failure"
	"github.com/AlexZinkM/coinmaker/internal/logging"
	"github.com/AlexZinkM/coinmaker/internal/model"
	"github.com/AlexZinkM/coinmaker/internal/session"
	"github.com/AlexZinkM/coinmaker/internal/token"
	"github.com/AlexZinkM/coinmaker/internal/wallet"
	"github.com/AlexZinkM/coinmaker/internal/wallet/wallettest"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ledgerStub struct{ lamports uint64 }

func (l ledgerStub) Balance(context.Context, solana.PublicKey) (uint64, error) {
	return l.lamports, nil
}

func newWalletHandler(t *testing.T, env wallet.Environment) *WalletHandler {
	t.Helper()
	opts := wallet.DefaultOptions()
	opts.DetectTimeout = 10 * time.Millisecond
	opts.MobileDetectTimeout = 10 * time.Millisecond
	opts.RedirectRecheckDelay = time.Millisecond
	adapter := wallet.NewAdapter(env, ledgerStub{lamports: 1_500_000_000}, opts, logging.Discard())
	ctrl := session.NewController(adapter, nil, session.DefaultOptions(), logging.Discard())
	t.Cleanup(ctrl.Close)
	return NewWalletHandler(ctrl, adapter)
}

func do(h http.HandlerFunc, method, target string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestWalletConnectAndBalance(t *testing.T) {
	p := wallettest.NewProvider()
	h := newWalletHandler(t, wallettest.NewEnvironment(wallettest.DesktopUA, "https://coinmaker.app", p))

	rec := do(h.Session, http.MethodGet, "/wallet/session", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var s model.WalletSession
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
	assert.Equal(t, model.SessionUnknown, s.Status)

	rec = do(h.Balance, http.MethodGet, "/wallet/balance", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(h.Connect, http.MethodPost, "/wallet/connect", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
	assert.Equal(t, p.Address(), s.Address)

	rec = do(h.Balance, http.MethodGet, "/wallet/balance", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var b model.BalanceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	assert.Equal(t, "1.5", b.SOL)
	assert.Equal(t, p.Address(), b.Address)

	rec = do(h.Disconnect, http.MethodPost, "/wallet/disconnect", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
	assert.Equal(t, model.SessionInstalledDisconnected, s.Status)
}

func TestWalletConnectMobileRedirect(t *testing.T) {
	env := wallettest.NewEnvironment(wallettest.MobileUA, "https://coinmaker.app", nil)
	h := newWalletHandler(t, env)

	rec := do(h.Connect, http.MethodPost, "/wallet/connect", nil)
	require.Equal(t, http.StatusAccepted, rec.Code)
	var e model.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	assert.Equal(t, string(failure.PendingMobileRedirect), e.Code)
	assert.Len(t, env.Opened(), 1)
}

func TestWalletConnectProviderFailure(t *testing.T) {
	p := wallettest.NewProvider()
	p.ConnectErr = errors.New("keystore is locked")
	h := newWalletHandler(t, wallettest.NewEnvironment(wallettest.DesktopUA, "https://coinmaker.app", p))

	rec := do(h.Connect, http.MethodPost, "/wallet/connect", nil)
	require.Equal(t, http.StatusBadGateway, rec.Code)
	var e model.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	assert.Equal(t, string(failure.Wallet), e.Code)
	assert.Equal(t, "keystore is locked", e.Error)
}

func TestWalletMethodNotAllowed(t *testing.T) {
	h := newWalletHandler(t, wallettest.NewEnvironment(wallettest.DesktopUA, "", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, do(h.Connect, http.MethodGet, "/wallet/connect", nil).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(h.Session, http.MethodPost, "/wallet/session", nil).Code)
	assert.Equal(t, http.StatusAccepted, do(h.Visible, http.MethodPost, "/wallet/visible", nil).Code)
}

type tokenStub struct {
	draft     model.TokenDraft
	submitErr error
	submits   int
}

func (s *tokenStub) Draft() model.TokenDraft { return s.draft.Clone() }

func (s *tokenStub) UpdateDraft(d model.TokenDraft) error {
	s.draft = d
	return nil
}

func (s *tokenStub) Cost() decimal.Decimal { return token.EstimateCost(s.draft) }

func (s *tokenStub) PrepareMint() (string, error) { return "Mint111", nil }

func (s *tokenStub) Submit(ctx context.Context) (*model.CreateResponse, error) {
	s.submits++
	if s.submitErr != nil {
		return nil, s.submitErr
	}
	return &model.CreateResponse{MintAddress: "Mint111", Progress: model.NewSubmissionProgress()}, nil
}

func (s *tokenStub) Progress() model.ProgressResponse {
	return model.ProgressResponse{Progress: model.NewSubmissionProgress()}
}

func TestTokenDraftKeepsLogo(t *testing.T) {
	stub := &tokenStub{draft: model.NewTokenDraft()}
	h := NewTokenHandler(stub)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "logo.png")
	require.NoError(t, err)
	part.Write([]byte("png"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/token/logo", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.Logo(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, stub.draft.Logo)

	d := model.NewTokenDraft()
	d.Name = "Coin"
	d.Symbol = "CN"
	raw, err := json.Marshal(d)
	require.NoError(t, err)

	rec = do(h.Draft, http.MethodPut, "/token/draft", raw)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Coin", stub.draft.Name)
	require.NotNil(t, stub.draft.Logo)
	assert.Equal(t, []byte("png"), stub.draft.Logo.Data)

	rec = do(h.Draft, http.MethodGet, "/token/draft", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"logo":{"name":"logo.png"}`)
}

func TestTokenCost(t *testing.T) {
	h := NewTokenHandler(&tokenStub{draft: model.NewTokenDraft()})
	rec := do(h.Cost, http.MethodGet, "/token/cost", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"totalSol":"0.40"}`, rec.Body.String())
}

func TestTokenCreateStatusCodes(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{nil, http.StatusOK},
		{failure.New(failure.Validation, "Please fill in token name and symbol"), http.StatusBadRequest},
		{failure.New(failure.InsufficientBalance, "Insufficient SOL balance"), http.StatusPaymentRequired},
		{failure.New(failure.Backend, "rate limited"), http.StatusBadGateway},
		{token.ErrSubmissionInProgress, http.StatusConflict},
	}
	for _, tt := range tests {
		h := NewTokenHandler(&tokenStub{submitErr: tt.err})
		rec := do(h.Create, http.MethodPost, "/token/create", nil)
		assert.Equal(t, tt.code, rec.Code)
		if tt.err != nil {
			var e model.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
			assert.Equal(t, tt.err.Error(), e.Error)
		}
	}
}

func TestTokenMintAndProgress(t *testing.T) {
	h := NewTokenHandler(&tokenStub{})
	rec := do(h.Mint, http.MethodPost, "/token/mint", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"mintAddress":"Mint111"}`, rec.Body.String())

	rec = do(h.Progress, http.MethodGet, "/token/progress", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var p model.ProgressResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Len(t, p.Progress.Stages, 4)
}

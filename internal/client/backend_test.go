package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AlexZinkM/coinmaker/internal/failure"
	"github.com/AlexZinkM/coinmaker/internal/logging"
	"github.com/AlexZinkM/coinmaker/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBackend(t *testing.T, handler http.HandlerFunc) *BackendClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewBackendClient(srv.URL+"/api/", 5*time.Second, logging.Discard())
}

func TestFeeTransactionReadsEnvelopeData(t *testing.T) {
	c := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/token/fee-transaction", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		var req model.WalletRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Wallet1", req.Wallet)
		w.Write([]byte(`{"success":true,"data":{"serializedTransaction":"AQID","feeAmount":"0.1"}}`))
	})

	fee, err := c.FeeTransaction(context.Background(), "Wallet1")
	require.NoError(t, err)
	assert.Equal(t, "AQID", fee.SerializedTransaction)
	assert.Equal(t, "0.1", fee.FeeAmount)
}

func TestCreateTokenReadsFlatBody(t *testing.T) {
	c := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		var req model.CreateTokenRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "DOGE", req.Symbol)
		assert.Equal(t, "sigA", req.FeeTxSignature)
		w.Write([]byte(`{"success":true,"serializedTransaction":"AQID","mintAddress":"Mint1","tokenId":7}`))
	})

	out, err := c.CreateToken(context.Background(), model.CreateTokenRequest{Symbol: "DOGE", FeeTxSignature: "sigA"})
	require.NoError(t, err)
	assert.Equal(t, "AQID", out.SerializedTransaction)
	assert.Equal(t, int64(7), out.TokenID)
}

func TestEnvelopeFailureSurfacesErrorVerbatim(t *testing.T) {
	c := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"error":"rate limited"}`))
	})

	_, err := c.CreateToken(context.Background(), model.CreateTokenRequest{})
	require.Error(t, err)
	assert.True(t, failure.Is(err, failure.Backend))
	assert.Equal(t, "rate limited", err.Error())
}

func TestHTTPErrorWithoutBody(t *testing.T) {
	c := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	err := c.UnregisterWallet(context.Background())
	require.Error(t, err)
	assert.Equal(t, "HTTP error! status: 502", err.Error())
}

func TestHTTPErrorWithBody(t *testing.T) {
	c := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"slow down"}`))
	})

	_, err := c.RegisterWallet(context.Background(), "Wallet1")
	require.Error(t, err)
	assert.Equal(t, "slow down", err.Error())
}

func TestRegisterWalletDefaultsAddress(t *testing.T) {
	c := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"message":"ok"}`))
	})

	out, err := c.RegisterWallet(context.Background(), "Wallet1")
	require.NoError(t, err)
	assert.Equal(t, "Wallet1", out.Wallet)
	assert.Equal(t, "ok", out.Message)
}

func TestUploadLogoSendsMultipart(t *testing.T) {
	c := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "logo.png", hdr.Filename)
		assert.Equal(t, []byte("png-bytes"), data)
		w.Write([]byte(`{"success":true,"url":"ipfs://bafy"}`))
	})

	uri, err := c.UploadLogo(context.Background(), model.LogoFile{Name: "logo.png", Data: []byte("png-bytes")})
	require.NoError(t, err)
	assert.Equal(t, "ipfs://bafy", uri)
}

func TestVerifyWalletRequiresVerifiedFlag(t *testing.T) {
	verified := false
	c := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": true, "verified": verified})
	})

	err := c.VerifyWallet(context.Background(), model.VerifyRequest{Wallet: "w"})
	require.Error(t, err)
	assert.Equal(t, "Signature verification failed", err.Error())

	verified = true
	require.NoError(t, c.VerifyWallet(context.Background(), model.VerifyRequest{Wallet: "w"}))
}

func TestNetworkErrorIsBackendFailure(t *testing.T) {
	c := NewBackendClient("http://127.0.0.1:1", time.Second, logging.Discard())

	_, err := c.FeeTransaction(context.Background(), "w")
	require.Error(t, err)
	assert.True(t, failure.Is(err, failure.Backend))
}

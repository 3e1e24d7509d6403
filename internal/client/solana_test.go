package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rpcCall struct {
	ID     json.RawMessage `json:"id"`
	Method string          `json:"method"`
}

// newRPCServer answers JSON-RPC calls with results from respond, keyed by method.
func newRPCServer(t *testing.T, respond func(method string) any) *SolanaClient {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var call rpcCall
		require.NoError(t, json.NewDecoder(r.Body).Decode(&call))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"id":      call.ID,
			"result":  respond(call.Method),
		})
	}))
	t.Cleanup(srv.Close)

	c := NewSolanaClient(srv.URL, time.Second)
	c.pollInterval = 10 * time.Millisecond
	return c
}

func TestBalance(t *testing.T) {
	c := newRPCServer(t, func(method string) any {
		assert.Equal(t, "getBalance", method)
		return map[string]any{"context": map[string]any{"slot": 1}, "value": 19_000_000}
	})

	lamports, err := c.Balance(context.Background(), solana.NewWallet().PublicKey())
	require.NoError(t, err)
	assert.Equal(t, uint64(19_000_000), lamports)
}

func TestLatestBlockhash(t *testing.T) {
	want := solana.Hash{9, 9, 9}
	c := newRPCServer(t, func(method string) any {
		return map[string]any{
			"context": map[string]any{"slot": 1},
			"value":   map[string]any{"blockhash": want.String(), "lastValidBlockHeight": 100},
		}
	})

	got, err := c.LatestBlockhash(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSendRaw(t *testing.T) {
	want := solana.Signature{7, 7, 7}
	c := newRPCServer(t, func(method string) any {
		assert.Equal(t, "sendTransaction", method)
		return want.String()
	})

	got, err := c.SendRaw(context.Background(), []byte{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestConfirmPollsUntilConfirmed(t *testing.T) {
	var calls atomic.Int32
	c := newRPCServer(t, func(method string) any {
		n := calls.Add(1)
		status := any(nil)
		if n >= 3 {
			status = map[string]any{"slot": 5, "confirmations": 1, "err": nil, "confirmationStatus": "confirmed"}
		}
		return map[string]any{"context": map[string]any{"slot": 5}, "value": []any{status}}
	})

	require.NoError(t, c.Confirm(context.Background(), solana.Signature{1}))
	assert.GreaterOrEqual(t, calls.Load(), int32(3))
}

func TestConfirmReportsOnChainError(t *testing.T) {
	c := newRPCServer(t, func(method string) any {
		status := map[string]any{"slot": 5, "err": map[string]any{"InstructionError": []any{0, "Custom"}}, "confirmationStatus": "processed"}
		return map[string]any{"context": map[string]any{"slot": 5}, "value": []any{status}}
	})

	err := c.Confirm(context.Background(), solana.Signature{1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed")
}

func TestConfirmTimesOut(t *testing.T) {
	c := newRPCServer(t, func(method string) any {
		return map[string]any{"context": map[string]any{"slot": 5}, "value": []any{nil}}
	})
	c.confirmTimeout = 50 * time.Millisecond

	err := c.Confirm(context.Background(), solana.Signature{1})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

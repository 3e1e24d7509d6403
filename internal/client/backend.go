package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/AlexZinkM/coinmaker/internal/failure"
	"github.com/AlexZinkM/coinmaker/internal/model"

	"github.com/sirupsen/logrus"
)

const maxResponseBytes = 4 << 20

// BackendClient is a client for the token service REST API
type BackendClient struct {
	baseURL string
	client  *http.Client
	log     *logrus.Entry
}

// NewBackendClient creates a new backend client
func NewBackendClient(baseURL string, timeout time.Duration, log *logrus.Entry) *BackendClient {
	return &BackendClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// RegisterWallet handles POST /wallet/connect
func (c *BackendClient) RegisterWallet(ctx context.Context, wallet string) (*model.WalletConnectResult, error) {
	var out model.WalletConnectResult
	if err := c.postJSON(ctx, "/wallet/connect", model.WalletRequest{Wallet: wallet}, &out); err != nil {
		return nil, err
	}
	if out.Wallet == "" {
		out.Wallet = wallet
	}
	return &out, nil
}

// UnregisterWallet handles POST /wallet/disconnect
func (c *BackendClient) UnregisterWallet(ctx context.Context) error {
	return c.postJSON(ctx, "/wallet/disconnect", nil, nil)
}

// VerifyWallet handles POST /wallet/verify
func (c *BackendClient) VerifyWallet(ctx context.Context, req model.VerifyRequest) error {
	var out model.VerifyResult
	if err := c.postJSON(ctx, "/wallet/verify", req, &out); err != nil {
		return err
	}
	if !out.Verified {
		return failure.New(failure.Backend, "Signature verification failed")
	}
	return nil
}

// FeeTransaction handles POST /token/fee-transaction
func (c *BackendClient) FeeTransaction(ctx context.Context, wallet string) (*model.FeeTransaction, error) {
	var out model.FeeTransaction
	if err := c.postJSON(ctx, "/token/fee-transaction", model.WalletRequest{Wallet: wallet}, &out); err != nil {
		return nil, err
	}
	if out.SerializedTransaction == "" {
		return nil, failure.New(failure.Backend, "Failed to get fee transaction")
	}
	return &out, nil
}

// UploadLogo handles POST /upload/ipfs and returns the content URI
func (c *BackendClient) UploadLogo(ctx context.Context, logo model.LogoFile) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", logo.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(logo.Data); err != nil {
		return "", fmt.Errorf("failed to write form file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("failed to close multipart body: %w", err)
	}

	var out model.UploadResult
	if err := c.do(ctx, "/upload/ipfs", &body, mw.FormDataContentType(), &out); err != nil {
		return "", err
	}
	if out.URL == "" {
		return "", failure.New(failure.Backend, "Failed to upload logo")
	}
	return out.URL, nil
}

// CreateToken handles POST /token/create
func (c *BackendClient) CreateToken(ctx context.Context, req model.CreateTokenRequest) (*model.CreateTokenResult, error) {
	var out model.CreateTokenResult
	if err := c.postJSON(ctx, "/token/create", req, &out); err != nil {
		return nil, err
	}
	if out.SerializedTransaction == "" {
		return nil, failure.New(failure.Backend, "Failed to create token")
	}
	return &out, nil
}

func (c *BackendClient) postJSON(ctx context.Context, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	return c.do(ctx, path, body, "application/json", out)
}

// do posts to path and unpacks the {success, data, error} envelope into out.
// Bodies without a data field are decoded flat, the way older endpoints respond.
func (c *BackendClient) do(ctx context.Context, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	c.log.WithField("path", path).Debug("backend request")

	resp, err := c.client.Do(req)
	if err != nil {
		return failure.Wrap(failure.Backend, "Network error occurred", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return failure.Wrap(failure.Backend, "failed to read backend response", err)
	}

	var envelope struct {
		Success *bool           `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   string          `json:"error"`
		Message string          `json:"message"`
	}
	decodeErr := json.Unmarshal(raw, &envelope)

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	if !ok {
		msg := envelope.Error
		if msg == "" {
			msg = fmt.Sprintf("HTTP error! status: %d", resp.StatusCode)
		}
		c.log.WithFields(logrus.Fields{"path": path, "status": resp.StatusCode}).Warn("backend request failed")
		return failure.New(failure.Backend, msg)
	}
	if decodeErr != nil {
		return failure.Wrap(failure.Backend, "invalid backend response", decodeErr)
	}
	if envelope.Success != nil && !*envelope.Success {
		msg := envelope.Error
		if msg == "" {
			msg = envelope.Message
		}
		if msg == "" {
			msg = "backend request failed"
		}
		return failure.New(failure.Backend, msg)
	}

	if out == nil {
		return nil
	}
	payload := []byte(envelope.Data)
	if len(payload) == 0 || string(payload) == "null" {
		payload = raw
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return failure.Wrap(failure.Backend, "invalid backend response", err)
	}
	return nil
}

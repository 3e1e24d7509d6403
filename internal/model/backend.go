package model

// Envelope is the response shape of every backend endpoint
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// WalletRequest is the body of POST /wallet/connect and /token/fee-transaction
type WalletRequest struct {
	Wallet string `json:"wallet"`
}

// WalletConnectResult is data of POST /wallet/connect
type WalletConnectResult struct {
	Wallet  string `json:"wallet,omitempty"`
	Message string `json:"message,omitempty"`
}

// VerifyRequest is the body of POST /wallet/verify
type VerifyRequest struct {
	Message   string `json:"message"`
	Signature string `json:"signature"`
	Wallet    string `json:"wallet"`
}

// VerifyResult is data of POST /wallet/verify
type VerifyResult struct {
	Verified bool `json:"verified"`
}

// FeeTransaction is data of POST /token/fee-transaction
type FeeTransaction struct {
	SerializedTransaction string `json:"serializedTransaction"`
	LastValidBlockHeight  uint64 `json:"lastValidBlockHeight,omitempty"`
	FeeAmount             string `json:"feeAmount,omitempty"`
}

// UploadResult is data of POST /upload/ipfs
type UploadResult struct {
	URL string `json:"url"`
}

// CreateTokenRequest is the body of POST /token/create
type CreateTokenRequest struct {
	Wallet         string `json:"wallet"`
	TokenName      string `json:"tokenName"`
	Symbol         string `json:"symbol"`
	Supply         string `json:"supply"`
	Decimals       int    `json:"decimals"`
	Description    string `json:"description,omitempty"`
	LogoURI        string `json:"logoUri,omitempty"`
	Website        string `json:"website,omitempty"`
	Twitter        string `json:"twitter,omitempty"`
	Telegram       string `json:"telegram,omitempty"`
	Discord        string `json:"discord,omitempty"`
	RevokeFreeze   bool   `json:"revokeFreeze,omitempty"`
	RevokeMint     bool   `json:"revokeMint,omitempty"`
	RevokeUpdate   bool   `json:"revokeUpdate,omitempty"`
	FeeTxSignature string `json:"feeTxSignature"`
	MintPublicKey  string `json:"mintPublicKey"`
}

// CreateTokenResult is data of POST /token/create
type CreateTokenResult struct {
	SerializedTransaction string `json:"serializedTransaction"`
	LastValidBlockHeight  uint64 `json:"lastValidBlockHeight,omitempty"`
	MintAddress           string `json:"mintAddress,omitempty"`
	TokenID               int64  `json:"tokenId,omitempty"`
	FeePaid               bool   `json:"feePaid,omitempty"`
}

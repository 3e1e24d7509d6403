package model

// CreateResponse represents response for POST /token/create
type CreateResponse struct {
	AttemptID    string             `json:"attemptId"`
	MintAddress  string             `json:"mintAddress"`
	Signature    string             `json:"signature"`
	FeeSignature string             `json:"feeSignature"`
	FeeAmount    string             `json:"feeAmount,omitempty"`
	Progress     SubmissionProgress `json:"progress"`
}

// ProgressResponse represents response for GET /token/progress
type ProgressResponse struct {
	Processing  bool               `json:"processing"`
	Status      string             `json:"status,omitempty"`
	Error       string             `json:"error,omitempty"`
	MintAddress string             `json:"mintAddress,omitempty"`
	Progress    SubmissionProgress `json:"progress"`
}

// CostResponse represents response for GET /token/cost
type CostResponse struct {
	TotalSOL string `json:"totalSol"`
}

// MintResponse represents response for POST /token/mint
type MintResponse struct {
	MintAddress string `json:"mintAddress"`
}

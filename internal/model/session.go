package model

// SessionStatus is the wallet connection state
type SessionStatus string

const (
	SessionUnknown               SessionStatus = "unknown"
	SessionNotInstalled          SessionStatus = "not_installed"
	SessionInstalledDisconnected SessionStatus = "installed_disconnected"
	SessionConnected             SessionStatus = "connected"
)

// Valid reports whether s is one of the four defined states.
func (s SessionStatus) Valid() bool {
	switch s {
	case SessionUnknown, SessionNotInstalled, SessionInstalledDisconnected, SessionConnected:
		return true
	}
	return false
}

// WalletSession is the single authoritative wallet state.
// Returned by value from session.Controller.Snapshot, never shared.
type WalletSession struct {
	Status     SessionStatus `json:"status"`
	Address    string        `json:"address,omitempty"`
	Connecting bool          `json:"connecting"`
	Error      string        `json:"error,omitempty"`
}

// Connected reports whether the session has an authorized address.
func (s WalletSession) Connected() bool {
	return s.Status == SessionConnected && s.Address != ""
}

// VerifyOwnershipRequest is the body of POST /wallet/verify on the local API
type VerifyOwnershipRequest struct {
	Message   string `json:"message"`
	Signature string `json:"signature"`
}

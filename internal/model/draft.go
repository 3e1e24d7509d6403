package model

const (
	DefaultDecimals = 9
	DefaultSupply   = "1000000000"
)

// LogoFile is an image picked for the token
type LogoFile struct {
	Name string `json:"name"`
	Data []byte `json:"-"`
}

// TokenDraft holds everything the user entered in the creation wizard
type TokenDraft struct {
	// Token info
	Name          string    `json:"name"`
	Symbol        string    `json:"symbol"`
	Logo          *LogoFile `json:"logo,omitempty"`
	OnChainName   bool      `json:"onChainName"`
	OnChainSymbol bool      `json:"onChainSymbol"`

	// Supply
	Decimals         int    `json:"decimals"`
	Supply           string `json:"supply"`
	Description      string `json:"description"`
	StoreDescription bool   `json:"storeDescription"`

	// Details
	EnableSocials bool   `json:"enableSocials"`
	Website       string `json:"website"`
	Twitter       string `json:"twitter"`
	Telegram      string `json:"telegram"`
	Discord       string `json:"discord"`
	ModifyCreator bool   `json:"modifyCreator"`
	CustomAddress bool   `json:"customAddress"`
	RevokeFreeze  bool   `json:"revokeFreeze"`
	RevokeMint    bool   `json:"revokeMint"`
	RevokeUpdate  bool   `json:"revokeUpdate"`
}

// NewTokenDraft returns the draft the wizard starts with.
func NewTokenDraft() TokenDraft {
	return TokenDraft{
		OnChainName:      true,
		OnChainSymbol:    true,
		Decimals:         DefaultDecimals,
		Supply:           DefaultSupply,
		StoreDescription: true,
		EnableSocials:    true,
		ModifyCreator:    true,
		CustomAddress:    true,
	}
}

// Clone returns a deep copy (the logo bytes are shared, they are never mutated).
func (d TokenDraft) Clone() TokenDraft {
	if d.Logo != nil {
		logo := *d.Logo
		d.Logo = &logo
	}
	return d
}

package keystore

import (
	"fmt"
	"io"

	"github.com/AlexZinkM/coinmaker/internal/wallet"

	"github.com/skip2/go-qrcode"
)

// Host is the wallet.Environment of a terminal process. Links are printed
// together with a QR code so a phone can open them.
type Host struct {
	userAgent string
	pageURL   string
	provider  *Provider
	out       io.Writer
}

// NewHost creates a host. provider may be nil when no keystore is configured.
func NewHost(userAgent, pageURL string, provider *Provider, out io.Writer) *Host {
	return &Host{userAgent: userAgent, pageURL: pageURL, provider: provider, out: out}
}

func (h *Host) UserAgent() string {
	return h.userAgent
}

func (h *Host) PageURL() string {
	return h.pageURL
}

func (h *Host) Provider() wallet.Provider {
	if h.provider == nil {
		return nil
	}
	return h.provider
}

func (h *Host) OpenURL(url string) error {
	qr, err := qrcode.New(url, qrcode.Low)
	if err != nil {
		return fmt.Errorf("failed to create QR code: %w", err)
	}
	_, err = fmt.Fprintf(h.out, "Open in Phantom:\n%s\n%s", url, qr.ToSmallString(false))
	return err
}

package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AlexZinkM/coinmaker/internal/failure"
	"github.com/AlexZinkM/coinmaker/internal/model"

	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"
)

// ErrNotConnected is returned by operations that need an authorized account.
var ErrNotConnected = failure.New(failure.Validation, "Wallet not connected")

// Options tunes the bounded detection polls
type Options struct {
	DetectTimeout        time.Duration
	DetectInterval       time.Duration
	MobileDetectTimeout  time.Duration
	MobileDetectInterval time.Duration
	RedirectRecheckDelay time.Duration
	RetryBaseDelay       time.Duration
}

// DefaultOptions returns the production timings.
func DefaultOptions() Options {
	return Options{
		DetectTimeout:        5 * time.Second,
		DetectInterval:       100 * time.Millisecond,
		MobileDetectTimeout:  3 * time.Second,
		MobileDetectInterval: 200 * time.Millisecond,
		RedirectRecheckDelay: 2 * time.Second,
		RetryBaseDelay:       time.Second,
	}
}

// ConnectOptions controls a connection attempt
type ConnectOptions struct {
	// OnlyIfTrusted connects silently or not at all.
	OnlyIfTrusted bool
	// AllowMobileRedirect lets a mobile connect hand off to the companion app.
	AllowMobileRedirect bool
}

// Detection is the result of Detect
type Detection struct {
	Platform  Platform            `json:"platform"`
	Installed bool                `json:"installed"`
	Status    model.SessionStatus `json:"status"`
}

// BalanceSource reads ledger balances
type BalanceSource interface {
	Balance(ctx context.Context, owner solana.PublicKey) (uint64, error)
}

// Adapter isolates every interaction with the injected wallet provider.
// Every error it returns is a *failure.Error.
type Adapter struct {
	env    Environment
	ledger BalanceSource
	opts   Options
	log    *logrus.Entry
}

// NewAdapter creates an adapter over env. ledger may be nil when balances are not needed.
func NewAdapter(env Environment, ledger BalanceSource, opts Options, log *logrus.Entry) *Adapter {
	return &Adapter{env: env, ledger: ledger, opts: opts, log: log}
}

// Platform classifies the host device.
func (a *Adapter) Platform() Platform {
	return DetectPlatform(a.env.UserAgent())
}

// Detect reports platform and provider state. It only reads.
func (a *Adapter) Detect() Detection {
	d := Detection{Platform: a.Platform(), Status: model.SessionNotInstalled}
	p := a.env.Provider()
	if p == nil {
		return d
	}
	d.Installed = true
	d.Status = model.SessionInstalledDisconnected
	if p.IsConnected() && p.PublicKey() != nil {
		d.Status = model.SessionConnected
	}
	return d
}

// Connect requests an authorized account from the provider.
func (a *Adapter) Connect(ctx context.Context, opts ConnectOptions) (solana.PublicKey, error) {
	if a.Platform() == PlatformMobile {
		return a.connectMobile(ctx, opts)
	}
	return a.connectDesktop(ctx, opts)
}

func (a *Adapter) connectDesktop(ctx context.Context, opts ConnectOptions) (solana.PublicKey, error) {
	p := a.waitForProvider(ctx, a.opts.DetectTimeout, a.opts.DetectInterval)
	if p == nil {
		if ctx.Err() != nil {
			return solana.PublicKey{}, failure.Wrap(failure.Timeout, "Timed out waiting for the wallet", ctx.Err())
		}
		return solana.PublicKey{}, failure.New(failure.NotInstalled,
			"Phantom wallet extension not detected. Please install it from https://phantom.app")
	}

	pk, err := a.connectProvider(ctx, p, opts.OnlyIfTrusted)
	if err != nil {
		return solana.PublicKey{}, normalize(err, "User rejected the connection request")
	}
	return pk, nil
}

func (a *Adapter) connectMobile(ctx context.Context, opts ConnectOptions) (solana.PublicKey, error) {
	// The provider may still be injecting if the user just came back from the app.
	if p := a.waitForProvider(ctx, a.opts.MobileDetectTimeout, a.opts.MobileDetectInterval); p != nil {
		pk, err := a.connectProvider(ctx, p, opts.OnlyIfTrusted)
		if err == nil {
			return pk, nil
		}
		if isUserRejection(err) || !opts.AllowMobileRedirect {
			return solana.PublicKey{}, normalize(err, "User rejected the connection request")
		}
		a.openDeepLink()
		return solana.PublicKey{}, failure.Wrap(failure.PendingMobileRedirect,
			"Please approve the connection in Phantom app", err)
	}

	if ctx.Err() != nil {
		return solana.PublicKey{}, failure.Wrap(failure.Timeout, "Timed out waiting for the wallet", ctx.Err())
	}
	if !opts.AllowMobileRedirect {
		return solana.PublicKey{}, failure.New(failure.NotInstalled,
			"Phantom app not detected. Please install Phantom from App Store or Play Store.")
	}

	a.openDeepLink()

	select {
	case <-ctx.Done():
		return solana.PublicKey{}, failure.Wrap(failure.Timeout, "Timed out waiting for the wallet", ctx.Err())
	case <-time.After(a.opts.RedirectRecheckDelay):
	}

	if p := a.env.Provider(); p != nil {
		pk, err := a.connectProvider(ctx, p, opts.OnlyIfTrusted)
		if err == nil {
			return pk, nil
		}
		return solana.PublicKey{}, failure.Wrap(failure.PendingMobileRedirect,
			"Please approve the connection in Phantom app and return to this page", err)
	}

	return solana.PublicKey{}, failure.New(failure.PendingMobileRedirect,
		"Opening Phantom app. Please approve the connection and return to this page.")
}

// connectProvider returns the provider's raw error, callers normalize it.
func (a *Adapter) connectProvider(ctx context.Context, p Provider, trusted bool) (solana.PublicKey, error) {
	if p.IsConnected() {
		if pk := p.PublicKey(); pk != nil {
			return *pk, nil
		}
	}
	pk, err := p.Connect(ctx, ProviderConnectOptions{OnlyIfTrusted: trusted})
	if err != nil {
		return solana.PublicKey{}, err
	}
	if pk == (solana.PublicKey{}) {
		return solana.PublicKey{}, errors.New("wallet returned an empty public key")
	}
	return pk, nil
}

// ConnectWithRetry retries Connect with exponential backoff. Rejections and
// pending redirects need the user and are returned at once.
func (a *Adapter) ConnectWithRetry(ctx context.Context, opts ConnectOptions, maxRetries int) (solana.PublicKey, error) {
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		pk, err := a.Connect(ctx, opts)
		if err == nil {
			return pk, nil
		}
		if failure.Is(err, failure.UserRejected) || failure.Is(err, failure.PendingMobileRedirect) {
			return solana.PublicKey{}, err
		}
		lastErr = err

		if i < maxRetries-1 {
			delay := a.opts.RetryBaseDelay * time.Duration(1<<i)
			a.log.WithFields(logrus.Fields{"attempt": i + 1, "delay": delay}).Debug("wallet connect failed, retrying")
			select {
			case <-ctx.Done():
				return solana.PublicKey{}, failure.Wrap(failure.Timeout, "Timed out connecting the wallet", ctx.Err())
			case <-time.After(delay):
			}
		}
	}

	return solana.PublicKey{}, failure.Wrap(failure.KindOf(lastErr),
		fmt.Sprintf("Failed to connect after %d attempts", maxRetries), lastErr)
}

// Disconnect revokes the authorization. It succeeds when already disconnected.
func (a *Adapter) Disconnect(ctx context.Context) error {
	p := a.env.Provider()
	if p == nil || !p.IsConnected() {
		return nil
	}
	if err := p.Disconnect(ctx); err != nil {
		return normalize(err, "Failed to disconnect wallet")
	}
	return nil
}

// CurrentAddress returns the authorized address, or "" when there is none.
func (a *Adapter) CurrentAddress() string {
	p := a.env.Provider()
	if p == nil || !p.IsConnected() {
		return ""
	}
	if pk := p.PublicKey(); pk != nil {
		return pk.String()
	}
	return ""
}

// Balance returns the lamport balance of the authorized address.
func (a *Adapter) Balance(ctx context.Context) (uint64, error) {
	addr := a.CurrentAddress()
	if addr == "" {
		return 0, ErrNotConnected
	}
	if a.ledger == nil {
		return 0, failure.New(failure.Ledger, "Balance check requires a ledger connection")
	}
	owner, err := solana.PublicKeyFromBase58(addr)
	if err != nil {
		return 0, failure.Wrap(failure.Ledger, "invalid wallet address", err)
	}
	lamports, err := a.ledger.Balance(ctx, owner)
	if err != nil {
		return 0, failure.Wrap(failure.Ledger, "Failed to get wallet balance", err)
	}
	return lamports, nil
}

// SignTransaction asks the provider to sign tx with the authorized account.
func (a *Adapter) SignTransaction(ctx context.Context, tx *solana.Transaction) (*solana.Transaction, error) {
	p := a.env.Provider()
	if p == nil || !p.IsConnected() || p.PublicKey() == nil {
		return nil, ErrNotConnected
	}
	signed, err := p.SignTransaction(ctx, tx)
	if err != nil {
		return nil, normalize(err, "User rejected the request")
	}
	return signed, nil
}

// SubscribeAccountChange forwards account changes to cb; "" means the account is gone.
func (a *Adapter) SubscribeAccountChange(cb func(address string)) *Subscription {
	sub := &Subscription{}
	p := a.env.Provider()
	if p == nil {
		return sub
	}
	p.On(EventAccountChanged, func(account *solana.PublicKey) {
		if !sub.Active() {
			return
		}
		if account == nil {
			cb("")
			return
		}
		cb(account.String())
	})
	p.On(EventDisconnect, func(*solana.PublicKey) {
		if sub.Active() {
			cb("")
		}
	})
	return sub
}

// DeepLink returns the companion-app link for the current page.
func (a *Adapter) DeepLink() string {
	return DeepLink(a.env.PageURL())
}

func (a *Adapter) openDeepLink() {
	link := a.DeepLink()
	ua := a.env.UserAgent()
	log := a.log.WithFields(logrus.Fields{"link": link, "ios": IsIOS(ua), "android": IsAndroid(ua)})
	if err := a.env.OpenURL(link); err != nil {
		log.WithError(err).Warn("failed to open wallet deep link")
		return
	}
	log.Info("opened wallet deep link")
}

func (a *Adapter) waitForProvider(ctx context.Context, timeout, interval time.Duration) Provider {
	if p := a.env.Provider(); p != nil {
		return p
	}
	if timeout <= 0 || interval <= 0 {
		return nil
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-deadline.C:
			return a.env.Provider()
		case <-ticker.C:
			if p := a.env.Provider(); p != nil {
				return p
			}
		}
	}
}

func isUserRejection(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Code == CodeUserRejected
}

// normalize maps a raw provider error onto the failure taxonomy.
func normalize(err error, rejectedMsg string) error {
	var fe *failure.Error
	if errors.As(err, &fe) {
		return fe
	}
	if isUserRejection(err) {
		return failure.Wrap(failure.UserRejected, rejectedMsg, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return failure.Wrap(failure.Timeout, "Wallet did not respond in time", err)
	}
	return failure.Wrap(failure.Wallet, err.Error(), err)
}

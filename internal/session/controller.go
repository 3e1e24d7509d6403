// Package session owns the single WalletSession and keeps it in step with the
// wallet adapter, the user's connect/disconnect requests and the backend.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/AlexZinkM/coinmaker/internal/model"
	"github.com/AlexZinkM/coinmaker/internal/wallet"

	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"
)

// ErrConnectInProgress is returned when Connect is called while another connect is outstanding.
var ErrConnectInProgress = errors.New("wallet connection already in progress")

// Wallet is the part of wallet.Adapter the controller drives.
type Wallet interface {
	Detect() wallet.Detection
	Connect(ctx context.Context, opts wallet.ConnectOptions) (solana.PublicKey, error)
	ConnectWithRetry(ctx context.Context, opts wallet.ConnectOptions, maxRetries int) (solana.PublicKey, error)
	Disconnect(ctx context.Context) error
	CurrentAddress() string
	SubscribeAccountChange(cb func(address string)) *wallet.Subscription
}

// Backend receives wallet registrations.
type Backend interface {
	RegisterWallet(ctx context.Context, wallet string) (*model.WalletConnectResult, error)
	UnregisterWallet(ctx context.Context) error
	VerifyWallet(ctx context.Context, req model.VerifyRequest) error
}

// Options tunes the mobile re-check schedule
type Options struct {
	InitialRecheckDelay    time.Duration
	PollInterval           time.Duration
	VisibilityRecheckDelay time.Duration
	// MobilePollLimit caps the periodic re-checks.
	MobilePollLimit int
	// ConnectRetries above 1 retries user-initiated connects with backoff.
	// The default of 1 answers the user after a single attempt.
	ConnectRetries int
}

// DefaultOptions returns the production schedule.
func DefaultOptions() Options {
	return Options{
		InitialRecheckDelay:    time.Second,
		PollInterval:           2 * time.Second,
		VisibilityRecheckDelay: 500 * time.Millisecond,
		MobilePollLimit:        150,
		ConnectRetries:         1,
	}
}

// Controller funnels every WalletSession mutation.
type Controller struct {
	wallet  Wallet
	backend Backend
	opts    Options
	log     *logrus.Entry

	mu          sync.Mutex
	session     model.WalletSession
	initialized bool
	closed      bool
	// rechecking guards silent re-checks; Connecting is only set by the user's Connect.
	rechecking bool
	sub        *wallet.Subscription

	bg     context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewController creates a controller in the unknown state. backend may be nil.
func NewController(w Wallet, backend Backend, opts Options, log *logrus.Entry) *Controller {
	bg, cancel := context.WithCancel(context.Background())
	return &Controller{
		wallet:  w,
		backend: backend,
		opts:    opts,
		log:     log,
		session: model.WalletSession{Status: model.SessionUnknown},
		bg:      bg,
		cancel:  cancel,
	}
}

// Snapshot returns a copy of the current session.
func (c *Controller) Snapshot() model.WalletSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Initialize runs once: it subscribes to account changes and attempts a silent
// reconnect. On mobile it also starts the bounded re-check loop.
func (c *Controller) Initialize(ctx context.Context) {
	c.mu.Lock()
	if c.initialized || c.closed {
		c.mu.Unlock()
		return
	}
	c.initialized = true
	c.mu.Unlock()

	sub := c.wallet.SubscribeAccountChange(c.onAccountChange)
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		sub.Cancel()
		return
	}
	c.sub = sub
	c.mu.Unlock()

	c.recheck(ctx)

	if c.wallet.Detect().Platform == wallet.PlatformMobile {
		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			return
		}
		c.wg.Add(1)
		c.mu.Unlock()
		go c.pollMobile()
	}
}

// Connect asks the wallet for authorization and records the result.
func (c *Controller) Connect(ctx context.Context) (model.WalletSession, error) {
	c.mu.Lock()
	if c.session.Connecting {
		c.mu.Unlock()
		return c.Snapshot(), ErrConnectInProgress
	}
	if c.session.Connected() {
		s := c.session
		c.mu.Unlock()
		return s, nil
	}
	c.session.Connecting = true
	c.session.Error = ""
	c.mu.Unlock()

	pk, err := c.connect(ctx)
	if err != nil {
		d := c.wallet.Detect()
		c.mu.Lock()
		c.session.Connecting = false
		c.session.Error = err.Error()
		c.session.Address = ""
		c.session.Status = disconnectedStatus(d)
		s := c.session
		c.mu.Unlock()

		c.log.WithError(err).WithField("status", s.Status).Warn("wallet connect failed")
		return s, err
	}

	address := pk.String()
	c.mu.Lock()
	c.session.Connecting = false
	c.setConnectedLocked(address)
	c.mu.Unlock()

	c.log.WithField("address", address).Info("wallet connected")
	c.register(ctx, address)
	return c.Snapshot(), nil
}

func (c *Controller) connect(ctx context.Context) (solana.PublicKey, error) {
	opts := wallet.ConnectOptions{AllowMobileRedirect: true}
	if c.opts.ConnectRetries > 1 {
		return c.wallet.ConnectWithRetry(ctx, opts, c.opts.ConnectRetries)
	}
	return c.wallet.Connect(ctx, opts)
}

// Disconnect unregisters the wallet with the backend, then revokes the authorization.
func (c *Controller) Disconnect(ctx context.Context) (model.WalletSession, error) {
	was := c.Snapshot()

	if was.Address != "" && c.backend != nil {
		if err := c.backend.UnregisterWallet(ctx); err != nil {
			c.log.WithError(err).Warn("failed to unregister wallet")
		}
	}

	err := c.wallet.Disconnect(ctx)
	d := c.wallet.Detect()

	c.mu.Lock()
	c.session.Address = ""
	c.session.Status = disconnectedStatus(d)
	c.session.Error = ""
	if err != nil {
		c.session.Error = err.Error()
	}
	s := c.session
	c.mu.Unlock()

	if err != nil {
		c.log.WithError(err).Warn("wallet disconnect failed")
		return s, err
	}
	c.log.WithField("address", was.Address).Info("wallet disconnected")
	return s, nil
}

// NotifyVisible schedules a re-check, for a client that became visible again
// after the user returned from the wallet app.
func (c *Controller) NotifyVisible() {
	c.mu.Lock()
	if c.closed || c.session.Connected() {
		c.mu.Unlock()
		return
	}
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		select {
		case <-c.bg.Done():
		case <-time.After(c.opts.VisibilityRecheckDelay):
			c.recheck(c.bg)
		}
	}()
}

// VerifyOwnership asks the backend to verify a message signed by the connected wallet.
func (c *Controller) VerifyOwnership(ctx context.Context, message, signature string) error {
	s := c.Snapshot()
	if !s.Connected() {
		return wallet.ErrNotConnected
	}
	if c.backend == nil {
		return errors.New("no backend configured")
	}
	return c.backend.VerifyWallet(ctx, model.VerifyRequest{
		Message:   message,
		Signature: signature,
		Wallet:    s.Address,
	})
}

// Close stops background re-checks and drops account-change callbacks.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	sub := c.sub
	c.mu.Unlock()

	c.cancel()
	if sub != nil {
		sub.Cancel()
	}
	c.wg.Wait()
}

func (c *Controller) pollMobile() {
	defer c.wg.Done()

	select {
	case <-c.bg.Done():
		return
	case <-time.After(c.opts.InitialRecheckDelay):
		c.recheck(c.bg)
	}

	ticker := time.NewTicker(c.opts.PollInterval)
	defer ticker.Stop()

	for polls := 0; polls < c.opts.MobilePollLimit; {
		select {
		case <-c.bg.Done():
			return
		case <-ticker.C:
			if c.Snapshot().Connected() {
				c.log.WithField("polls", polls).Debug("mobile wallet connected, polling stopped")
				return
			}
			polls++
			c.recheck(c.bg)
		}
	}
	c.log.WithField("polls", c.opts.MobilePollLimit).Debug("mobile wallet polling stopped")
}

// recheck silently looks for an authorized account. It never prompts.
func (c *Controller) recheck(ctx context.Context) {
	c.mu.Lock()
	if c.closed || c.rechecking || c.session.Connecting || c.session.Connected() {
		c.mu.Unlock()
		return
	}
	c.rechecking = true
	c.mu.Unlock()

	address := c.wallet.CurrentAddress()
	d := c.wallet.Detect()
	if address == "" && d.Installed {
		pk, err := c.wallet.Connect(ctx, wallet.ConnectOptions{OnlyIfTrusted: true})
		if err == nil {
			address = pk.String()
		} else {
			c.log.WithError(err).Debug("silent reconnect declined")
		}
	}

	c.mu.Lock()
	c.rechecking = false
	if c.session.Connected() || c.session.Connecting {
		// the user's Connect settled or owns the session meanwhile
		c.mu.Unlock()
		return
	}
	if address == "" {
		c.session.Status = disconnectedStatus(d)
		c.mu.Unlock()
		return
	}
	c.setConnectedLocked(address)
	c.mu.Unlock()

	c.log.WithField("address", address).Info("wallet reconnected")
	c.register(ctx, address)
}

func (c *Controller) onAccountChange(address string) {
	if address == "" {
		d := c.wallet.Detect()
		c.mu.Lock()
		if c.session.Status == model.SessionConnected {
			c.session.Address = ""
			c.session.Status = disconnectedStatus(d)
		}
		c.mu.Unlock()
		c.log.Info("wallet account disconnected")
		return
	}

	c.mu.Lock()
	changed := c.session.Address != address
	c.setConnectedLocked(address)
	c.mu.Unlock()

	if changed {
		c.log.WithField("address", address).Info("wallet account changed")
		c.register(c.bg, address)
	}
}

func (c *Controller) setConnectedLocked(address string) {
	c.session.Status = model.SessionConnected
	c.session.Address = address
	c.session.Error = ""
}

// register is best effort: a failure is surfaced but keeps the session connected.
func (c *Controller) register(ctx context.Context, address string) {
	if c.backend == nil {
		return
	}
	if _, err := c.backend.RegisterWallet(ctx, address); err != nil {
		c.log.WithError(err).WithField("address", address).Warn("failed to register wallet with backend")
		c.mu.Lock()
		if c.session.Address == address {
			c.session.Error = "Wallet registration failed: " + err.Error()
		}
		c.mu.Unlock()
	}
}

func disconnectedStatus(d wallet.Detection) model.SessionStatus {
	if d.Installed {
		return model.SessionInstalledDisconnected
	}
	return model.SessionNotInstalled
}

// Package token drives the four-stage token creation pipeline: service fee,
// logo upload, backend mint transaction and signed submission.
package token

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/AlexZinkM/coinmaker/internal/client"
	"github.com/AlexZinkM/coinmaker/internal/common"
	"github.com/AlexZinkM/coinmaker/internal/failure"
	"github.com/AlexZinkM/coinmaker/internal/model"

	"github.com/gagliardetto/solana-go"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// MinBalanceLamports is the default balance below which a submission is refused (0.02 SOL).
const MinBalanceLamports = 20_000_000

// ErrSubmissionInProgress is returned when a second submission starts before the first ends.
var ErrSubmissionInProgress = errors.New("token creation already in progress")

// Session exposes the wallet session to the flow.
type Session interface {
	Snapshot() model.WalletSession
}

// Signer is the connected wallet.
type Signer interface {
	Balance(ctx context.Context) (uint64, error)
	SignTransaction(ctx context.Context, tx *solana.Transaction) (*solana.Transaction, error)
}

// Backend builds fee and mint transactions and stores logos.
type Backend interface {
	FeeTransaction(ctx context.Context, wallet string) (*model.FeeTransaction, error)
	UploadLogo(ctx context.Context, logo model.LogoFile) (string, error)
	CreateToken(ctx context.Context, req model.CreateTokenRequest) (*model.CreateTokenResult, error)
}

// Ledger submits and confirms transactions.
type Ledger interface {
	LatestBlockhash(ctx context.Context) (solana.Hash, error)
	SendRaw(ctx context.Context, raw []byte) (solana.Signature, error)
	Confirm(ctx context.Context, sig solana.Signature) error
}

// Options configures a Wizard
type Options struct {
	ResetDelay time.Duration
	// MinBalance in lamports, MinBalanceLamports when zero.
	MinBalance uint64
	// NewMint generates the mint keypair, solana.NewRandomPrivateKey when nil.
	NewMint func() (solana.PrivateKey, error)
}

// Wizard holds one draft and runs its submission. At most one submission is in flight.
type Wizard struct {
	session Session
	signer  Signer
	backend Backend
	ledger  Ledger
	opts    Options
	log     *logrus.Entry
	fees    *feeCache

	mu          sync.Mutex
	draft       model.TokenDraft
	progress    model.SubmissionProgress
	processing  bool
	status      string
	lastErr     string
	mintKey     solana.PrivateKey
	mintAddress string
	resetTimer  *time.Timer
}

// NewWizard creates a wizard holding a default draft.
func NewWizard(session Session, signer Signer, backend Backend, ledger Ledger, opts Options, log *logrus.Entry) *Wizard {
	if opts.NewMint == nil {
		opts.NewMint = solana.NewRandomPrivateKey
	}
	if opts.MinBalance == 0 {
		opts.MinBalance = MinBalanceLamports
	}
	return &Wizard{
		session:  session,
		signer:   signer,
		backend:  backend,
		ledger:   ledger,
		opts:     opts,
		log:      log,
		fees:     newFeeCache(),
		draft:    model.NewTokenDraft(),
		progress: model.NewSubmissionProgress(),
	}
}

// Draft returns a copy of the current draft.
func (w *Wizard) Draft() model.TokenDraft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft.Clone()
}

// UpdateDraft replaces the draft. Refused while a submission runs.
func (w *Wizard) UpdateDraft(d model.TokenDraft) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.processing {
		return ErrSubmissionInProgress
	}
	w.draft = d.Clone()
	return nil
}

// Cost returns the advisory cost of the current draft.
func (w *Wizard) Cost() decimal.Decimal {
	return EstimateCost(w.Draft())
}

// PrepareMint generates the mint keypair if there is none and returns its address.
func (w *Wizard) PrepareMint() (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	key, err := w.mintKeyLocked()
	if err != nil {
		return "", err
	}
	return key.PublicKey().String(), nil
}

// Progress reports the state of the current or last submission.
func (w *Wizard) Progress() model.ProgressResponse {
	w.mu.Lock()
	defer w.mu.Unlock()
	return model.ProgressResponse{
		Processing:  w.processing,
		Status:      w.status,
		Error:       w.lastErr,
		MintAddress: w.mintAddress,
		Progress:    w.progress.Clone(),
	}
}

// Close stops a pending reset.
func (w *Wizard) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.resetTimer != nil {
		w.resetTimer.Stop()
		w.resetTimer = nil
	}
}

// Submit runs the four stages in order and stops at the first failure.
// A failed submission keeps the paid fee signature and the mint keypair for the retry;
// a successful one consumes both.
func (w *Wizard) Submit(ctx context.Context) (*model.CreateResponse, error) {
	draft := w.Draft()
	if err := Validate(draft); err != nil {
		return nil, err
	}

	session := w.session.Snapshot()
	if !session.Connected() {
		return nil, failure.New(failure.Validation, "Please connect your wallet first")
	}
	walletAddr := session.Address

	attempt := uuid.NewString()
	log := w.log.WithFields(logrus.Fields{"attempt": attempt, "wallet": walletAddr})

	w.mu.Lock()
	if w.processing {
		w.mu.Unlock()
		return nil, ErrSubmissionInProgress
	}
	if w.resetTimer != nil {
		w.resetTimer.Stop()
		w.resetTimer = nil
	}
	w.processing = true
	w.lastErr = ""
	w.mintAddress = ""
	w.progress = model.NewSubmissionProgress()
	w.progress.Activate(model.StageFee)
	w.status = "Checking wallet balance..."
	w.mu.Unlock()

	log.Info("token creation started")

	lamports, err := w.signer.Balance(ctx)
	switch {
	case err != nil:
		log.WithError(err).Warn("failed to check balance, continuing")
	case lamports < w.opts.MinBalance:
		return nil, w.fail(log, failure.New(failure.InsufficientBalance, fmt.Sprintf(
			"Insufficient SOL balance. You need at least %s SOL to create a token. Current balance: %s SOL",
			common.DisplaySOL(w.opts.MinBalance), common.DisplaySOL(lamports))))
	}

	feeSig, feeAmount, err := w.payFee(ctx, log, walletAddr)
	if err != nil {
		return nil, w.fail(log, err)
	}
	w.advance(model.StageFee, model.StageUpload, "Uploading logo to IPFS...")

	logoURI := ""
	if draft.Logo != nil && len(draft.Logo.Data) > 0 {
		logoURI, err = w.backend.UploadLogo(ctx, *draft.Logo)
		if err != nil {
			return nil, w.fail(log, failure.Wrap(failure.Backend, "", err))
		}
		log.WithField("uri", logoURI).Debug("logo uploaded")
		w.advance(model.StageUpload, model.StageConstruct, "Creating token transaction...")
	} else {
		w.mu.Lock()
		w.progress.Skip(model.StageUpload)
		w.progress.Activate(model.StageConstruct)
		w.status = "Creating token transaction..."
		w.mu.Unlock()
	}

	w.mu.Lock()
	mintKey, err := w.mintKeyLocked()
	w.mu.Unlock()
	if err != nil {
		return nil, w.fail(log, failure.Wrap(failure.Ledger, "Failed to generate mint keypair", err))
	}

	created, err := w.backend.CreateToken(ctx, buildCreateRequest(draft, walletAddr, logoURI, feeSig, mintKey.PublicKey()))
	if err != nil {
		return nil, w.fail(log, failure.Wrap(failure.Backend, "", err))
	}
	w.advance(model.StageConstruct, model.StageSubmit, "Please sign the token creation transaction...")

	sig, err := w.submitMint(ctx, created.SerializedTransaction, mintKey)
	if err != nil {
		return nil, w.fail(log, err)
	}

	mintAddress := mintKey.PublicKey().String()
	w.fees.Delete(walletAddr)

	w.mu.Lock()
	w.mintKey = nil
	w.progress.Complete(model.StageSubmit)
	w.processing = false
	w.status = "Token created successfully!"
	w.mintAddress = mintAddress
	w.resetTimer = time.AfterFunc(w.opts.ResetDelay, w.reset)
	progress := w.progress.Clone()
	w.mu.Unlock()

	log.WithFields(logrus.Fields{"mint": mintAddress, "signature": sig.String()}).Info("token created")

	return &model.CreateResponse{
		AttemptID:    attempt,
		MintAddress:  mintAddress,
		Signature:    sig.String(),
		FeeSignature: feeSig,
		FeeAmount:    feeAmount,
		Progress:     progress,
	}, nil
}

// payFee returns the cached signature or pays and confirms a new fee transaction.
func (w *Wizard) payFee(ctx context.Context, log *logrus.Entry, walletAddr string) (string, string, error) {
	if sig, ok := w.fees.Get(walletAddr); ok {
		log.WithField("fee_signature", sig).Info("reusing paid fee")
		return sig, "", nil
	}

	w.setStatus("Getting fee transaction...")
	fee, err := w.backend.FeeTransaction(ctx, walletAddr)
	if err != nil {
		return "", "", failure.Wrap(failure.Backend, "", err)
	}

	tx, err := client.DecodeTransaction(fee.SerializedTransaction)
	if err != nil {
		return "", "", failure.Wrap(failure.Backend, "Invalid fee transaction from server", err)
	}
	payer, err := client.FeePayer(tx)
	if err != nil || payer.String() != walletAddr {
		return "", "", failure.New(failure.Backend, "Fee transaction is not payable by the connected wallet")
	}

	w.setStatus("Please sign the fee transaction...")
	sig, err := w.signAndSend(ctx, tx)
	if err != nil {
		return "", "", err
	}

	w.setStatus("Confirming fee payment...")
	if err := w.ledger.Confirm(ctx, sig); err != nil {
		return "", "", failure.Wrap(failure.Ledger, "Fee transaction failed to confirm", err)
	}

	w.fees.Set(walletAddr, sig.String())
	log.WithFields(logrus.Fields{"fee_signature": sig.String(), "fee_amount": fee.FeeAmount}).Info("fee paid")
	return sig.String(), fee.FeeAmount, nil
}

func (w *Wizard) submitMint(ctx context.Context, serialized string, mintKey solana.PrivateKey) (solana.Signature, error) {
	tx, err := client.DecodeTransaction(serialized)
	if err != nil {
		return solana.Signature{}, failure.Wrap(failure.Backend, "Invalid token transaction from server", err)
	}

	sig, err := w.signAndSend(ctx, tx, mintKey)
	if err != nil {
		return solana.Signature{}, err
	}

	w.setStatus("Confirming token creation...")
	if err := w.ledger.Confirm(ctx, sig); err != nil {
		return solana.Signature{}, failure.Wrap(failure.Ledger, "Token transaction failed to confirm", err)
	}
	return sig, nil
}

// signAndSend refreshes the blockhash, collects the wallet signature and any
// local co-signatures, then submits the raw transaction.
func (w *Wizard) signAndSend(ctx context.Context, tx *solana.Transaction, cosigners ...solana.PrivateKey) (solana.Signature, error) {
	blockhash, err := w.ledger.LatestBlockhash(ctx)
	if err != nil {
		return solana.Signature{}, failure.Wrap(failure.Ledger, "Failed to get latest blockhash", err)
	}
	tx.Message.RecentBlockhash = blockhash
	tx.Signatures = nil

	signed, err := w.signer.SignTransaction(ctx, tx)
	if err != nil {
		return solana.Signature{}, err
	}
	for _, key := range cosigners {
		if err := client.PartialSign(signed, key); err != nil {
			return solana.Signature{}, failure.Wrap(failure.Ledger, "Failed to sign with mint keypair", err)
		}
	}

	raw, err := signed.MarshalBinary()
	if err != nil {
		return solana.Signature{}, failure.Wrap(failure.Ledger, "Failed to serialize transaction", err)
	}
	sig, err := w.ledger.SendRaw(ctx, raw)
	if err != nil {
		return solana.Signature{}, failure.Wrap(failure.Ledger, "Failed to send transaction", err)
	}
	return sig, nil
}

func (w *Wizard) advance(done, next int, status string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.progress.Complete(done)
	w.progress.Activate(next)
	w.status = status
}

func (w *Wizard) setStatus(status string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.status = status
}

// fail freezes progress at the active stage and ends the submission.
func (w *Wizard) fail(log *logrus.Entry, err error) error {
	w.mu.Lock()
	w.progress.Fail()
	w.processing = false
	w.status = ""
	w.lastErr = err.Error()
	w.mu.Unlock()

	var fe *failure.Error
	if errors.As(err, &fe) {
		log.WithField("kind", fe.Kind).Warn(fe.ErrorOut())
	} else {
		log.WithError(err).Warn("token creation failed")
	}
	return err
}

func (w *Wizard) mintKeyLocked() (solana.PrivateKey, error) {
	if w.mintKey != nil {
		return w.mintKey, nil
	}
	key, err := w.opts.NewMint()
	if err != nil {
		return nil, err
	}
	w.mintKey = key
	return key, nil
}

// reset clears the form once a successful creation has been displayed.
func (w *Wizard) reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.processing {
		return
	}
	w.draft = model.NewTokenDraft()
	w.progress = model.NewSubmissionProgress()
	w.status = ""
	w.lastErr = ""
	w.resetTimer = nil
}

func buildCreateRequest(d model.TokenDraft, walletAddr, logoURI, feeSig string, mint solana.PublicKey) model.CreateTokenRequest {
	req := model.CreateTokenRequest{
		Wallet:         walletAddr,
		TokenName:      strings.TrimSpace(d.Name),
		Symbol:         strings.ToUpper(strings.TrimSpace(d.Symbol)),
		Supply:         strings.TrimSpace(d.Supply),
		Decimals:       d.Decimals,
		LogoURI:        logoURI,
		RevokeFreeze:   d.RevokeFreeze,
		RevokeMint:     d.RevokeMint,
		RevokeUpdate:   d.RevokeUpdate,
		FeeTxSignature: feeSig,
		MintPublicKey:  mint.String(),
	}
	if d.StoreDescription {
		req.Description = d.Description
	}
	if d.EnableSocials {
		req.Website = d.Website
		req.Twitter = d.Twitter
		req.Telegram = d.Telegram
		req.Discord = d.Discord
	}
	return req
}

package storageimpl

import (
	"context"
	"sync"
	"time"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/hannahhoward/go-pubsub"
	"github.com/hashicorp/go-multierror"
	"github.com/ipfs/go-cid"
	"github.com/ipfs/go-datastore"
	logging "github.com/ipfs/go-log/v2"
	"golang.org/x/xerrors"

	"github.com/dstor-network/go-storage-market/storagemarket"
	"github.com/dstor-network/go-storage-market/storagemarket/impl/prooflog"
	"github.com/dstor-network/go-storage-market/storagemarket/impl/registry"
	"github.com/dstor-network/go-storage-market/storagemarket/impl/reputation"
	"github.com/dstor-network/go-storage-market/storagemarket/impl/requeststore"
	"github.com/dstor-network/go-storage-market/storagemarket/impl/settlement"
)

var log = logging.Logger("storagemarket")

var _ storagemarket.StorageMarket = &Ledger{}

// TrustOnSubmitVerifier accepts every submitted proof. It reproduces the
// upstream protocol, where submission itself is the proof; replace it
// via CustomProofVerifier once a challenge-response scheme exists.
type TrustOnSubmitVerifier struct{}

// VerifyProof always accepts
func (TrustOnSubmitVerifier) VerifyProof(ctx context.Context, fingerprint cid.Cid, record storagemarket.ProofRecord) (bool, error) {
	return true, nil
}

// Ledger is the storage-market aggregate: provider registry, request
// ledger, proof log, reputation and settlement, all backed by one
// datastore and serialized by one lock. Each exported operation is a
// single atomic transaction; no partial state is ever visible to other
// callers.
type Ledger struct {
	lk sync.RWMutex

	// escrow is the market's own token account, holding provider stakes
	// and not-yet-released request costs.
	escrow   address.Address
	node     storagemarket.TokenLedger
	verifier storagemarket.ProofVerifier

	providers  *registry.Registry
	requests   *requeststore.RequestStore
	proofs     *prooflog.ProofLog
	pending    *settlement.PendingWithdrawals
	reputation *reputation.Engine

	pubSub *pubsub.PubSub
}

// LedgerOption allows custom configuration of a ledger
type LedgerOption func(l *Ledger)

// CustomProofVerifier replaces the default trust-on-submit proof
// verifier.
func CustomProofVerifier(v storagemarket.ProofVerifier) LedgerOption {
	return func(l *Ledger) {
		l.verifier = v
	}
}

// NewLedger returns a storage market ledger backed by the given
// datastore. escrowAddr is the market's account on the token ledger;
// stakes and request costs are escrowed into it and payments and
// withdrawals are paid out of it.
func NewLedger(ds datastore.Batching, node storagemarket.TokenLedger, escrowAddr address.Address, options ...LedgerOption) (*Ledger, error) {
	providers, err := registry.New(ds)
	if err != nil {
		return nil, err
	}
	requests, err := requeststore.New(ds)
	if err != nil {
		return nil, err
	}

	l := &Ledger{
		escrow:    escrowAddr,
		node:      node,
		verifier:  TrustOnSubmitVerifier{},
		providers: providers,
		requests:  requests,
		proofs:    prooflog.New(ds),
		pending:   settlement.New(ds),
		pubSub:    pubsub.New(eventDispatcher),
	}
	l.reputation = reputation.New(providers)

	for _, option := range options {
		option(l)
	}

	return l, nil
}

// SubscribeToEvents registers a subscriber for market events
func (l *Ledger) SubscribeToEvents(subscriber storagemarket.Subscriber) storagemarket.Unsubscribe {
	return storagemarket.Unsubscribe(l.pubSub.Subscribe(subscriber))
}

// Register escrows MinProviderStake from the caller and creates an
// active provider record with full reputation.
func (l *Ledger) Register(ctx context.Context, caller address.Address, capacityBytes uint64, pricePerGBMonth abi.TokenAmount, endpoint string) error {
	l.lk.Lock()
	defer l.lk.Unlock()

	var merr *multierror.Error
	if capacityBytes == 0 {
		merr = multierror.Append(merr, xerrors.New("capacity must be positive"))
	}
	if pricePerGBMonth.LessThanEqual(big.Zero()) {
		merr = multierror.Append(merr, xerrors.New("price must be positive"))
	}
	if err := merr.ErrorOrNil(); err != nil {
		return xerrors.Errorf("%w: %s", storagemarket.ErrValidation, err)
	}

	has, err := l.providers.Has(caller)
	if err != nil {
		return err
	}
	if has {
		return xerrors.Errorf("provider %s already registered: %w", caller, storagemarket.ErrDuplicateResource)
	}

	balance, err := l.node.BalanceOf(ctx, caller)
	if err != nil {
		return err
	}
	if balance.LessThan(storagemarket.MinProviderStake) {
		return xerrors.Errorf("balance %s below required stake %s: %w", balance, storagemarket.MinProviderStake, storagemarket.ErrInsufficientFunds)
	}

	if err := l.node.TransferFrom(ctx, caller, l.escrow, storagemarket.MinProviderStake); err != nil {
		return xerrors.Errorf("escrowing stake: %s: %w", err, storagemarket.ErrTransferFailed)
	}

	p := storagemarket.Provider{
		Owner:           caller,
		Capacity:        capacityBytes,
		PricePerGBMonth: pricePerGBMonth,
		StakedAmount:    storagemarket.MinProviderStake,
		Reputation:      storagemarket.MaxReputation,
		TotalEarnings:   big.Zero(),
		Active:          true,
		RegisteredAt:    time.Now().Unix(),
		Endpoint:        endpoint,
	}
	if _, err := l.providers.Register(ctx, p); err != nil {
		return err
	}

	l.publish(storagemarket.ProviderRegistered{
		Provider: caller,
		Capacity: capacityBytes,
		Price:    pricePerGBMonth,
	})
	return nil
}

// RequestStorage escrows the request cost from the caller and assigns
// providers. All preconditions, including provider selection, are
// checked before any token moves.
func (l *Ledger) RequestStorage(ctx context.Context, caller address.Address, fingerprint cid.Cid, sizeBytes uint64, durationSeconds int64, redundancy uint64) (storagemarket.StorageRequest, error) {
	l.lk.Lock()
	defer l.lk.Unlock()

	var merr *multierror.Error
	if sizeBytes == 0 {
		merr = multierror.Append(merr, xerrors.New("size must be positive"))
	}
	if durationSeconds <= 0 {
		merr = multierror.Append(merr, xerrors.New("duration must be positive"))
	}
	if redundancy < storagemarket.MinRedundancy || redundancy > storagemarket.MaxRedundancy {
		merr = multierror.Append(merr, xerrors.Errorf("redundancy %d outside [%d, %d]", redundancy, storagemarket.MinRedundancy, storagemarket.MaxRedundancy))
	}
	if err := merr.ErrorOrNil(); err != nil {
		return storagemarket.StorageRequestUndefined, xerrors.Errorf("%w: %s", storagemarket.ErrValidation, err)
	}

	has, err := l.requests.Has(fingerprint)
	if err != nil {
		return storagemarket.StorageRequestUndefined, err
	}
	if has {
		return storagemarket.StorageRequestUndefined, xerrors.Errorf("fingerprint %s already requested: %w", fingerprint, storagemarket.ErrDuplicateResource)
	}

	active, err := l.providers.ListActive()
	if err != nil {
		return storagemarket.StorageRequestUndefined, err
	}
	if len(active) == 0 {
		return storagemarket.StorageRequestUndefined, xerrors.Errorf("no active providers: %w", storagemarket.ErrBadState)
	}

	totalCost := requestCost(sizeBytes, durationSeconds, redundancy, avgPrice(active))

	selected, err := l.providers.SelectProviders(sizeBytes, redundancy)
	if err != nil {
		return storagemarket.StorageRequestUndefined, err
	}
	if uint64(len(selected)) < redundancy {
		return storagemarket.StorageRequestUndefined, xerrors.Errorf("only %d of %d required providers eligible: %w", len(selected), redundancy, storagemarket.ErrBadState)
	}

	balance, err := l.node.BalanceOf(ctx, caller)
	if err != nil {
		return storagemarket.StorageRequestUndefined, err
	}
	if balance.LessThan(totalCost) {
		return storagemarket.StorageRequestUndefined, xerrors.Errorf("balance %s below cost %s: %w", balance, totalCost, storagemarket.ErrInsufficientFunds)
	}

	if err := l.node.TransferFrom(ctx, caller, l.escrow, totalCost); err != nil {
		return storagemarket.StorageRequestUndefined, xerrors.Errorf("escrowing cost: %s: %w", err, storagemarket.ErrTransferFailed)
	}

	req := storagemarket.StorageRequest{
		Fingerprint:     fingerprint,
		Client:          caller,
		Size:            sizeBytes,
		DurationSeconds: durationSeconds,
		TotalCost:       totalCost,
		Redundancy:      redundancy,
		Providers:       selected,
		Active:          true,
		CreatedAt:       time.Now().Unix(),
	}
	if err := l.requests.Begin(req); err != nil {
		return storagemarket.StorageRequestUndefined, err
	}
	for _, provider := range selected {
		if err := l.providers.AddUsage(provider, sizeBytes); err != nil {
			return storagemarket.StorageRequestUndefined, err
		}
	}

	log.Infof("stored request %s for %s: size %d, cost %s, providers %v", fingerprint, caller, sizeBytes, totalCost, selected)

	l.publish(storagemarket.StorageRequested{
		Client:      caller,
		Fingerprint: fingerprint,
		Size:        sizeBytes,
		Cost:        totalCost,
	})
	l.publish(storagemarket.ProvidersAssigned{
		Fingerprint: fingerprint,
		Providers:   selected,
	})
	return req, nil
}

// ConfirmStorage acknowledges an assignment. Each assigned provider may
// confirm once.
func (l *Ledger) ConfirmStorage(ctx context.Context, caller address.Address, fingerprint cid.Cid) error {
	l.lk.Lock()
	defer l.lk.Unlock()

	req, err := l.requests.Get(fingerprint)
	if err != nil {
		return err
	}
	if !req.Active {
		return xerrors.Errorf("request %s not active: %w", fingerprint, storagemarket.ErrBadState)
	}
	if !req.IsAssigned(caller) {
		return xerrors.Errorf("%s not assigned to %s: %w", caller, fingerprint, storagemarket.ErrNotAuthorized)
	}

	updated, err := l.requests.Confirm(fingerprint, caller)
	if err != nil {
		return err
	}
	if updated.Servable() {
		log.Infof("request %s fully confirmed by %d providers", fingerprint, updated.ConfirmationCount())
	}

	l.publish(storagemarket.StorageConfirmed{
		Fingerprint:   fingerprint,
		Provider:      caller,
		Confirmations: updated.ConfirmationCount(),
	})
	return nil
}

// SubmitProofOfStorage appends a proof record for the caller and runs
// the configured verifier on it. If the verifier errors, the record
// stays unverified and may be verified later with VerifyProof.
func (l *Ledger) SubmitProofOfStorage(ctx context.Context, caller address.Address, fingerprint cid.Cid, merkleRoot []byte) error {
	l.lk.Lock()
	defer l.lk.Unlock()

	req, err := l.requests.Get(fingerprint)
	if err != nil {
		return err
	}
	if !req.Active {
		return xerrors.Errorf("request %s not active: %w", fingerprint, storagemarket.ErrBadState)
	}
	if !req.IsAssigned(caller) {
		return xerrors.Errorf("%s not assigned to %s: %w", caller, fingerprint, storagemarket.ErrNotAuthorized)
	}
	provider, err := l.providers.Get(caller)
	if err != nil {
		return err
	}
	if !provider.Active {
		return xerrors.Errorf("provider %s not active: %w", caller, storagemarket.ErrNotAuthorized)
	}

	rec := storagemarket.ProofRecord{
		Provider:   caller,
		MerkleRoot: merkleRoot,
		Timestamp:  time.Now().Unix(),
	}
	index, err := l.proofs.Append(fingerprint, rec)
	if err != nil {
		return err
	}

	l.publish(storagemarket.ProofSubmitted{
		Fingerprint: fingerprint,
		Provider:    caller,
		MerkleRoot:  merkleRoot,
	})

	ok, err := l.verifier.VerifyProof(ctx, fingerprint, rec)
	if err != nil {
		return xerrors.Errorf("verifying proof %d for %s: %w", index, fingerprint, err)
	}
	if !ok {
		return l.recordFailure(ctx, caller)
	}
	return l.settleVerified(ctx, req, index, caller)
}

// VerifyProof marks a previously submitted, still-unverified record as
// verified, with the same effects as an accepted submission.
func (l *Ledger) VerifyProof(ctx context.Context, fingerprint cid.Cid, index int) error {
	l.lk.Lock()
	defer l.lk.Unlock()

	req, err := l.requests.Get(fingerprint)
	if err != nil {
		return err
	}

	recs, err := l.proofs.Get(fingerprint)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(recs) {
		return xerrors.Errorf("no proof %d for %s: %w", index, fingerprint, storagemarket.ErrNotFound)
	}
	if recs[index].Verified {
		return xerrors.Errorf("proof %d for %s already verified: %w", index, fingerprint, storagemarket.ErrBadState)
	}

	return l.settleVerified(ctx, req, index, recs[index].Provider)
}

// Withdraw pays out the caller's pending balance. The balance is zeroed
// before the transfer and restored if the transfer fails, so the two
// steps are both-or-neither.
func (l *Ledger) Withdraw(ctx context.Context, caller address.Address) (abi.TokenAmount, error) {
	l.lk.Lock()
	defer l.lk.Unlock()

	amount, err := l.pending.Pending(ctx, caller)
	if err != nil {
		return big.Zero(), err
	}
	if amount.LessThanEqual(big.Zero()) {
		return big.Zero(), xerrors.Errorf("nothing to withdraw for %s: %w", caller, storagemarket.ErrInsufficientFunds)
	}

	if _, err := l.pending.Zero(ctx, caller); err != nil {
		return big.Zero(), err
	}

	if err := l.node.Transfer(ctx, caller, amount); err != nil {
		if _, rerr := l.pending.Credit(ctx, caller, amount); rerr != nil {
			log.Errorf("restoring pending balance %s for %s: %s", amount, caller, rerr)
		}
		return big.Zero(), xerrors.Errorf("withdrawing %s: %s: %w", amount, err, storagemarket.ErrTransferFailed)
	}

	log.Infof("withdrew %s for %s", amount, caller)
	return amount, nil
}

// GetProvider returns the provider record for addr
func (l *Ledger) GetProvider(ctx context.Context, addr address.Address) (storagemarket.Provider, error) {
	l.lk.RLock()
	defer l.lk.RUnlock()
	return l.providers.Get(addr)
}

// ListActiveProviders returns active providers in registration order
func (l *Ledger) ListActiveProviders(ctx context.Context) ([]storagemarket.Provider, error) {
	l.lk.RLock()
	defer l.lk.RUnlock()
	return l.providers.ListActive()
}

// GetUserFiles returns the fingerprints of all requests made by user
func (l *Ledger) GetUserFiles(ctx context.Context, user address.Address) ([]cid.Cid, error) {
	l.lk.RLock()
	defer l.lk.RUnlock()
	return l.requests.ListByClient(user)
}

// GetStorageRequest returns the request record for the fingerprint
func (l *Ledger) GetStorageRequest(ctx context.Context, fingerprint cid.Cid) (storagemarket.StorageRequest, error) {
	l.lk.RLock()
	defer l.lk.RUnlock()
	return l.requests.Get(fingerprint)
}

// GetProofs returns the proof log for a fingerprint, oldest first
func (l *Ledger) GetProofs(ctx context.Context, fingerprint cid.Cid) ([]storagemarket.ProofRecord, error) {
	l.lk.RLock()
	defer l.lk.RUnlock()
	return l.proofs.Get(fingerprint)
}

// PendingWithdrawal returns the provider's accumulated, not yet
// withdrawn earnings
func (l *Ledger) PendingWithdrawal(ctx context.Context, provider address.Address) (abi.TokenAmount, error) {
	l.lk.RLock()
	defer l.lk.RUnlock()
	return l.pending.Pending(ctx, provider)
}

// settleVerified marks the record verified, bumps the provider's
// reputation, and releases its share of the request cost. Each provider
// is paid at most once per request, so the sum of releases never
// exceeds TotalCost.
func (l *Ledger) settleVerified(ctx context.Context, req storagemarket.StorageRequest, index int, provider address.Address) error {
	if _, err := l.proofs.MarkVerified(req.Fingerprint, index); err != nil {
		return err
	}

	change, err := l.reputation.OnSuccess(provider)
	if err != nil {
		return err
	}
	if change.Changed {
		l.publish(storagemarket.ReputationUpdated{Provider: provider, NewScore: change.NewScore})
	}

	if req.WasPaid(provider) {
		return nil
	}
	payment := req.PaymentPerProvider()
	if err := l.requests.MarkPaid(req.Fingerprint, provider); err != nil {
		return err
	}
	if err := l.providers.CreditEarnings(provider, payment); err != nil {
		return err
	}
	if _, err := l.pending.Credit(ctx, provider, payment); err != nil {
		return err
	}

	l.publish(storagemarket.PaymentReleased{Provider: provider, Amount: payment})
	return nil
}

// recordFailure applies the reputation penalty for a rejected proof and
// emits the resulting events.
func (l *Ledger) recordFailure(ctx context.Context, provider address.Address) error {
	change, err := l.reputation.OnFailure(provider)
	if err != nil {
		return err
	}
	if change.Changed {
		l.publish(storagemarket.ReputationUpdated{Provider: provider, NewScore: change.NewScore})
	}
	if change.Slashed {
		l.publish(storagemarket.ProviderSlashed{Provider: provider, Amount: change.SlashAmount})
	}
	return nil
}

func (l *Ledger) publish(evt storagemarket.Event) {
	if err := l.pubSub.Publish(evt); err != nil {
		log.Warnf("publishing %s event: %s", storagemarket.EventNames[evt.Type()], err)
	}
}

func eventDispatcher(evt pubsub.Event, subscriberFn pubsub.SubscriberFn) error {
	e, ok := evt.(storagemarket.Event)
	if !ok {
		return xerrors.New("wrong type of event")
	}
	cb, ok := subscriberFn.(storagemarket.Subscriber)
	if !ok {
		return xerrors.New("wrong type of callback")
	}
	cb(e)
	return nil
}

// requestCost prices a request: whole gigabytes times whole months times
// the average active price times redundancy, everything rounded up
// except the final division in settlement.
func requestCost(sizeBytes uint64, durationSeconds int64, redundancy uint64, avg abi.TokenAmount) abi.TokenAmount {
	gbs := ceilDiv(sizeBytes, storagemarket.BytesPerGB)
	months := ceilDiv(uint64(durationSeconds), uint64(storagemarket.SecondsPerMonth))

	cost := big.Mul(avg, big.NewInt(int64(gbs)))
	cost = big.Mul(cost, big.NewInt(int64(months)))
	return big.Mul(cost, big.NewInt(int64(redundancy)))
}

// avgPrice is the floor average of the active providers' prices.
func avgPrice(active []storagemarket.Provider) abi.TokenAmount {
	sum := big.Zero()
	for _, p := range active {
		sum = big.Add(sum, p.PricePerGBMonth)
	}
	return big.Div(sum, big.NewInt(int64(len(active))))
}

func ceilDiv(a, b uint64) uint64 {
	return (a + b - 1) / b
}

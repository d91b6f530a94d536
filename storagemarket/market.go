package storagemarket

import (
	"context"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/ipfs/go-cid"
)

// StorageMarket is the interface provided by the module to the outside
// world. Every operation is applied as a single atomic transaction: all
// preconditions are checked before any state write or token transfer,
// and a failed operation leaves no partial writes behind.
//
// The caller address identifies the acting account; the host application
// is responsible for authenticating it.
type StorageMarket interface {
	// Register escrows MinProviderStake from the caller and creates an
	// active provider record with full reputation.
	Register(ctx context.Context, caller address.Address, capacityBytes uint64, pricePerGBMonth abi.TokenAmount, endpoint string) error

	// RequestStorage escrows the total cost from the caller, assigns
	// `redundancy` providers, and records the request under the
	// fingerprint. A fingerprint can only ever be requested once.
	RequestStorage(ctx context.Context, caller address.Address, fingerprint cid.Cid, sizeBytes uint64, durationSeconds int64, redundancy uint64) (StorageRequest, error)

	// ConfirmStorage acknowledges an assignment. Each assigned provider
	// may confirm once; when all have confirmed the request is servable.
	ConfirmStorage(ctx context.Context, caller address.Address, fingerprint cid.Cid) error

	// SubmitProofOfStorage appends a proof record for the caller and runs
	// the configured verifier on it. A verified proof bumps reputation
	// and releases the provider's share of the request cost (once per
	// provider per request); a rejected proof lowers reputation and may
	// trigger slashing.
	SubmitProofOfStorage(ctx context.Context, caller address.Address, fingerprint cid.Cid, merkleRoot []byte) error

	// VerifyProof marks a previously submitted, still-unverified proof
	// record as verified, with the same reputation and settlement effects
	// as an accepted submission.
	VerifyProof(ctx context.Context, fingerprint cid.Cid, index int) error

	// Withdraw pays out the caller's pending balance and returns the
	// amount transferred. The balance is zeroed before the transfer and
	// restored if the transfer fails.
	Withdraw(ctx context.Context, caller address.Address) (abi.TokenAmount, error)

	StorageMarketQueries

	// SubscribeToEvents registers a subscriber for market events. Events
	// fire synchronously inside the emitting operation, after its state
	// has committed.
	SubscribeToEvents(subscriber Subscriber) Unsubscribe
}

// StorageMarketQueries are the read-only accessors over market state.
type StorageMarketQueries interface {
	GetProvider(ctx context.Context, addr address.Address) (Provider, error)

	// ListActiveProviders returns active providers in registration order.
	ListActiveProviders(ctx context.Context) ([]Provider, error)

	// GetUserFiles returns the fingerprints of all requests made by user.
	GetUserFiles(ctx context.Context, user address.Address) ([]cid.Cid, error)

	GetStorageRequest(ctx context.Context, fingerprint cid.Cid) (StorageRequest, error)

	// GetProofs returns the proof log for a fingerprint, oldest first.
	GetProofs(ctx context.Context, fingerprint cid.Cid) ([]ProofRecord, error)

	// PendingWithdrawal returns the provider's accumulated, not yet
	// withdrawn earnings.
	PendingWithdrawal(ctx context.Context, provider address.Address) (abi.TokenAmount, error)
}

package storagemarket

import (
	"errors"
	"time"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/ipfs/go-cid"
)

//go:generate cbor-gen-for Provider StorageRequest ProofRecord ProofSet

// MinProviderStake is the amount of tokens escrowed from a provider at
// registration. A provider whose stake drops below this amount through
// slashing is deactivated.
var MinProviderStake = abi.NewTokenAmount(1000)

// ProofInterval is the expected cadence of proof submissions per request.
// It is declared for consumers (schedulers, monitoring) but the ledger
// itself does not enforce it.
const ProofInterval = 24 * time.Hour

const (
	// ReputationThreshold gates provider eligibility for new assignments
	// and marks the point below which a failed proof triggers slashing.
	ReputationThreshold = 80

	// MaxReputation is the score assigned at registration and the ceiling
	// for successful-proof increments.
	MaxReputation = 100

	// MinRedundancy and MaxRedundancy bound the number of distinct
	// providers assigned per stored file.
	MinRedundancy = 3
	MaxRedundancy = 10

	// BytesPerGB is the unit size used for pricing. Costs round up to
	// whole gigabytes.
	BytesPerGB = uint64(1_000_000_000)

	// SecondsPerMonth is the billing period length. Costs round up to
	// whole months.
	SecondsPerMonth = int64(30 * 24 * 60 * 60)

	// SlashDivisor determines the slashed fraction of a provider's
	// current stake: stake / SlashDivisor per slash.
	SlashDivisor = 10
)

// Provider is the market's record of a registered storage provider.
type Provider struct {
	// Owner is the account that registered, stakes, and gets paid.
	Owner address.Address

	// Capacity and Used are byte counts. Used never exceeds Capacity.
	Capacity uint64
	Used     uint64

	// PricePerGBMonth is the provider's advertised price per gigabyte
	// per month of storage.
	PricePerGBMonth abi.TokenAmount

	StakedAmount  abi.TokenAmount
	Reputation    int64
	TotalEarnings abi.TokenAmount
	Active        bool

	// SeqNo is the registration order, used as the deterministic
	// tie-break during provider selection.
	SeqNo uint64

	RegisteredAt int64
	Endpoint     string
}

// ProviderUndefined is a provider with no data
var ProviderUndefined = Provider{}

// FreeCapacity returns the unassigned portion of the provider's capacity.
func (p *Provider) FreeCapacity() uint64 {
	if p.Used > p.Capacity {
		return 0
	}
	return p.Capacity - p.Used
}

// Eligible reports whether the provider may be assigned a file of the
// given size: it must be active, have room, and sit at or above the
// reputation threshold.
func (p *Provider) Eligible(sizeBytes uint64) bool {
	return p.Active && p.FreeCapacity() >= sizeBytes && p.Reputation >= ReputationThreshold
}

// StorageRequest is the market's record of one stored file, keyed by its
// fingerprint. Requests are never deleted; they remain as an audit trail.
type StorageRequest struct {
	// Fingerprint is the content-addressed identifier of the stored file.
	Fingerprint cid.Cid

	// Client is the account that requested storage and escrowed TotalCost.
	Client address.Address

	Size            uint64
	DurationSeconds int64
	TotalCost       abi.TokenAmount
	Redundancy      uint64

	// Providers is the fixed assignment set, len == Redundancy.
	Providers []address.Address

	// Confirmed holds the assigned providers that have acknowledged the
	// assignment, in confirmation order. A subset of Providers.
	Confirmed []address.Address

	// Paid holds the providers already credited for this request. Each
	// provider is paid at most once per request, so the sum of releases
	// never exceeds TotalCost.
	Paid []address.Address

	Active    bool
	CreatedAt int64
}

// StorageRequestUndefined is a storage request with no data
var StorageRequestUndefined = StorageRequest{}

// IsAssigned reports whether addr is in the request's assignment set.
func (r *StorageRequest) IsAssigned(addr address.Address) bool {
	return containsAddr(r.Providers, addr)
}

// HasConfirmed reports whether addr already confirmed this request.
func (r *StorageRequest) HasConfirmed(addr address.Address) bool {
	return containsAddr(r.Confirmed, addr)
}

// WasPaid reports whether addr was already credited for this request.
func (r *StorageRequest) WasPaid(addr address.Address) bool {
	return containsAddr(r.Paid, addr)
}

// ConfirmationCount returns the number of assignment acknowledgements
// received so far.
func (r *StorageRequest) ConfirmationCount() uint64 {
	return uint64(len(r.Confirmed))
}

// Servable reports whether every assigned provider has confirmed.
func (r *StorageRequest) Servable() bool {
	return r.ConfirmationCount() == r.Redundancy
}

// PaymentPerProvider is the amount released per verified provider:
// TotalCost / Redundancy, rounded down. The remainder stays in escrow.
func (r *StorageRequest) PaymentPerProvider() abi.TokenAmount {
	return big.Div(r.TotalCost, big.NewInt(int64(r.Redundancy)))
}

func containsAddr(addrs []address.Address, addr address.Address) bool {
	for _, a := range addrs {
		if a == addr {
			return true
		}
	}
	return false
}

// ProofRecord is one proof-of-storage submission. Records are append-only
// and immutable once verified.
type ProofRecord struct {
	Provider   address.Address
	MerkleRoot []byte
	Timestamp  int64
	Verified   bool
}

// ProofSet is the ordered log of proof submissions for one fingerprint.
type ProofSet struct {
	Records []ProofRecord
}

// Error sentinels for the failure taxonomy. Operations wrap these with a
// descriptive reason; callers match with errors.Is.
var (
	// ErrValidation indicates a structurally invalid argument
	// (non-positive size or duration, redundancy out of bounds).
	ErrValidation = errors.New("invalid argument")

	// ErrInsufficientFunds indicates the caller's token balance cannot
	// cover the required stake or cost, or a withdrawal of zero.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrDuplicateResource indicates the fingerprint was already
	// requested or the provider already registered.
	ErrDuplicateResource = errors.New("resource already exists")

	// ErrNotAuthorized indicates the caller is not the owner or an
	// assigned provider for the resource.
	ErrNotAuthorized = errors.New("caller not authorized")

	// ErrBadState indicates a precondition on current state failed:
	// double confirmation, no eligible providers, insufficient providers
	// selected, or an already-verified proof.
	ErrBadState = errors.New("operation not valid in current state")

	// ErrTransferFailed indicates the external token transfer failed.
	// No local state changes persist when it is returned.
	ErrTransferFailed = errors.New("token transfer failed")

	// ErrNotFound indicates the queried provider or request is unknown.
	ErrNotFound = errors.New("resource not found")
)

package storagemarket

import (
	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/ipfs/go-cid"
)

// EventType identifies the kind of a market event.
type EventType uint64

const (
	// EventProviderRegistered fires when a provider registers and stakes.
	EventProviderRegistered EventType = iota

	// EventStorageRequested fires when a storage request is accepted and
	// its cost escrowed.
	EventStorageRequested

	// EventProvidersAssigned fires with the full assignment set of a new
	// request, immediately after EventStorageRequested.
	EventProvidersAssigned

	// EventStorageConfirmed fires for each assignment acknowledgement.
	EventStorageConfirmed

	// EventProofSubmitted fires when a proof record is appended.
	EventProofSubmitted

	// EventPaymentReleased fires when a provider's share of a request
	// cost is credited to its pending balance.
	EventPaymentReleased

	// EventProviderSlashed fires when a provider's stake is reduced.
	EventProviderSlashed

	// EventReputationUpdated fires on every reputation score change.
	EventReputationUpdated
)

// EventNames maps event types to human readable strings
var EventNames = map[EventType]string{
	EventProviderRegistered: "ProviderRegistered",
	EventStorageRequested:   "StorageRequested",
	EventProvidersAssigned:  "ProvidersAssigned",
	EventStorageConfirmed:   "StorageConfirmed",
	EventProofSubmitted:     "ProofSubmitted",
	EventPaymentReleased:    "PaymentReleased",
	EventProviderSlashed:    "ProviderSlashed",
	EventReputationUpdated:  "ReputationUpdated",
}

// Event is a notification of a state change in the market.
type Event interface {
	Type() EventType
}

// Subscriber is a callback registered to listen for market events.
type Subscriber func(evt Event)

// Unsubscribe removes a previously registered subscriber.
type Unsubscribe func()

// ProviderRegistered reports a new active provider.
type ProviderRegistered struct {
	Provider address.Address
	Capacity uint64
	Price    abi.TokenAmount
}

// StorageRequested reports an accepted storage request.
type StorageRequested struct {
	Client      address.Address
	Fingerprint cid.Cid
	Size        uint64
	Cost        abi.TokenAmount
}

// ProvidersAssigned reports the assignment set of a new request.
type ProvidersAssigned struct {
	Fingerprint cid.Cid
	Providers   []address.Address
}

// StorageConfirmed reports one assignment acknowledgement.
type StorageConfirmed struct {
	Fingerprint   cid.Cid
	Provider      address.Address
	Confirmations uint64
}

// ProofSubmitted reports an appended proof record.
type ProofSubmitted struct {
	Fingerprint cid.Cid
	Provider    address.Address
	MerkleRoot  []byte
}

// PaymentReleased reports a settlement credit to a provider.
type PaymentReleased struct {
	Provider address.Address
	Amount   abi.TokenAmount
}

// ProviderSlashed reports a punitive stake reduction.
type ProviderSlashed struct {
	Provider address.Address
	Amount   abi.TokenAmount
}

// ReputationUpdated reports a provider's new reputation score.
type ReputationUpdated struct {
	Provider address.Address
	NewScore int64
}

func (ProviderRegistered) Type() EventType { return EventProviderRegistered }
func (StorageRequested) Type() EventType   { return EventStorageRequested }
func (ProvidersAssigned) Type() EventType  { return EventProvidersAssigned }
func (StorageConfirmed) Type() EventType   { return EventStorageConfirmed }
func (ProofSubmitted) Type() EventType     { return EventProofSubmitted }
func (PaymentReleased) Type() EventType    { return EventPaymentReleased }
func (ProviderSlashed) Type() EventType    { return EventProviderSlashed }
func (ReputationUpdated) Type() EventType  { return EventReputationUpdated }

package registry

import (
	"context"
	"sort"

	"github.com/filecoin-project/go-address"
	versioning "github.com/filecoin-project/go-ds-versioning/pkg"
	versionedds "github.com/filecoin-project/go-ds-versioning/pkg/datastore"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-statestore"
	"github.com/ipfs/go-datastore"
	"github.com/ipfs/go-datastore/namespace"
	logging "github.com/ipfs/go-log/v2"
	"golang.org/x/xerrors"

	"github.com/dstor-network/go-storage-market/storagemarket"
	"github.com/dstor-network/go-storage-market/storagemarket/sequence"
)

var log = logging.Logger("provider_registry")

// DSPrefix is the datastore namespace for provider records
var DSPrefix = "/providers"

// SequenceKey persists the registration-order counter. It lives outside
// DSPrefix so record listing never sees it.
var SequenceKey = datastore.NewKey("/providers-seq")

// Registry is the persisted collection of provider records. It does no
// locking of its own; the owning ledger serializes all access.
type Registry struct {
	store *statestore.StateStore
	seq   *sequence.Counter
}

// New returns a provider registry over the given datastore
func New(ds datastore.Batching) (*Registry, error) {
	versionedDs, migrateDs := versionedds.NewVersionedDatastore(ds, nil, versioning.VersionKey("1"))
	err := migrateDs(context.TODO())
	if err != nil {
		return nil, err
	}

	return &Registry{
		store: statestore.New(namespace.Wrap(versionedDs, datastore.NewKey(DSPrefix))),
		seq:   sequence.New(versionedDs, SequenceKey),
	}, nil
}

// Register persists a new provider record, assigning its registration
// sequence number. Each owner address may register once.
func (r *Registry) Register(ctx context.Context, p storagemarket.Provider) (storagemarket.Provider, error) {
	has, err := r.store.Has(p.Owner)
	if err != nil {
		return storagemarket.ProviderUndefined, err
	}
	if has {
		return storagemarket.ProviderUndefined, xerrors.Errorf("provider %s already registered: %w", p.Owner, storagemarket.ErrDuplicateResource)
	}

	seqNo, err := r.seq.Next(ctx)
	if err != nil {
		return storagemarket.ProviderUndefined, err
	}
	p.SeqNo = seqNo

	if err := r.store.Begin(p.Owner, &p); err != nil {
		return storagemarket.ProviderUndefined, err
	}

	log.Infof("registered provider %s, seqno %d, capacity %d", p.Owner, p.SeqNo, p.Capacity)
	return p, nil
}

// Get returns the provider record for addr
func (r *Registry) Get(addr address.Address) (storagemarket.Provider, error) {
	var out storagemarket.Provider
	if err := r.store.Get(addr).Get(&out); err != nil {
		if xerrors.Is(err, datastore.ErrNotFound) {
			return storagemarket.ProviderUndefined, xerrors.Errorf("no provider %s: %w", addr, storagemarket.ErrNotFound)
		}
		return storagemarket.ProviderUndefined, err
	}
	return out, nil
}

// Has reports whether addr has a provider record
func (r *Registry) Has(addr address.Address) (bool, error) {
	return r.store.Has(addr)
}

// List returns all provider records in registration order.
func (r *Registry) List() ([]storagemarket.Provider, error) {
	var out []storagemarket.Provider
	if err := r.store.List(&out); err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SeqNo < out[j].SeqNo
	})
	return out, nil
}

// ListActive returns active providers in registration order.
func (r *Registry) ListActive() ([]storagemarket.Provider, error) {
	all, err := r.List()
	if err != nil {
		return nil, err
	}
	var out []storagemarket.Provider
	for _, p := range all {
		if p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

// SelectProviders picks assignment candidates for a file of the given
// size: a deterministic single pass in registration order, taking the
// first n eligible providers. It may return fewer than n; the caller
// decides whether that is acceptable.
func (r *Registry) SelectProviders(sizeBytes uint64, n uint64) ([]address.Address, error) {
	all, err := r.List()
	if err != nil {
		return nil, err
	}

	var selected []address.Address
	for i := range all {
		if uint64(len(selected)) == n {
			break
		}
		if all[i].Eligible(sizeBytes) {
			selected = append(selected, all[i].Owner)
		}
	}
	return selected, nil
}

// Mutate applies mutator to the stored record for addr
func (r *Registry) Mutate(addr address.Address, mutator func(*storagemarket.Provider) error) error {
	err := r.store.Get(addr).Mutate(mutator)
	if err != nil && xerrors.Is(err, datastore.ErrNotFound) {
		return xerrors.Errorf("no provider %s: %w", addr, storagemarket.ErrNotFound)
	}
	return err
}

// AddUsage reserves sizeBytes of the provider's capacity for a new
// assignment.
func (r *Registry) AddUsage(addr address.Address, sizeBytes uint64) error {
	return r.Mutate(addr, func(p *storagemarket.Provider) error {
		if p.FreeCapacity() < sizeBytes {
			return xerrors.Errorf("provider %s has %d bytes free, need %d: %w", addr, p.FreeCapacity(), sizeBytes, storagemarket.ErrBadState)
		}
		p.Used += sizeBytes
		return nil
	})
}

// CreditEarnings adds amount to the provider's lifetime earnings.
func (r *Registry) CreditEarnings(addr address.Address, amount abi.TokenAmount) error {
	return r.Mutate(addr, func(p *storagemarket.Provider) error {
		p.TotalEarnings = big.Add(p.TotalEarnings, amount)
		return nil
	})
}

// Slash reduces the provider's stake by 1/SlashDivisor of its current
// value, deactivating the provider when the remaining stake drops below
// MinProviderStake. It returns the updated record and the slashed
// amount, which remains in the market's escrow account.
func (r *Registry) Slash(addr address.Address) (storagemarket.Provider, abi.TokenAmount, error) {
	var out storagemarket.Provider
	slashed := big.Zero()
	err := r.Mutate(addr, func(p *storagemarket.Provider) error {
		slashed = big.Div(p.StakedAmount, big.NewInt(storagemarket.SlashDivisor))
		p.StakedAmount = big.Sub(p.StakedAmount, slashed)
		if p.StakedAmount.LessThan(storagemarket.MinProviderStake) {
			p.Active = false
		}
		out = *p
		return nil
	})
	if err != nil {
		return storagemarket.ProviderUndefined, big.Zero(), err
	}

	log.Warnf("slashed provider %s by %s, remaining stake %s, active %t", addr, slashed, out.StakedAmount, out.Active)
	return out, slashed, nil
}

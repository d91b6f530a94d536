package settlement

import (
	"bytes"
	"context"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/ipfs/go-datastore"
	"github.com/ipfs/go-datastore/namespace"
	"golang.org/x/xerrors"
)

// DSPrefix is the datastore namespace for pending withdrawal balances
var DSPrefix = "/pending-withdrawals"

// PendingWithdrawals tracks the per-provider balance of released but not
// yet withdrawn payments. Balances only grow on credit and reset to zero
// on withdrawal. The owning ledger serializes all access.
type PendingWithdrawals struct {
	ds datastore.Batching
}

// New returns a pending-withdrawals tracker over the given datastore
func New(ds datastore.Batching) *PendingWithdrawals {
	return &PendingWithdrawals{
		ds: namespace.Wrap(ds, datastore.NewKey(DSPrefix)),
	}
}

// Pending returns the provider's current balance, zero if the provider
// was never credited.
func (s *PendingWithdrawals) Pending(ctx context.Context, provider address.Address) (abi.TokenAmount, error) {
	return s.load(ctx, provider)
}

// Credit adds amount to the provider's balance and returns the new total
func (s *PendingWithdrawals) Credit(ctx context.Context, provider address.Address, amount abi.TokenAmount) (abi.TokenAmount, error) {
	current, err := s.load(ctx, provider)
	if err != nil {
		return abi.TokenAmount{}, err
	}
	return s.save(ctx, provider, big.Add(current, amount))
}

// Zero resets the provider's balance and returns the prior amount. The
// caller transfers the returned amount out; if that transfer fails the
// balance must be restored with Credit so the two steps are
// both-or-neither.
func (s *PendingWithdrawals) Zero(ctx context.Context, provider address.Address) (abi.TokenAmount, error) {
	current, err := s.load(ctx, provider)
	if err != nil {
		return abi.TokenAmount{}, err
	}
	if _, err := s.save(ctx, provider, big.Zero()); err != nil {
		return abi.TokenAmount{}, err
	}
	return current, nil
}

func (s *PendingWithdrawals) load(ctx context.Context, provider address.Address) (abi.TokenAmount, error) {
	b, err := s.ds.Get(ctx, key(provider))
	if err != nil {
		if xerrors.Is(err, datastore.ErrNotFound) {
			return big.Zero(), nil
		}
		return abi.TokenAmount{}, err
	}

	var value abi.TokenAmount
	if err := value.UnmarshalCBOR(bytes.NewReader(b)); err != nil {
		return abi.TokenAmount{}, err
	}
	return value, nil
}

func (s *PendingWithdrawals) save(ctx context.Context, provider address.Address, amount abi.TokenAmount) (abi.TokenAmount, error) {
	var buf bytes.Buffer
	if err := amount.MarshalCBOR(&buf); err != nil {
		return abi.TokenAmount{}, err
	}

	if err := s.ds.Put(ctx, key(provider), buf.Bytes()); err != nil {
		return abi.TokenAmount{}, err
	}
	return amount, nil
}

func key(provider address.Address) datastore.Key {
	return datastore.NewKey(provider.String())
}

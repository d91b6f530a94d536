package registry_test

import (
	"context"
	"testing"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/ipfs/go-datastore"
	dss "github.com/ipfs/go-datastore/sync"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	"github.com/dstor-network/go-storage-market/shared_testutil"
	"github.com/dstor-network/go-storage-market/storagemarket"
	"github.com/dstor-network/go-storage-market/storagemarket/impl/registry"
)

func TestRegistry(t *testing.T) {
	ctx := context.Background()
	ds := dss.MutexWrap(datastore.NewMapDatastore())
	r, err := registry.New(ds)
	require.NoError(t, err)

	alice := shared_testutil.NewIDAddr(t, 101)
	bob := shared_testutil.NewIDAddr(t, 102)
	carol := shared_testutil.NewIDAddr(t, 103)

	t.Run("register and get", func(t *testing.T) {
		p := shared_testutil.MakeTestProvider(alice)
		registered, err := r.Register(ctx, p)
		require.NoError(t, err)
		require.Equal(t, uint64(0), registered.SeqNo)

		stored, err := r.Get(alice)
		require.NoError(t, err)
		require.Equal(t, registered, stored)
	})

	t.Run("duplicate registration fails", func(t *testing.T) {
		_, err := r.Register(ctx, shared_testutil.MakeTestProvider(alice))
		require.True(t, xerrors.Is(err, storagemarket.ErrDuplicateResource))
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := r.Get(shared_testutil.NewIDAddr(t, 999))
		require.True(t, xerrors.Is(err, storagemarket.ErrNotFound))
	})

	t.Run("list follows registration order", func(t *testing.T) {
		_, err := r.Register(ctx, shared_testutil.MakeTestProvider(bob))
		require.NoError(t, err)
		_, err = r.Register(ctx, shared_testutil.MakeTestProvider(carol))
		require.NoError(t, err)

		all, err := r.List()
		require.NoError(t, err)
		require.Len(t, all, 3)
		require.Equal(t, alice, all[0].Owner)
		require.Equal(t, bob, all[1].Owner)
		require.Equal(t, carol, all[2].Owner)
	})

	t.Run("list active skips deactivated", func(t *testing.T) {
		err := r.Mutate(bob, func(p *storagemarket.Provider) error {
			p.Active = false
			return nil
		})
		require.NoError(t, err)

		active, err := r.ListActive()
		require.NoError(t, err)
		require.Len(t, active, 2)
		require.Equal(t, alice, active[0].Owner)
		require.Equal(t, carol, active[1].Owner)
	})

	t.Run("select takes first eligible in order", func(t *testing.T) {
		selected, err := r.SelectProviders(storagemarket.BytesPerGB, 2)
		require.NoError(t, err)
		require.Equal(t, []address.Address{alice, carol}, selected)
	})

	t.Run("select may return fewer than requested", func(t *testing.T) {
		selected, err := r.SelectProviders(storagemarket.BytesPerGB, 5)
		require.NoError(t, err)
		require.Len(t, selected, 2)
	})

	t.Run("usage reserves capacity", func(t *testing.T) {
		before, err := r.Get(alice)
		require.NoError(t, err)

		require.NoError(t, r.AddUsage(alice, storagemarket.BytesPerGB))
		after, err := r.Get(alice)
		require.NoError(t, err)
		require.Equal(t, before.Used+storagemarket.BytesPerGB, after.Used)

		err = r.AddUsage(alice, after.FreeCapacity()+1)
		require.True(t, xerrors.Is(err, storagemarket.ErrBadState))
	})

	t.Run("credit earnings accumulates", func(t *testing.T) {
		require.NoError(t, r.CreditEarnings(carol, abi.NewTokenAmount(7)))
		require.NoError(t, r.CreditEarnings(carol, abi.NewTokenAmount(5)))
		p, err := r.Get(carol)
		require.NoError(t, err)
		require.Equal(t, abi.NewTokenAmount(12), p.TotalEarnings)
	})

	t.Run("reloading from disk keeps order counter", func(t *testing.T) {
		r2, err := registry.New(ds)
		require.NoError(t, err)

		dave := shared_testutil.NewIDAddr(t, 104)
		registered, err := r2.Register(ctx, shared_testutil.MakeTestProvider(dave))
		require.NoError(t, err)
		require.Equal(t, uint64(3), registered.SeqNo)

		all, err := r2.List()
		require.NoError(t, err)
		require.Len(t, all, 4)
		require.Equal(t, dave, all[3].Owner)
	})
}

func TestSlash(t *testing.T) {
	ctx := context.Background()
	ds := dss.MutexWrap(datastore.NewMapDatastore())
	r, err := registry.New(ds)
	require.NoError(t, err)

	owner := shared_testutil.NewIDAddr(t, 201)
	p := shared_testutil.MakeTestProvider(owner)
	p.StakedAmount = abi.NewTokenAmount(1000)
	_, err = r.Register(ctx, p)
	require.NoError(t, err)

	t.Run("takes a tenth of current stake", func(t *testing.T) {
		updated, slashed, err := r.Slash(owner)
		require.NoError(t, err)
		require.Equal(t, abi.NewTokenAmount(100), slashed)
		require.Equal(t, abi.NewTokenAmount(900), updated.StakedAmount)
	})

	t.Run("deactivates when stake drops below minimum", func(t *testing.T) {
		updated, _, err := r.Slash(owner)
		require.NoError(t, err)
		require.True(t, updated.StakedAmount.LessThan(storagemarket.MinProviderStake))
		require.False(t, updated.Active)
	})

	t.Run("repeated slashes shrink but never exhaust stake", func(t *testing.T) {
		for i := 0; i < 20; i++ {
			_, _, err := r.Slash(owner)
			require.NoError(t, err)
		}
		p, err := r.Get(owner)
		require.NoError(t, err)
		require.True(t, p.StakedAmount.GreaterThan(big.Zero()))
	})
}

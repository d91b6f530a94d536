package reputation_test

import (
	"context"
	"testing"

	"github.com/filecoin-project/go-state-types/abi"
	"github.com/ipfs/go-datastore"
	dss "github.com/ipfs/go-datastore/sync"
	"github.com/stretchr/testify/require"

	"github.com/dstor-network/go-storage-market/shared_testutil"
	"github.com/dstor-network/go-storage-market/storagemarket"
	"github.com/dstor-network/go-storage-market/storagemarket/impl/registry"
	"github.com/dstor-network/go-storage-market/storagemarket/impl/reputation"
)

func setupEngine(t *testing.T) (*registry.Registry, *reputation.Engine) {
	ds := dss.MutexWrap(datastore.NewMapDatastore())
	r, err := registry.New(ds)
	require.NoError(t, err)
	return r, reputation.New(r)
}

func TestOnSuccess(t *testing.T) {
	ctx := context.Background()
	r, e := setupEngine(t)

	owner := shared_testutil.NewIDAddr(t, 201)
	p := shared_testutil.MakeTestProvider(owner)
	p.Reputation = 95
	_, err := r.Register(ctx, p)
	require.NoError(t, err)

	t.Run("bumps score by one", func(t *testing.T) {
		change, err := e.OnSuccess(owner)
		require.NoError(t, err)
		require.True(t, change.Changed)
		require.Equal(t, int64(96), change.NewScore)
	})

	t.Run("caps at max", func(t *testing.T) {
		for i := 0; i < 10; i++ {
			_, err := e.OnSuccess(owner)
			require.NoError(t, err)
		}
		change, err := e.OnSuccess(owner)
		require.NoError(t, err)
		require.False(t, change.Changed)
		require.Equal(t, int64(storagemarket.MaxReputation), change.NewScore)
	})
}

func TestOnFailure(t *testing.T) {
	ctx := context.Background()
	r, e := setupEngine(t)

	owner := shared_testutil.NewIDAddr(t, 202)
	p := shared_testutil.MakeTestProvider(owner)
	p.Reputation = 95
	p.StakedAmount = abi.NewTokenAmount(1000)
	_, err := r.Register(ctx, p)
	require.NoError(t, err)

	t.Run("drops score without slashing above threshold", func(t *testing.T) {
		change, err := e.OnFailure(owner)
		require.NoError(t, err)
		require.True(t, change.Changed)
		require.Equal(t, int64(85), change.NewScore)
		require.False(t, change.Slashed)
	})

	t.Run("slashes once when crossing threshold", func(t *testing.T) {
		change, err := e.OnFailure(owner)
		require.NoError(t, err)
		require.Equal(t, int64(75), change.NewScore)
		require.True(t, change.Slashed)
		require.Equal(t, abi.NewTokenAmount(100), change.SlashAmount)
		require.True(t, change.Deactivated)

		updated, err := r.Get(owner)
		require.NoError(t, err)
		require.Equal(t, abi.NewTokenAmount(900), updated.StakedAmount)
		require.False(t, updated.Active)
	})

	t.Run("score floors at zero", func(t *testing.T) {
		for i := 0; i < 10; i++ {
			_, err := e.OnFailure(owner)
			require.NoError(t, err)
		}
		change, err := e.OnFailure(owner)
		require.NoError(t, err)
		require.False(t, change.Changed)
		require.Equal(t, int64(0), change.NewScore)
	})
}

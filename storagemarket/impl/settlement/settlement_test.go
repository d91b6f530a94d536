package settlement_test

import (
	"context"
	"testing"

	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/ipfs/go-datastore"
	dss "github.com/ipfs/go-datastore/sync"
	"github.com/stretchr/testify/require"

	"github.com/dstor-network/go-storage-market/shared_testutil"
	"github.com/dstor-network/go-storage-market/storagemarket/impl/settlement"
)

func TestPendingWithdrawals(t *testing.T) {
	ctx := context.Background()
	ds := dss.MutexWrap(datastore.NewMapDatastore())
	s := settlement.New(ds)

	provider := shared_testutil.NewIDAddr(t, 201)

	t.Run("starts at zero", func(t *testing.T) {
		amount, err := s.Pending(ctx, provider)
		require.NoError(t, err)
		require.Equal(t, big.Zero(), amount)
	})

	t.Run("credits accumulate", func(t *testing.T) {
		total, err := s.Credit(ctx, provider, abi.NewTokenAmount(10))
		require.NoError(t, err)
		require.Equal(t, abi.NewTokenAmount(10), total)

		total, err = s.Credit(ctx, provider, abi.NewTokenAmount(5))
		require.NoError(t, err)
		require.Equal(t, abi.NewTokenAmount(15), total)
	})

	t.Run("zero returns prior amount", func(t *testing.T) {
		prior, err := s.Zero(ctx, provider)
		require.NoError(t, err)
		require.Equal(t, abi.NewTokenAmount(15), prior)

		amount, err := s.Pending(ctx, provider)
		require.NoError(t, err)
		require.Equal(t, big.Zero(), amount)
	})

	t.Run("balances are per provider", func(t *testing.T) {
		other := shared_testutil.NewIDAddr(t, 202)
		_, err := s.Credit(ctx, other, abi.NewTokenAmount(3))
		require.NoError(t, err)

		amount, err := s.Pending(ctx, provider)
		require.NoError(t, err)
		require.Equal(t, big.Zero(), amount)

		amount, err = s.Pending(ctx, other)
		require.NoError(t, err)
		require.Equal(t, abi.NewTokenAmount(3), amount)
	})

	t.Run("reloading from disk", func(t *testing.T) {
		_, err := s.Credit(ctx, provider, abi.NewTokenAmount(8))
		require.NoError(t, err)

		s2 := settlement.New(ds)
		amount, err := s2.Pending(ctx, provider)
		require.NoError(t, err)
		require.Equal(t, abi.NewTokenAmount(8), amount)
	})
}

package sequence_test

import (
	"context"
	"testing"

	"github.com/ipfs/go-datastore"
	"github.com/stretchr/testify/require"

	"github.com/dstor-network/go-storage-market/storagemarket/sequence"
)

func TestCounter(t *testing.T) {
	ctx := context.Background()
	ds := datastore.NewMapDatastore()

	t.Run("two instances with same datastore and key count together", func(t *testing.T) {
		key := datastore.NewKey("counter")
		c1 := sequence.New(ds, key)
		next, err := c1.Next(ctx)
		require.NoError(t, err)
		require.Equal(t, uint64(0), next)

		c2 := sequence.New(ds, key)
		next, err = c2.Next(ctx)
		require.NoError(t, err)
		require.Equal(t, uint64(1), next)

		next, err = c1.Next(ctx)
		require.NoError(t, err)
		require.Equal(t, uint64(2), next)
	})

	t.Run("different keys count separately", func(t *testing.T) {
		c1 := sequence.New(ds, datastore.NewKey("counter 1"))
		c2 := sequence.New(ds, datastore.NewKey("counter 2"))

		next, err := c1.Next(ctx)
		require.NoError(t, err)
		require.Equal(t, uint64(0), next)

		next, err = c2.Next(ctx)
		require.NoError(t, err)
		require.Equal(t, uint64(0), next)

		next, err = c1.Next(ctx)
		require.NoError(t, err)
		require.Equal(t, uint64(1), next)
	})
}

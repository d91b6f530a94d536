package requeststore_test

import (
	"testing"

	"github.com/filecoin-project/go-address"
	"github.com/ipfs/go-cid"
	"github.com/ipfs/go-datastore"
	dss "github.com/ipfs/go-datastore/sync"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	"github.com/dstor-network/go-storage-market/shared_testutil"
	"github.com/dstor-network/go-storage-market/storagemarket"
	"github.com/dstor-network/go-storage-market/storagemarket/impl/requeststore"
)

func TestRequestStore(t *testing.T) {
	ds := dss.MutexWrap(datastore.NewMapDatastore())
	s, err := requeststore.New(ds)
	require.NoError(t, err)

	client := shared_testutil.NewIDAddr(t, 100)
	p1 := shared_testutil.NewIDAddr(t, 201)
	p2 := shared_testutil.NewIDAddr(t, 202)
	p3 := shared_testutil.NewIDAddr(t, 203)
	req := shared_testutil.MakeTestStorageRequest(client, []address.Address{p1, p2, p3})

	t.Run("begin and get", func(t *testing.T) {
		require.NoError(t, s.Begin(req))

		stored, err := s.Get(req.Fingerprint)
		require.NoError(t, err)
		require.Equal(t, req, stored)

		has, err := s.Has(req.Fingerprint)
		require.NoError(t, err)
		require.True(t, has)
	})

	t.Run("fingerprint stays taken", func(t *testing.T) {
		err := s.Begin(req)
		require.True(t, xerrors.Is(err, storagemarket.ErrDuplicateResource))
	})

	t.Run("unknown fingerprint", func(t *testing.T) {
		_, err := s.Get(shared_testutil.GenerateFingerprints(1)[0])
		require.True(t, xerrors.Is(err, storagemarket.ErrNotFound))
	})

	t.Run("confirmations accumulate once per provider", func(t *testing.T) {
		updated, err := s.Confirm(req.Fingerprint, p1)
		require.NoError(t, err)
		require.Equal(t, uint64(1), updated.ConfirmationCount())
		require.False(t, updated.Servable())

		_, err = s.Confirm(req.Fingerprint, p1)
		require.True(t, xerrors.Is(err, storagemarket.ErrBadState))

		_, err = s.Confirm(req.Fingerprint, p2)
		require.NoError(t, err)
		updated, err = s.Confirm(req.Fingerprint, p3)
		require.NoError(t, err)
		require.Equal(t, uint64(3), updated.ConfirmationCount())
		require.True(t, updated.Servable())
	})

	t.Run("payment marked once per provider", func(t *testing.T) {
		require.NoError(t, s.MarkPaid(req.Fingerprint, p1))
		err := s.MarkPaid(req.Fingerprint, p1)
		require.True(t, xerrors.Is(err, storagemarket.ErrBadState))

		stored, err := s.Get(req.Fingerprint)
		require.NoError(t, err)
		require.True(t, stored.WasPaid(p1))
		require.False(t, stored.WasPaid(p2))
	})

	t.Run("list by client", func(t *testing.T) {
		other := shared_testutil.NewIDAddr(t, 300)
		otherReq := shared_testutil.MakeTestStorageRequest(other, []address.Address{p1, p2, p3})
		require.NoError(t, s.Begin(otherReq))

		files, err := s.ListByClient(client)
		require.NoError(t, err)
		shared_testutil.AssertFingerprintsEqual(t, []cid.Cid{req.Fingerprint}, files)

		files, err = s.ListByClient(shared_testutil.NewIDAddr(t, 999))
		require.NoError(t, err)
		require.Empty(t, files)
	})

	t.Run("reloading from disk", func(t *testing.T) {
		s2, err := requeststore.New(ds)
		require.NoError(t, err)

		stored, err := s2.Get(req.Fingerprint)
		require.NoError(t, err)
		require.Equal(t, uint64(3), stored.ConfirmationCount())
		require.True(t, stored.WasPaid(p1))
	})
}

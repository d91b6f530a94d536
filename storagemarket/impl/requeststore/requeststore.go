package requeststore

import (
	"context"

	"github.com/filecoin-project/go-address"
	versioning "github.com/filecoin-project/go-ds-versioning/pkg"
	versionedds "github.com/filecoin-project/go-ds-versioning/pkg/datastore"
	"github.com/filecoin-project/go-statestore"
	"github.com/ipfs/go-cid"
	"github.com/ipfs/go-datastore"
	"github.com/ipfs/go-datastore/namespace"
	"golang.org/x/xerrors"

	"github.com/dstor-network/go-storage-market/storagemarket"
)

// DSPrefix is the datastore namespace for storage request records
var DSPrefix = "/requests"

// RequestStore is the persisted collection of storage requests, keyed by
// fingerprint. Records are never deleted, so a fingerprint that was ever
// requested stays taken. The owning ledger serializes all access.
type RequestStore struct {
	store *statestore.StateStore
}

// New returns a request store over the given datastore
func New(ds datastore.Batching) (*RequestStore, error) {
	versionedDs, migrateDs := versionedds.NewVersionedDatastore(ds, nil, versioning.VersionKey("1"))
	err := migrateDs(context.TODO())
	if err != nil {
		return nil, err
	}

	return &RequestStore{
		store: statestore.New(namespace.Wrap(versionedDs, datastore.NewKey(DSPrefix))),
	}, nil
}

// Begin persists a new request record. The fingerprint must not have
// been requested before.
func (s *RequestStore) Begin(req storagemarket.StorageRequest) error {
	has, err := s.store.Has(req.Fingerprint)
	if err != nil {
		return err
	}
	if has {
		return xerrors.Errorf("fingerprint %s already requested: %w", req.Fingerprint, storagemarket.ErrDuplicateResource)
	}
	return s.store.Begin(req.Fingerprint, &req)
}

// Get returns the request record for the fingerprint
func (s *RequestStore) Get(fingerprint cid.Cid) (storagemarket.StorageRequest, error) {
	var out storagemarket.StorageRequest
	if err := s.store.Get(fingerprint).Get(&out); err != nil {
		if xerrors.Is(err, datastore.ErrNotFound) {
			return storagemarket.StorageRequestUndefined, xerrors.Errorf("no request for %s: %w", fingerprint, storagemarket.ErrNotFound)
		}
		return storagemarket.StorageRequestUndefined, err
	}
	return out, nil
}

// Has reports whether the fingerprint was ever requested
func (s *RequestStore) Has(fingerprint cid.Cid) (bool, error) {
	return s.store.Has(fingerprint)
}

// Confirm records the provider's acknowledgement of its assignment and
// returns the updated request. Confirming twice fails and leaves the
// record unchanged.
func (s *RequestStore) Confirm(fingerprint cid.Cid, provider address.Address) (storagemarket.StorageRequest, error) {
	var out storagemarket.StorageRequest
	err := s.mutate(fingerprint, func(req *storagemarket.StorageRequest) error {
		if req.HasConfirmed(provider) {
			return xerrors.Errorf("provider %s already confirmed %s: %w", provider, fingerprint, storagemarket.ErrBadState)
		}
		req.Confirmed = append(req.Confirmed, provider)
		out = *req
		return nil
	})
	if err != nil {
		return storagemarket.StorageRequestUndefined, err
	}
	return out, nil
}

// MarkPaid records that the provider's share of the request cost has
// been released, so it cannot be released again.
func (s *RequestStore) MarkPaid(fingerprint cid.Cid, provider address.Address) error {
	return s.mutate(fingerprint, func(req *storagemarket.StorageRequest) error {
		if req.WasPaid(provider) {
			return xerrors.Errorf("provider %s already paid for %s: %w", provider, fingerprint, storagemarket.ErrBadState)
		}
		req.Paid = append(req.Paid, provider)
		return nil
	})
}

// List returns all request records
func (s *RequestStore) List() ([]storagemarket.StorageRequest, error) {
	var out []storagemarket.StorageRequest
	if err := s.store.List(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByClient returns the fingerprints of all requests made by client.
func (s *RequestStore) ListByClient(client address.Address) ([]cid.Cid, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}
	var out []cid.Cid
	for _, req := range all {
		if req.Client == client {
			out = append(out, req.Fingerprint)
		}
	}
	return out, nil
}

func (s *RequestStore) mutate(fingerprint cid.Cid, mutator func(*storagemarket.StorageRequest) error) error {
	err := s.store.Get(fingerprint).Mutate(mutator)
	if err != nil && xerrors.Is(err, datastore.ErrNotFound) {
		return xerrors.Errorf("no request for %s: %w", fingerprint, storagemarket.ErrNotFound)
	}
	return err
}

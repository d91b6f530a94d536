package prooflog

import (
	"github.com/filecoin-project/go-statestore"
	"github.com/ipfs/go-cid"
	"github.com/ipfs/go-datastore"
	"github.com/ipfs/go-datastore/namespace"
	"golang.org/x/xerrors"

	"github.com/dstor-network/go-storage-market/storagemarket"
)

// DSPrefix is the datastore namespace for proof logs
var DSPrefix = "/proofs"

// ProofLog is the append-only log of proof submissions, one ordered set
// per fingerprint. Records are immutable once verified. The owning
// ledger serializes all access.
type ProofLog struct {
	store *statestore.StateStore
}

// New returns a proof log over the given datastore
func New(ds datastore.Batching) *ProofLog {
	return &ProofLog{
		store: statestore.New(namespace.Wrap(ds, datastore.NewKey(DSPrefix))),
	}
}

// Append adds a record to the fingerprint's proof set and returns its
// index in the log.
func (l *ProofLog) Append(fingerprint cid.Cid, rec storagemarket.ProofRecord) (int, error) {
	if _, err := l.ensureSet(fingerprint); err != nil {
		return 0, err
	}

	index := 0
	err := l.store.Get(fingerprint).Mutate(func(set *storagemarket.ProofSet) error {
		set.Records = append(set.Records, rec)
		index = len(set.Records) - 1
		return nil
	})
	if err != nil {
		return 0, err
	}
	return index, nil
}

// Get returns the fingerprint's proof records, oldest first. A
// fingerprint with no submissions yields an empty slice.
func (l *ProofLog) Get(fingerprint cid.Cid) ([]storagemarket.ProofRecord, error) {
	var set storagemarket.ProofSet
	if err := l.store.Get(fingerprint).Get(&set); err != nil {
		if xerrors.Is(err, datastore.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return set.Records, nil
}

// MarkVerified marks the indexed record as verified and returns it.
// Verified records are immutable: marking one twice fails.
func (l *ProofLog) MarkVerified(fingerprint cid.Cid, index int) (storagemarket.ProofRecord, error) {
	var out storagemarket.ProofRecord
	err := l.store.Get(fingerprint).Mutate(func(set *storagemarket.ProofSet) error {
		if index < 0 || index >= len(set.Records) {
			return xerrors.Errorf("no proof %d for %s: %w", index, fingerprint, storagemarket.ErrNotFound)
		}
		if set.Records[index].Verified {
			return xerrors.Errorf("proof %d for %s already verified: %w", index, fingerprint, storagemarket.ErrBadState)
		}
		set.Records[index].Verified = true
		out = set.Records[index]
		return nil
	})
	if err != nil {
		if xerrors.Is(err, datastore.ErrNotFound) {
			return storagemarket.ProofRecord{}, xerrors.Errorf("no proofs for %s: %w", fingerprint, storagemarket.ErrNotFound)
		}
		return storagemarket.ProofRecord{}, err
	}
	return out, nil
}

func (l *ProofLog) ensureSet(fingerprint cid.Cid) (storagemarket.ProofSet, error) {
	var set storagemarket.ProofSet
	err := l.store.Get(fingerprint).Get(&set)
	if err == nil {
		return set, nil
	}
	if !xerrors.Is(err, datastore.ErrNotFound) {
		return storagemarket.ProofSet{}, err
	}

	set = storagemarket.ProofSet{}
	err = l.store.Begin(fingerprint, &set)
	return set, err
}

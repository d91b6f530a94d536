package shared_testutil

import (
	"math/rand"
	"testing"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/ipfs/go-cid"
	"github.com/stretchr/testify/require"

	"github.com/dstor-network/go-storage-market/storagemarket"
)

// RandomBytes returns a byte array of the given size with random values.
func RandomBytes(n int64) []byte {
	data := make([]byte, n)
	rand.Read(data)
	return data
}

// NewIDAddr returns an ID address for the given id, failing the test on
// error.
func NewIDAddr(t *testing.T, id uint64) address.Address {
	addr, err := address.NewIDAddress(id)
	require.NoError(t, err)
	return addr
}

// MakeTestProvider generates an active provider record with all
// non-zero fields.
func MakeTestProvider(owner address.Address) storagemarket.Provider {
	return storagemarket.Provider{
		Owner:           owner,
		Capacity:        10 * storagemarket.BytesPerGB,
		PricePerGBMonth: abi.NewTokenAmount(int64(rand.Intn(20) + 1)),
		StakedAmount:    storagemarket.MinProviderStake,
		Reputation:      storagemarket.MaxReputation,
		TotalEarnings:   abi.NewTokenAmount(0),
		Active:          true,
		RegisteredAt:    rand.Int63n(1_000_000) + 1,
		Endpoint:        "https://provider.example/" + string(RandomBytes(4)),
	}
}

// MakeTestStorageRequest generates an active request record assigned to
// the given providers.
func MakeTestStorageRequest(client address.Address, providers []address.Address) storagemarket.StorageRequest {
	return storagemarket.StorageRequest{
		Fingerprint:     MakeCID(string(RandomBytes(16)), nil),
		Client:          client,
		Size:            uint64(rand.Intn(int(storagemarket.BytesPerGB))) + 1,
		DurationSeconds: storagemarket.SecondsPerMonth,
		TotalCost:       abi.NewTokenAmount(int64(rand.Intn(100) + int(storagemarket.MinRedundancy))),
		Redundancy:      uint64(len(providers)),
		Providers:       providers,
		Active:          true,
		CreatedAt:       rand.Int63n(1_000_000) + 1,
	}
}

// MakeTestProofRecord generates an unverified proof record for the
// given provider.
func MakeTestProofRecord(provider address.Address) storagemarket.ProofRecord {
	return storagemarket.ProofRecord{
		Provider:   provider,
		MerkleRoot: RandomBytes(32),
		Timestamp:  rand.Int63n(1_000_000) + 1,
	}
}

// AssertFingerprintsEqual requires two fingerprint lists to hold the
// same cids in the same order.
func AssertFingerprintsEqual(t *testing.T, expected []cid.Cid, actual []cid.Cid) {
	require.Equal(t, len(expected), len(actual))
	for i, c := range expected {
		require.True(t, c.Equals(actual[i]))
	}
}

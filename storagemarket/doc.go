/*
Package storagemarket implements the storage-marketplace ledger: provider
registration and staking, the storage-request lifecycle, proof-of-storage
submission, reputation and slashing, and payment settlement.

Major Dependencies

https://github.com/ipfs/go-datastore - for persisting market records
https://github.com/filecoin-project/go-statestore - keyed record collections over a datastore
https://github.com/filecoin-project/go-ds-versioning - versioned datastores for future schema migrations
https://github.com/filecoin-project/go-state-types - token amount arithmetic
https://github.com/hannahhoward/go-pubsub - dispatching market event notifications
https://github.com/whyrusleeping/cbor-gen - serialization of persisted records

This top level package defines the record types, constants, events,
error sentinels and interfaces. The primary implementation lives in the
`impl` directory.

The host application is expected to implement TokenLedger (the
balance/transfer primitive used for stake and payment) and supply it as
a dependency when constructing the ledger. Rendering, authentication,
and content chunking/encryption are outside this module; files enter the
market as an opaque fingerprint plus size.
*/
package storagemarket

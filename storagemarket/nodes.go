package storagemarket

import (
	"context"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/ipfs/go-cid"
)

// TokenLedger is the node dependency supplying the fungible-token
// primitive used for stake and payment. The market never holds token
// state itself; it only moves balances between accounts and its own
// escrow account.
//
// Implementations must not call back into the StorageMarket from inside
// a transfer: operations hold the aggregate lock across the transfer so
// that each call commits as one transaction.
type TokenLedger interface {
	// BalanceOf returns the spendable balance of an account.
	BalanceOf(ctx context.Context, addr address.Address) (abi.TokenAmount, error)

	// Transfer moves tokens from the market's escrow account to `to`.
	Transfer(ctx context.Context, to address.Address, amount abi.TokenAmount) error

	// TransferFrom moves tokens between two third-party accounts, used to
	// escrow stake and storage cost from callers.
	TransferFrom(ctx context.Context, from address.Address, to address.Address, amount abi.TokenAmount) error
}

// ProofVerifier decides whether a submitted proof record is accepted.
// The production protocol for challenging a merkle root is not part of
// this module; the default verifier accepts every submission
// (trust-on-submit) and a sound challenge-response implementation can be
// injected without changing ledger code.
type ProofVerifier interface {
	VerifyProof(ctx context.Context, fingerprint cid.Cid, record ProofRecord) (bool, error)
}

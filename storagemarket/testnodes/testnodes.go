// Package testnodes contains stubbed implementations of the node
// interfaces, for use in tests.
package testnodes

import (
	"context"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/ipfs/go-cid"
	"golang.org/x/xerrors"

	"github.com/dstor-network/go-storage-market/storagemarket"
)

// TransferCall records one Transfer invocation on a FakeTokenLedger
type TransferCall struct {
	To     address.Address
	Amount abi.TokenAmount
}

// TransferFromCall records one TransferFrom invocation on a
// FakeTokenLedger.
type TransferFromCall struct {
	From   address.Address
	To     address.Address
	Amount abi.TokenAmount
}

// FakeTokenLedger is an in-memory token ledger whose transfers can be
// made to fail on demand.
type FakeTokenLedger struct {
	escrow   address.Address
	balances map[address.Address]abi.TokenAmount

	// TransferFailure and TransferFromFailure, when set, are returned by
	// the corresponding call instead of moving tokens.
	TransferFailure     error
	TransferFromFailure error

	TransferCalls     []TransferCall
	TransferFromCalls []TransferFromCall
}

var _ storagemarket.TokenLedger = &FakeTokenLedger{}

// NewFakeTokenLedger returns a fake ledger whose Transfer pays out of
// the given escrow account.
func NewFakeTokenLedger(escrow address.Address) *FakeTokenLedger {
	return &FakeTokenLedger{
		escrow:   escrow,
		balances: map[address.Address]abi.TokenAmount{},
	}
}

// SetBalance fixes addr's balance
func (n *FakeTokenLedger) SetBalance(addr address.Address, amount abi.TokenAmount) {
	n.balances[addr] = amount
}

// BalanceOf returns addr's balance, zero if never set
func (n *FakeTokenLedger) BalanceOf(ctx context.Context, addr address.Address) (abi.TokenAmount, error) {
	balance, ok := n.balances[addr]
	if !ok {
		return big.Zero(), nil
	}
	return balance, nil
}

// Transfer moves amount from the escrow account to to
func (n *FakeTokenLedger) Transfer(ctx context.Context, to address.Address, amount abi.TokenAmount) error {
	n.TransferCalls = append(n.TransferCalls, TransferCall{To: to, Amount: amount})
	if n.TransferFailure != nil {
		return n.TransferFailure
	}
	return n.move(n.escrow, to, amount)
}

// TransferFrom moves amount from from to to
func (n *FakeTokenLedger) TransferFrom(ctx context.Context, from address.Address, to address.Address, amount abi.TokenAmount) error {
	n.TransferFromCalls = append(n.TransferFromCalls, TransferFromCall{From: from, To: to, Amount: amount})
	if n.TransferFromFailure != nil {
		return n.TransferFromFailure
	}
	return n.move(from, to, amount)
}

func (n *FakeTokenLedger) move(from address.Address, to address.Address, amount abi.TokenAmount) error {
	fromBalance, err := n.BalanceOf(context.Background(), from)
	if err != nil {
		return err
	}
	if fromBalance.LessThan(amount) {
		return xerrors.Errorf("balance %s of %s below transfer amount %s", fromBalance, from, amount)
	}
	toBalance, err := n.BalanceOf(context.Background(), to)
	if err != nil {
		return err
	}
	n.balances[from] = big.Sub(fromBalance, amount)
	n.balances[to] = big.Add(toBalance, amount)
	return nil
}

// StubbedProofVerifier returns a fixed verdict, or an error, for every
// proof and records what it saw.
type StubbedProofVerifier struct {
	Accept  bool
	Failure error

	Records []storagemarket.ProofRecord
}

var _ storagemarket.ProofVerifier = &StubbedProofVerifier{}

// VerifyProof returns the stubbed verdict
func (v *StubbedProofVerifier) VerifyProof(ctx context.Context, fingerprint cid.Cid, record storagemarket.ProofRecord) (bool, error) {
	v.Records = append(v.Records, record)
	if v.Failure != nil {
		return false, v.Failure
	}
	return v.Accept, nil
}

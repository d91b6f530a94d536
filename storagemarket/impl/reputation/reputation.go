package reputation

import (
	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	logging "github.com/ipfs/go-log/v2"

	"github.com/dstor-network/go-storage-market/storagemarket"
	"github.com/dstor-network/go-storage-market/storagemarket/impl/registry"
)

var log = logging.Logger("reputation")

// SuccessDelta and FailureDelta are the per-proof reputation adjustments.
const (
	SuccessDelta = 1
	FailureDelta = 10
)

// Change describes the outcome of one reputation adjustment, so the
// owning ledger can emit the corresponding events.
type Change struct {
	Provider address.Address
	NewScore int64

	// Changed is false when the score was already at its bound.
	Changed bool

	// Slashed is set when a failure pushed the score below the
	// reputation threshold.
	Slashed     bool
	SlashAmount abi.TokenAmount
	Deactivated bool
}

// Engine adjusts provider reputation on proof outcomes and triggers
// slashing when a provider falls below the eligibility threshold.
type Engine struct {
	registry *registry.Registry
}

// New returns a reputation engine over the given registry
func New(r *registry.Registry) *Engine {
	return &Engine{registry: r}
}

// OnSuccess bumps the provider's score by SuccessDelta, capped at
// MaxReputation.
func (e *Engine) OnSuccess(provider address.Address) (Change, error) {
	change := Change{Provider: provider, SlashAmount: big.Zero()}
	err := e.registry.Mutate(provider, func(p *storagemarket.Provider) error {
		next := p.Reputation + SuccessDelta
		if next > storagemarket.MaxReputation {
			next = storagemarket.MaxReputation
		}
		change.Changed = next != p.Reputation
		p.Reputation = next
		change.NewScore = next
		return nil
	})
	if err != nil {
		return Change{}, err
	}
	return change, nil
}

// OnFailure drops the provider's score by FailureDelta, floored at zero.
// If the resulting score is below ReputationThreshold the provider is
// slashed, and may be deactivated by the slash.
func (e *Engine) OnFailure(provider address.Address) (Change, error) {
	change := Change{Provider: provider, SlashAmount: big.Zero()}
	err := e.registry.Mutate(provider, func(p *storagemarket.Provider) error {
		next := p.Reputation - FailureDelta
		if next < 0 {
			next = 0
		}
		change.Changed = next != p.Reputation
		p.Reputation = next
		change.NewScore = next
		return nil
	})
	if err != nil {
		return Change{}, err
	}

	if change.NewScore < storagemarket.ReputationThreshold {
		slashed, amount, err := e.registry.Slash(provider)
		if err != nil {
			return Change{}, err
		}
		change.Slashed = true
		change.SlashAmount = amount
		change.Deactivated = !slashed.Active
		log.Warnf("provider %s reputation %d below threshold, slashed %s", provider, change.NewScore, amount)
	}

	return change, nil
}

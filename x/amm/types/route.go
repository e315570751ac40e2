package types

import (
	"fmt"
	"strings"

	"cosmossdk.io/math"
)

// Hop is one swap through one pool as part of a route. Amounts are
// precomputed against the planning-time reserve snapshot; execution
// re-validates them against live reserves.
type Hop struct {
	PoolId      uint64
	TokenId     uint64 // token bought in this hop
	PairKind    PairKind
	AmountIn    math.LegacyDec
	AmountOut   math.LegacyDec
	PriceImpact math.LegacyDec // percent, signed
}

// Route is an ordered sequence of hops from an anchor asset to a target
// token. TotalPriceImpact is the sum of absolute per-hop impacts.
type Route struct {
	Hops             []Hop
	TotalAmountOut   math.LegacyDec
	TotalPriceImpact math.LegacyDec
	// InputKind is the pair kind of the first hop; it decides which
	// anchor balance a wallet spends.
	InputKind PairKind
	// InputAmount is the amount actually entering the first pool, in the
	// first pool's pair-asset units (converted from primary-anchor terms
	// when the first hop is secondary-anchor paired).
	InputAmount math.LegacyDec
}

// Description renders a human-readable anchor-to-target path.
func (r *Route) Description() string {
	if len(r.Hops) == 0 {
		return ""
	}
	parts := make([]string, 0, len(r.Hops)+1)
	switch r.InputKind {
	case PairSecondaryAnchor:
		parts = append(parts, SecondaryAnchorSymbol)
	default:
		parts = append(parts, AnchorSymbol)
	}
	for _, hop := range r.Hops {
		parts = append(parts, fmt.Sprintf("token(%d)", hop.TokenId))
	}
	return strings.Join(parts, " -> ")
}

// TargetTokenId returns the token the route ultimately buys.
func (r *Route) TargetTokenId() uint64 {
	if len(r.Hops) == 0 {
		return 0
	}
	return r.Hops[len(r.Hops)-1].TokenId
}

// Validate checks route shape: non-empty, anchor-rooted, hop outputs
// feeding the next hop's input.
func (r *Route) Validate() error {
	if len(r.Hops) == 0 {
		return ErrInvalidRoute.Wrap("route has no hops")
	}
	if !r.Hops[0].PairKind.IsAnchor() {
		return ErrInvalidRoute.Wrap("route does not start at an anchor-paired pool")
	}
	// The wallet is debited by InputAmount while pools absorb the hop
	// amounts; the two must agree or the books diverge.
	if r.InputAmount.IsNil() {
		return ErrInvalidRoute.Wrap("route has no input amount")
	}
	if !r.InputAmount.Equal(r.Hops[0].AmountIn) {
		return ErrInvalidRoute.Wrapf("input amount %s does not match first hop input %s",
			r.InputAmount, r.Hops[0].AmountIn)
	}
	for i := 1; i < len(r.Hops); i++ {
		if r.Hops[i].PairKind != PairToken {
			return ErrInvalidRoute.Wrapf("hop %d: interior hops must be token-paired", i)
		}
		if !r.Hops[i].AmountIn.Equal(r.Hops[i-1].AmountOut) {
			return ErrInvalidRoute.Wrapf("hop %d: input %s does not match previous output %s",
				i, r.Hops[i].AmountIn, r.Hops[i-1].AmountOut)
		}
	}
	return nil
}

// RouteResult is the outcome of executing a route for a wallet.
type RouteResult struct {
	Route       *Route
	TokenId     uint64
	AmountSpent math.LegacyDec // in InputKind anchor units
	AmountOut   math.LegacyDec
}

package types

import (
	"cosmossdk.io/math"
)

// Params holds the tunable engine parameters. All percentages are
// expressed as decimal fractions (0.003 = 0.3%).
type Params struct {
	// SwapFee is charged on every swap by scaling the input amount.
	SwapFee math.LegacyDec
	// RatioTolerance is the maximum relative deviation a follow-up
	// liquidity deposit may have from the pool's current reserve ratio.
	RatioTolerance math.LegacyDec
	// MaxRouteHops bounds the number of pools a route may pass through.
	MaxRouteHops int
	// ConvergenceIterations bounds the multi-pass price resolution loop.
	ConvergenceIterations int
	// ConvergenceTolerance is the relative price change below which a
	// token is considered converged between passes.
	ConvergenceTolerance math.LegacyDec
	// SecondaryAnchorPrice is the current USD price of the secondary
	// anchor asset.
	SecondaryAnchorPrice math.LegacyDec
}

// DefaultParams returns default parameters for the amm engine
func DefaultParams() Params {
	return Params{
		SwapFee:               math.LegacyNewDecWithPrec(3, 3), // 0.3%
		RatioTolerance:        math.LegacyNewDecWithPrec(1, 3), // 0.1%
		MaxRouteHops:          3,
		ConvergenceIterations: 10,
		ConvergenceTolerance:  math.LegacyNewDecWithPrec(1, 4), // 0.01%
		SecondaryAnchorPrice:  math.LegacyOneDec(),
	}
}

// Validate checks parameter sanity
func (p Params) Validate() error {
	if p.SwapFee.IsNil() || p.SwapFee.IsNegative() || p.SwapFee.GTE(math.LegacyOneDec()) {
		return ErrInvalidParams.Wrapf("swap fee must be in [0, 1): %s", p.SwapFee)
	}
	if p.RatioTolerance.IsNil() || p.RatioTolerance.IsNegative() {
		return ErrInvalidParams.Wrapf("ratio tolerance must be non-negative: %s", p.RatioTolerance)
	}
	if p.MaxRouteHops <= 0 {
		return ErrInvalidParams.Wrapf("max route hops must be positive: %d", p.MaxRouteHops)
	}
	if p.ConvergenceIterations <= 0 {
		return ErrInvalidParams.Wrapf("convergence iterations must be positive: %d", p.ConvergenceIterations)
	}
	if p.ConvergenceTolerance.IsNil() || !p.ConvergenceTolerance.IsPositive() {
		return ErrInvalidParams.Wrapf("convergence tolerance must be positive: %s", p.ConvergenceTolerance)
	}
	if p.SecondaryAnchorPrice.IsNil() || p.SecondaryAnchorPrice.IsNegative() {
		return ErrInvalidParams.Wrapf("secondary anchor price must be non-negative: %s", p.SecondaryAnchorPrice)
	}
	return nil
}

package types

import (
	"cosmossdk.io/math"
)

// CapitalMode selects how derived capital is valued.
type CapitalMode uint8

const (
	// CapitalMarket values token-paired reserves at the paired token's
	// resolved USD price. Counts the same anchor capital once per hop it
	// backs, so the figure inflates with chain depth.
	CapitalMarket CapitalMode = iota
	// CapitalBacking attributes only the proportional share of the real
	// anchor capital that ultimately backs the paired reserve.
	CapitalBacking
)

func (m CapitalMode) String() string {
	if m == CapitalBacking {
		return "backing"
	}
	return "market"
}

// CapitalBreakdown is the system-wide real/derived capital split.
type CapitalBreakdown struct {
	RealCapital    math.LegacyDec
	DerivedCapital math.LegacyDec
	// LeverageRatio is derived / real; zero when no real capital exists.
	LeverageRatio math.LegacyDec
	// AverageDepth is the mean hops-to-anchor across pools with a
	// defined depth.
	AverageDepth math.LegacyDec
}

// TokenImpact is one pool's projected response to an anchor price shock.
type TokenImpact struct {
	TokenId     uint64
	Depth       int
	ValueBefore math.LegacyDec
	ValueAfter  math.LegacyDec
	ImpactPct   math.LegacyDec
}

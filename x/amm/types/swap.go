package types

import (
	"cosmossdk.io/math"
)

// SwapDirection selects which side of a pool the input enters.
type SwapDirection uint8

const (
	// SwapBuy spends pair asset and receives the pooled token.
	SwapBuy SwapDirection = iota
	// SwapSell spends the pooled token and receives pair asset.
	SwapSell
)

func (d SwapDirection) String() string {
	if d == SwapBuy {
		return "buy"
	}
	return "sell"
}

// Quote is a read-only swap projection.
type Quote struct {
	AmountIn     math.LegacyDec
	AmountOut    math.LegacyDec
	Fee          math.LegacyDec
	PriceImpact  math.LegacyDec // percent
	NewPoolPrice math.LegacyDec // pairReserve / tokenReserve after the swap
}

// SwapResult defines the result of an executed swap
type SwapResult struct {
	AmountIn     math.LegacyDec
	AmountOut    math.LegacyDec
	Fee          math.LegacyDec
	PriceImpact  math.LegacyDec // percent
	NewPoolPrice math.LegacyDec
}

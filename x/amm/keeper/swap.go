package keeper

import (
	"time"

	"cosmossdk.io/math"

	"github.com/simdex-labs/simdex/x/amm/types"
)

// CalculateSwapOutput applies the constant product formula with the fee
// taken by scaling the input:
//
//	amountOut = reserveOut * amountIn*(1-fee) / (reserveIn + amountIn*(1-fee))
//
// The full amountIn later enters the input reserve while the output was
// priced on the scaled input, which is what makes k grow with every swap.
func CalculateSwapOutput(amountIn, reserveIn, reserveOut, swapFee math.LegacyDec) (math.LegacyDec, error) {
	if amountIn.IsNil() || !amountIn.IsPositive() {
		return math.LegacyDec{}, types.ErrInvalidAmount.Wrapf("input amount must be positive: %s", amountIn)
	}
	if reserveIn.IsZero() || reserveOut.IsZero() {
		return math.LegacyDec{}, types.ErrInsufficientLiquidity.Wrap("pool reserves must be positive")
	}

	amountInWithFee := amountIn.Mul(math.LegacyOneDec().Sub(swapFee))
	numerator := amountInWithFee.Mul(reserveOut)
	denominator := reserveIn.Add(amountInWithFee)
	amountOut := numerator.Quo(denominator)

	if !amountOut.IsPositive() {
		return math.LegacyDec{}, types.ErrInsufficientLiquidity.Wrap("output amount too small")
	}
	if amountOut.GTE(reserveOut) {
		return math.LegacyDec{}, types.ErrInsufficientLiquidity.Wrapf(
			"output %s would drain reserve %s", amountOut, reserveOut)
	}
	return amountOut, nil
}

// quote computes a swap projection against explicit reserves without
// touching pool state. Pool price is always pairReserve / tokenReserve
// regardless of direction.
func (k *Keeper) quote(pool *types.Pool, amountIn math.LegacyDec, direction types.SwapDirection) (types.Quote, error) {
	if pool.IsEmpty() {
		return types.Quote{}, types.ErrInsufficientLiquidity.Wrapf("pool %d is empty", pool.Id)
	}

	var reserveIn, reserveOut math.LegacyDec
	if direction == types.SwapBuy {
		reserveIn, reserveOut = pool.PairReserve, pool.TokenReserve
	} else {
		reserveIn, reserveOut = pool.TokenReserve, pool.PairReserve
	}

	amountOut, err := CalculateSwapOutput(amountIn, reserveIn, reserveOut, k.params.SwapFee)
	if err != nil {
		return types.Quote{}, err
	}

	priceBefore := pool.PairReserve.Quo(pool.TokenReserve)
	var newTokenReserve, newPairReserve math.LegacyDec
	if direction == types.SwapBuy {
		newPairReserve = pool.PairReserve.Add(amountIn)
		newTokenReserve = pool.TokenReserve.Sub(amountOut)
	} else {
		newTokenReserve = pool.TokenReserve.Add(amountIn)
		newPairReserve = pool.PairReserve.Sub(amountOut)
	}
	priceAfter := newPairReserve.Quo(newTokenReserve)

	impact := priceAfter.Sub(priceBefore).Quo(priceBefore).Mul(math.LegacyNewDec(100))

	return types.Quote{
		AmountIn:     amountIn,
		AmountOut:    amountOut,
		Fee:          amountIn.Mul(k.params.SwapFee),
		PriceImpact:  impact,
		NewPoolPrice: priceAfter,
	}, nil
}

// QuoteSwap projects a swap without mutating any state.
func (k *Keeper) QuoteSwap(poolId uint64, amountIn math.LegacyDec, direction types.SwapDirection) (types.Quote, error) {
	if amountIn.IsNil() || !amountIn.IsPositive() {
		return types.Quote{}, types.ErrInvalidAmount.Wrapf("swap amount must be positive: %s", amountIn)
	}
	pool, err := k.GetPool(poolId)
	if err != nil {
		return types.Quote{}, err
	}
	return k.quote(pool, amountIn, direction)
}

// ExecuteSwap performs a swap against a single pool. All validation
// happens before any reserve is touched, so a rejected swap leaves the
// pool untouched.
func (k *Keeper) ExecuteSwap(poolId uint64, amountIn math.LegacyDec, direction types.SwapDirection) (types.SwapResult, error) {
	start := time.Now()
	defer func() {
		k.metrics.SwapLatency.Observe(time.Since(start).Seconds())
	}()

	if amountIn.IsNil() || !amountIn.IsPositive() {
		return types.SwapResult{}, types.ErrInvalidAmount.Wrapf("swap amount must be positive: %s", amountIn)
	}
	pool, err := k.GetPool(poolId)
	if err != nil {
		return types.SwapResult{}, err
	}

	quote, err := k.quote(pool, amountIn, direction)
	if err != nil {
		k.metrics.SwapsTotal.WithLabelValues(poolLabel(poolId), direction.String(), "failed").Inc()
		return types.SwapResult{}, err
	}

	var newTokenReserve, newPairReserve math.LegacyDec
	if direction == types.SwapBuy {
		newPairReserve = pool.PairReserve.Add(amountIn)
		newTokenReserve = pool.TokenReserve.Sub(quote.AmountOut)
	} else {
		newTokenReserve = pool.TokenReserve.Add(amountIn)
		newPairReserve = pool.PairReserve.Sub(quote.AmountOut)
	}

	// The fee stays in the reserves, so k must never decrease. Checked on
	// the projected reserves before anything is assigned: a rejected swap
	// must leave the pool exactly as it found it.
	if newTokenReserve.Mul(newPairReserve).LT(pool.K()) {
		return types.SwapResult{}, types.ErrInvariantViolation.Wrapf(
			"pool %d constant product would decrease: old_k=%s, new_k=%s",
			poolId, pool.K(), newTokenReserve.Mul(newPairReserve),
		)
	}

	pool.TokenReserve = newTokenReserve
	pool.PairReserve = newPairReserve
	k.bumpGeneration()

	k.metrics.SwapsTotal.WithLabelValues(poolLabel(poolId), direction.String(), "success").Inc()
	k.metrics.SwapVolume.WithLabelValues(poolLabel(poolId)).Add(decToFloat(amountIn))

	k.logger.Info(types.EventTypeSwap,
		types.AttributeKeyPoolId, poolId,
		types.AttributeKeyDirection, direction.String(),
		types.AttributeKeyAmountIn, amountIn.String(),
		types.AttributeKeyAmountOut, quote.AmountOut.String(),
		types.AttributeKeyFee, quote.Fee.String(),
	)

	return types.SwapResult{
		AmountIn:     amountIn,
		AmountOut:    quote.AmountOut,
		Fee:          quote.Fee,
		PriceImpact:  quote.PriceImpact,
		NewPoolPrice: quote.NewPoolPrice,
	}, nil
}

package keeper

import (
	"cosmossdk.io/math"

	"github.com/simdex-labs/simdex/x/amm/types"
)

// AddLiquidity deposits both sides into a pool and mints LP units.
// The first deposit mints sqrt(tokenAmount * pairAmount); follow-up
// deposits must match the pool's reserve ratio within the configured
// tolerance and mint proportionally to the token-side share.
func (k *Keeper) AddLiquidity(poolId uint64, tokenAmount, pairAmount math.LegacyDec) (math.LegacyDec, error) {
	if tokenAmount.IsNil() || !tokenAmount.IsPositive() {
		return math.LegacyDec{}, types.ErrInvalidAmount.Wrapf("token amount must be positive: %s", tokenAmount)
	}
	if pairAmount.IsNil() || !pairAmount.IsPositive() {
		return math.LegacyDec{}, types.ErrInvalidAmount.Wrapf("pair amount must be positive: %s", pairAmount)
	}

	pool, err := k.GetPool(poolId)
	if err != nil {
		return math.LegacyDec{}, err
	}

	available, err := k.AvailableSupply(pool.TokenId)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if tokenAmount.GT(available) {
		return math.LegacyDec{}, types.ErrSupplyExceeded.Wrapf(
			"token %d: deposit %s exceeds available supply %s",
			pool.TokenId, tokenAmount, available,
		)
	}

	var minted math.LegacyDec

	if pool.IsEmpty() {
		// First deposit: geometric mean of the two sides, the Uniswap V2
		// initial-share rule.
		minted, err = tokenAmount.Mul(pairAmount).ApproxSqrt()
		if err != nil {
			return math.LegacyDec{}, types.ErrInvalidAmount.Wrapf("initial LP mint: %v", err)
		}
		if !minted.IsPositive() {
			return math.LegacyDec{}, types.ErrInvalidAmount.Wrap("initial liquidity amounts too small")
		}
	} else {
		// Follow-up deposit: provided ratio must match the pool ratio.
		// Relative deviation = |provided/current - 1|.
		poolRatio := pool.PairReserve.Quo(pool.TokenReserve)
		providedRatio := pairAmount.Quo(tokenAmount)
		deviation := providedRatio.Quo(poolRatio).Sub(math.LegacyOneDec()).Abs()
		if deviation.GT(k.params.RatioTolerance) {
			return math.LegacyDec{}, types.ErrRatioMismatch.Wrapf(
				"pool %d: provided ratio %s deviates %s from pool ratio %s (tolerance %s)",
				poolId, providedRatio, deviation, poolRatio, k.params.RatioTolerance,
			)
		}
		minted = pool.LpSupply.Mul(tokenAmount).Quo(pool.TokenReserve)
	}

	pool.TokenReserve = pool.TokenReserve.Add(tokenAmount)
	pool.PairReserve = pool.PairReserve.Add(pairAmount)
	pool.LpSupply = pool.LpSupply.Add(minted)
	k.bumpGeneration()

	k.metrics.LiquidityAdded.WithLabelValues(poolLabel(poolId)).Add(decToFloat(pairAmount))

	k.logger.Info(types.EventTypeAddLiquidity,
		types.AttributeKeyPoolId, poolId,
		types.AttributeKeyTokenAmount, tokenAmount.String(),
		types.AttributeKeyPairAmount, pairAmount.String(),
		types.AttributeKeyLpMinted, minted.String(),
	)

	return minted, nil
}

// RemoveLiquidity burns LP units and returns the proportional share of
// both reserves.
func (k *Keeper) RemoveLiquidity(poolId uint64, lpAmount math.LegacyDec) (math.LegacyDec, math.LegacyDec, error) {
	if lpAmount.IsNil() || !lpAmount.IsPositive() {
		return math.LegacyDec{}, math.LegacyDec{}, types.ErrInvalidAmount.Wrapf("lp amount must be positive: %s", lpAmount)
	}

	pool, err := k.GetPool(poolId)
	if err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}
	if pool.IsEmpty() || pool.LpSupply.IsZero() {
		return math.LegacyDec{}, math.LegacyDec{}, types.ErrInsufficientLiquidity.Wrapf("pool %d is empty", poolId)
	}
	if lpAmount.GT(pool.LpSupply) {
		return math.LegacyDec{}, math.LegacyDec{}, types.ErrInvalidAmount.Wrapf(
			"lp amount %s exceeds supply %s", lpAmount, pool.LpSupply)
	}

	share := lpAmount.Quo(pool.LpSupply)
	tokenOut := pool.TokenReserve.Mul(share)
	pairOut := pool.PairReserve.Mul(share)

	pool.TokenReserve = pool.TokenReserve.Sub(tokenOut)
	pool.PairReserve = pool.PairReserve.Sub(pairOut)
	pool.LpSupply = pool.LpSupply.Sub(lpAmount)
	k.bumpGeneration()

	k.metrics.LiquidityRemoved.WithLabelValues(poolLabel(poolId)).Add(decToFloat(pairOut))

	k.logger.Info(types.EventTypeRemoveLiquidity,
		types.AttributeKeyPoolId, poolId,
		types.AttributeKeyTokenAmount, tokenOut.String(),
		types.AttributeKeyPairAmount, pairOut.String(),
		types.AttributeKeyLpBurned, lpAmount.String(),
	)

	return tokenOut, pairOut, nil
}

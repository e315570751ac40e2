package keeper

import (
	"sort"

	"cosmossdk.io/math"

	"github.com/simdex-labs/simdex/x/amm/types"
)

// LiquidityDepth returns the number of token-to-token hops between a
// token's pool and the nearest anchor-paired pool. Anchor-kind pools
// have depth zero. The second return is false when no depth is defined:
// the chain cycles or runs into a missing pool.
func (k *Keeper) LiquidityDepth(tokenId uint64) (int, bool) {
	return k.liquidityDepth(tokenId, make(map[uint64]struct{}))
}

func (k *Keeper) liquidityDepth(tokenId uint64, visiting map[uint64]struct{}) (int, bool) {
	if _, revisited := visiting[tokenId]; revisited {
		return 0, false
	}
	pool, err := k.GetPoolByToken(tokenId)
	if err != nil {
		return 0, false
	}
	if pool.PairKind.IsAnchor() {
		return 0, true
	}
	visiting[tokenId] = struct{}{}
	depth, ok := k.liquidityDepth(pool.PairedTokenId, visiting)
	delete(visiting, tokenId)
	if !ok {
		return 0, false
	}
	return depth + 1, true
}

// RealCapital returns the anchor value actually deposited into a
// token's pool. Non-zero only for anchor-kind pools; token-paired pools
// hold no anchor capital of their own.
func (k *Keeper) RealCapital(tokenId uint64) (math.LegacyDec, error) {
	pool, err := k.GetPoolByToken(tokenId)
	if err != nil {
		return math.LegacyDec{}, err
	}
	return k.realCapitalOf(pool), nil
}

func (k *Keeper) realCapitalOf(pool *types.Pool) math.LegacyDec {
	switch pool.PairKind {
	case types.PairAnchor:
		return pool.PairReserve
	case types.PairSecondaryAnchor:
		return pool.PairReserve.Mul(k.params.SecondaryAnchorPrice)
	default:
		return math.LegacyZeroDec()
	}
}

// DerivedCapital values a token-paired pool's pair reserve. Market mode
// prices the reserve at the paired token's resolved USD price — the
// figure that inflates with chain depth, because the same anchor
// deposit is counted once per pool it backs. Backing mode walks the
// chain and attributes only the proportional share of the real capital
// that ultimately stands behind the paired reserve.
func (k *Keeper) DerivedCapital(tokenId uint64, mode types.CapitalMode) (math.LegacyDec, error) {
	pool, err := k.GetPoolByToken(tokenId)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if pool.PairKind != types.PairToken {
		return math.LegacyZeroDec(), nil
	}

	if mode == types.CapitalMarket {
		paired, err := k.GetPoolByToken(pool.PairedTokenId)
		if err != nil {
			return math.LegacyZeroDec(), nil
		}
		price := k.resolvePrice(paired, make(map[uint64]struct{}))
		return pool.PairReserve.Mul(price.Value), nil
	}
	return k.backingCapital(pool, make(map[uint64]struct{})), nil
}

// backingCapital attributes to a token-paired pool its share of the
// real anchor capital reachable through the chain: the fraction of the
// paired token's total supply locked in this pool, times whatever real
// capital backs the paired token itself. Cycles contribute nothing.
func (k *Keeper) backingCapital(pool *types.Pool, visiting map[uint64]struct{}) math.LegacyDec {
	if _, revisited := visiting[pool.TokenId]; revisited {
		return math.LegacyZeroDec()
	}
	paired, err := k.GetPoolByToken(pool.PairedTokenId)
	if err != nil {
		return math.LegacyZeroDec()
	}
	if paired.TotalSupply.IsZero() {
		return math.LegacyZeroDec()
	}
	fraction := pool.PairReserve.Quo(paired.TotalSupply)

	var pairedBacking math.LegacyDec
	if paired.PairKind.IsAnchor() {
		pairedBacking = k.realCapitalOf(paired)
	} else {
		visiting[pool.TokenId] = struct{}{}
		pairedBacking = k.backingCapital(paired, visiting)
		delete(visiting, pool.TokenId)
	}
	return fraction.Mul(pairedBacking)
}

// CapitalBreakdown aggregates the system-wide real/derived split using
// market-mode derived valuation, plus the mean chain depth across all
// pools whose depth is defined.
func (k *Keeper) CapitalBreakdown() types.CapitalBreakdown {
	real := math.LegacyZeroDec()
	derived := math.LegacyZeroDec()
	depthSum := math.LegacyZeroDec()
	depthCount := 0

	k.IteratePools(func(pool *types.Pool) bool {
		real = real.Add(k.realCapitalOf(pool))
		if pool.PairKind == types.PairToken {
			dc, err := k.DerivedCapital(pool.TokenId, types.CapitalMarket)
			if err == nil {
				derived = derived.Add(dc)
			}
		}
		if depth, ok := k.liquidityDepth(pool.TokenId, make(map[uint64]struct{})); ok {
			depthSum = depthSum.Add(math.LegacyNewDec(int64(depth)))
			depthCount++
		}
		return false
	})

	leverage := math.LegacyZeroDec()
	if real.IsPositive() {
		leverage = derived.Quo(real)
	}
	avgDepth := math.LegacyZeroDec()
	if depthCount > 0 {
		avgDepth = depthSum.Quo(math.LegacyNewDec(int64(depthCount)))
	}

	return types.CapitalBreakdown{
		RealCapital:    real,
		DerivedCapital: derived,
		LeverageRatio:  leverage,
		AverageDepth:   avgDepth,
	}
}

// CascadeImpact projects an anchor price shock through the pairing
// graph. A pool at depth d sees its total value scale by
// (1+pctChange)^(d+1): each hop re-prices against the one below it, so
// the shock compounds with depth. Pools with undefined depth (cyclic
// chains) are excluded. Results are sorted by impact magnitude,
// descending.
func (k *Keeper) CascadeImpact(pctChange math.LegacyDec) ([]types.TokenImpact, error) {
	if pctChange.IsNil() || pctChange.LTE(math.LegacyNewDec(-1)) {
		return nil, types.ErrInvalidParams.Wrapf("pct change must be greater than -100%%: %s", pctChange)
	}

	factorBase := math.LegacyOneDec().Add(pctChange)
	impacts := make([]types.TokenImpact, 0, len(k.pools))

	k.IteratePools(func(pool *types.Pool) bool {
		depth, ok := k.liquidityDepth(pool.TokenId, make(map[uint64]struct{}))
		if !ok {
			return false
		}

		value := k.poolValueUSD(pool)
		factor := factorBase.Power(uint64(depth + 1))

		impacts = append(impacts, types.TokenImpact{
			TokenId:     pool.TokenId,
			Depth:       depth,
			ValueBefore: value,
			ValueAfter:  value.Mul(factor),
			ImpactPct:   factor.Sub(math.LegacyOneDec()).Mul(math.LegacyNewDec(100)),
		})
		return false
	})

	sort.SliceStable(impacts, func(i, j int) bool {
		di := impacts[i].ImpactPct.Abs()
		dj := impacts[j].ImpactPct.Abs()
		if !di.Equal(dj) {
			return di.GT(dj)
		}
		return impacts[i].ValueBefore.GT(impacts[j].ValueBefore)
	})

	k.metrics.CascadeRuns.Inc()
	return impacts, nil
}

// poolValueUSD is the pool's market value: both reserves at resolved
// USD prices. The pair side prices as anchor, secondary anchor, or the
// paired token respectively.
func (k *Keeper) poolValueUSD(pool *types.Pool) math.LegacyDec {
	tokenPrice := k.resolvePrice(pool, make(map[uint64]struct{}))
	value := pool.TokenReserve.Mul(tokenPrice.Value)

	switch pool.PairKind {
	case types.PairAnchor:
		value = value.Add(pool.PairReserve)
	case types.PairSecondaryAnchor:
		value = value.Add(pool.PairReserve.Mul(k.params.SecondaryAnchorPrice))
	default:
		if paired, err := k.GetPoolByToken(pool.PairedTokenId); err == nil {
			pairedPrice := k.resolvePrice(paired, make(map[uint64]struct{}))
			value = value.Add(pool.PairReserve.Mul(pairedPrice.Value))
		}
	}
	return value
}

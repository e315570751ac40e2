package keeper

import (
	"cosmossdk.io/math"

	"github.com/simdex-labs/simdex/x/amm/types"
)

// ResolvePriceUSD resolves a token's USD valuation by walking its
// pairing chain. A chain that revisits a token resolves to a zero price
// flagged degenerate instead of failing; user-built pairing graphs may
// legitimately contain cycles.
func (k *Keeper) ResolvePriceUSD(tokenId uint64) (types.TokenPrice, error) {
	pool, err := k.GetPoolByToken(tokenId)
	if err != nil {
		return types.TokenPrice{}, err
	}
	return k.resolvePrice(pool, make(map[uint64]struct{})), nil
}

// resolvePrice is the recursive resolver. The visiting set is threaded
// through calls explicitly; there is no global traversal state.
func (k *Keeper) resolvePrice(pool *types.Pool, visiting map[uint64]struct{}) types.TokenPrice {
	tokenId := pool.TokenId

	if _, revisited := visiting[tokenId]; revisited {
		k.metrics.DegeneratePrices.Inc()
		k.logger.Warn("circular pairing chain, price degenerates to zero",
			types.AttributeKeyTokenId, tokenId)
		return types.DegeneratePrice()
	}

	// Cached non-zero prices from the current generation are authoritative.
	// Zero and degenerate entries recompute on every read so a cycle fix
	// or a first deposit shows up immediately.
	if entry, ok := k.priceCache[tokenId]; ok &&
		entry.generation == k.generation && entry.price.Value.IsPositive() {
		return entry.price
	}

	price := k.computePrice(pool, visiting)
	k.priceCache[tokenId] = priceEntry{price: price, generation: k.generation}
	return price
}

func (k *Keeper) computePrice(pool *types.Pool, visiting map[uint64]struct{}) types.TokenPrice {
	if pool.IsEmpty() {
		return types.ZeroPrice()
	}

	priceInPair := pool.PairReserve.Quo(pool.TokenReserve)

	switch pool.PairKind {
	case types.PairAnchor:
		return types.TokenPrice{Value: priceInPair}
	case types.PairSecondaryAnchor:
		return types.TokenPrice{Value: priceInPair.Mul(k.params.SecondaryAnchorPrice)}
	default:
		paired, err := k.GetPoolByToken(pool.PairedTokenId)
		if err != nil {
			// Dangling edge: the paired token's pool is gone. Price is
			// undefined, treated like a cycle.
			return types.DegeneratePrice()
		}
		visiting[pool.TokenId] = struct{}{}
		pairedPrice := k.resolvePrice(paired, visiting)
		delete(visiting, pool.TokenId)
		return types.TokenPrice{
			Value:      priceInPair.Mul(pairedPrice.Value),
			Degenerate: pairedPrice.Degenerate,
		}
	}
}

// ResolveAllPrices re-converges every token's USD valuation after a
// mutation batch. Anchor-paired tokens resolve directly; token-paired
// tokens can depend on each other transitively, so they iterate until
// no price moves more than the convergence tolerance or the pass bound
// is hit. Returns the number of passes used.
func (k *Keeper) ResolveAllPrices() int {
	var tokenPaired []*types.Pool

	k.IteratePools(func(pool *types.Pool) bool {
		if pool.PairKind.IsAnchor() {
			delete(k.priceCache, pool.TokenId)
			k.resolvePrice(pool, make(map[uint64]struct{}))
		} else {
			tokenPaired = append(tokenPaired, pool)
		}
		return false
	})

	passes := 0
	converged := len(tokenPaired) == 0
	for !converged && passes < k.params.ConvergenceIterations {
		passes++
		converged = true
		for _, pool := range tokenPaired {
			var old math.LegacyDec
			if entry, ok := k.priceCache[pool.TokenId]; ok && entry.generation == k.generation {
				old = entry.price.Value
			} else {
				old = math.LegacyZeroDec()
			}

			delete(k.priceCache, pool.TokenId)
			next := k.resolvePrice(pool, make(map[uint64]struct{})).Value

			if old.IsZero() {
				if !next.IsZero() {
					converged = false
				}
				continue
			}
			if next.Sub(old).Abs().Quo(old).GT(k.params.ConvergenceTolerance) {
				converged = false
			}
		}
	}

	if !converged {
		// Oscillating or deeply circular pairing graph.
		k.logger.Warn("price resolution hit iteration bound without converging",
			types.AttributeKeyPasses, passes)
	}

	k.metrics.ConvergencePasses.Observe(float64(passes))
	k.logger.Debug(types.EventTypePricesResolved, types.AttributeKeyPasses, passes)
	return passes
}

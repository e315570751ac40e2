package keeper

import (
	"cosmossdk.io/math"

	"github.com/simdex-labs/simdex/x/amm/types"
)

// FindAllPaths discovers every acyclic pool path from an anchor asset
// to the target token, walking backward along the pairing chain: the
// target's pool either terminates at an anchor kind or extends through
// its paired token. Paths longer than maxHops pools or revisiting a
// token are discarded. Returned paths are ordered anchor-side first.
func (k *Keeper) FindAllPaths(targetTokenId uint64, maxHops int) ([][]uint64, error) {
	if maxHops <= 0 {
		maxHops = k.params.MaxRouteHops
	}
	if _, err := k.GetPoolByToken(targetTokenId); err != nil {
		return nil, err
	}

	var paths [][]uint64
	visited := make(map[uint64]struct{})
	chain := make([]uint64, 0, maxHops)

	current := targetTokenId
	for {
		if _, seen := visited[current]; seen {
			// Cycle: no anchor is reachable through this chain.
			return paths, nil
		}
		pool, err := k.GetPoolByToken(current)
		if err != nil {
			// Dangling pair edge, chain is unroutable.
			return paths, nil
		}
		if len(chain) >= maxHops {
			return paths, nil
		}

		visited[current] = struct{}{}
		// Prepend: the walk runs target -> anchor, the path runs anchor -> target.
		chain = append([]uint64{pool.Id}, chain...)

		if pool.PairKind.IsAnchor() {
			paths = append(paths, chain)
			return paths, nil
		}
		current = pool.PairedTokenId
	}
}

// SimulatePath walks a pool path hop by hop on copied reserves, never
// mutating any pool. amountIn is denominated in primary-anchor terms;
// when the path enters through a secondary-anchor pool the amount is
// converted at the current secondary-anchor USD price first. Returns
// nil (no error) if any hop's pool lacks liquidity.
func (k *Keeper) SimulatePath(path []uint64, amountIn math.LegacyDec) (*types.Route, error) {
	if len(path) == 0 {
		return nil, types.ErrInvalidRoute.Wrap("empty path")
	}
	if amountIn.IsNil() || !amountIn.IsPositive() {
		return nil, types.ErrInvalidAmount.Wrapf("amount must be positive: %s", amountIn)
	}

	first, err := k.GetPool(path[0])
	if err != nil {
		return nil, err
	}

	input := amountIn
	if first.PairKind == types.PairSecondaryAnchor {
		rate := k.params.SecondaryAnchorPrice
		if !rate.IsPositive() {
			return nil, nil
		}
		input = amountIn.Quo(rate)
	}

	route := &types.Route{
		Hops:             make([]types.Hop, 0, len(path)),
		TotalPriceImpact: math.LegacyZeroDec(),
		InputKind:        first.PairKind,
		InputAmount:      input,
	}

	current := input
	for _, poolId := range path {
		pool, err := k.GetPool(poolId)
		if err != nil {
			return nil, err
		}
		if pool.IsEmpty() {
			return nil, nil
		}

		amountOut, err := CalculateSwapOutput(current, pool.PairReserve, pool.TokenReserve, k.params.SwapFee)
		if err != nil {
			return nil, nil
		}

		priceBefore := pool.PairReserve.Quo(pool.TokenReserve)
		priceAfter := pool.PairReserve.Add(current).Quo(pool.TokenReserve.Sub(amountOut))
		impact := priceAfter.Sub(priceBefore).Quo(priceBefore).Mul(math.LegacyNewDec(100))

		route.Hops = append(route.Hops, types.Hop{
			PoolId:      poolId,
			TokenId:     pool.TokenId,
			PairKind:    pool.PairKind,
			AmountIn:    current,
			AmountOut:   amountOut,
			PriceImpact: impact,
		})
		route.TotalPriceImpact = route.TotalPriceImpact.Add(impact.Abs())
		current = amountOut
	}

	route.TotalAmountOut = current
	return route, nil
}

// FindBestRoute enumerates all paths to the target within the hop
// bound, simulates each against current reserves, and returns the one
// with the greatest output; ties go to the shorter path. A nil route
// with nil error means no viable path exists — an expected outcome,
// not a failure.
func (k *Keeper) FindBestRoute(targetTokenId uint64, amountIn math.LegacyDec) (*types.Route, error) {
	if amountIn.IsNil() || !amountIn.IsPositive() {
		return nil, types.ErrInvalidAmount.Wrapf("amount must be positive: %s", amountIn)
	}

	paths, err := k.FindAllPaths(targetTokenId, k.params.MaxRouteHops)
	if err != nil {
		return nil, err
	}

	var best *types.Route
	for _, path := range paths {
		route, err := k.SimulatePath(path, amountIn)
		if err != nil {
			return nil, err
		}
		if route == nil {
			continue
		}
		if best == nil ||
			route.TotalAmountOut.GT(best.TotalAmountOut) ||
			(route.TotalAmountOut.Equal(best.TotalAmountOut) && len(route.Hops) < len(best.Hops)) {
			best = route
		}
	}
	return best, nil
}

// ExecuteRoute applies a planned route's precomputed amounts as real
// reserve mutations, debiting and crediting the wallet. Every hop is
// re-validated against live reserves before anything is touched, so the
// route either commits fully or not at all; the amounts were planned
// against a snapshot and a pool may have moved since.
func (k *Keeper) ExecuteRoute(walletId string, route *types.Route) (*types.RouteResult, error) {
	if route == nil {
		return nil, types.ErrInvalidRoute.Wrap("nil route")
	}
	if err := route.Validate(); err != nil {
		return nil, err
	}

	wallet, err := k.GetWallet(walletId)
	if err != nil {
		return nil, err
	}
	if wallet.AnchorBalanceFor(route.InputKind).LT(route.InputAmount) {
		return nil, types.ErrInsufficientFunds.Wrapf(
			"wallet %s: have %s, route needs %s",
			walletId, wallet.AnchorBalanceFor(route.InputKind), route.InputAmount,
		)
	}

	// Validation phase: replay every hop's deltas on copies and make
	// sure reserves stay funded and k never shrinks. Nothing mutates
	// until the whole route checks out.
	type delta struct {
		pool            *types.Pool
		newTokenReserve math.LegacyDec
		newPairReserve  math.LegacyDec
	}
	deltas := make([]delta, 0, len(route.Hops))
	for i, hop := range route.Hops {
		pool, err := k.GetPool(hop.PoolId)
		if err != nil {
			return nil, err
		}
		if pool.IsEmpty() {
			return nil, types.ErrInsufficientLiquidity.Wrapf("hop %d: pool %d is empty", i, hop.PoolId)
		}
		if hop.AmountOut.GTE(pool.TokenReserve) {
			return nil, types.ErrInsufficientLiquidity.Wrapf(
				"hop %d: output %s would drain pool %d token reserve %s",
				i, hop.AmountOut, hop.PoolId, pool.TokenReserve,
			)
		}
		newTokenReserve := pool.TokenReserve.Sub(hop.AmountOut)
		newPairReserve := pool.PairReserve.Add(hop.AmountIn)
		if newTokenReserve.Mul(newPairReserve).LT(pool.K()) {
			return nil, types.ErrInvariantViolation.Wrapf(
				"hop %d: pool %d constant product would decrease", i, hop.PoolId)
		}
		deltas = append(deltas, delta{pool: pool, newTokenReserve: newTokenReserve, newPairReserve: newPairReserve})
	}

	// Commit phase: nothing below can fail.
	if route.InputKind == types.PairSecondaryAnchor {
		wallet.SecondaryBalance = wallet.SecondaryBalance.Sub(route.InputAmount)
	} else {
		wallet.AnchorBalance = wallet.AnchorBalance.Sub(route.InputAmount)
	}
	for _, d := range deltas {
		d.pool.TokenReserve = d.newTokenReserve
		d.pool.PairReserve = d.newPairReserve
	}
	wallet.CreditToken(route.TargetTokenId(), route.TotalAmountOut)
	k.bumpGeneration()

	k.metrics.RoutesExecuted.WithLabelValues("success").Inc()
	k.metrics.RouteHops.Observe(float64(len(route.Hops)))

	k.logger.Info(types.EventTypeRouteExecuted,
		types.AttributeKeyWallet, walletId,
		types.AttributeKeyPath, route.Description(),
		types.AttributeKeyHops, len(route.Hops),
		types.AttributeKeyAmountIn, route.InputAmount.String(),
		types.AttributeKeyAmountOut, route.TotalAmountOut.String(),
	)

	return &types.RouteResult{
		Route:       route,
		TokenId:     route.TargetTokenId(),
		AmountSpent: route.InputAmount,
		AmountOut:   route.TotalAmountOut,
	}, nil
}

package keeper

import (
	"cosmossdk.io/math"

	"github.com/simdex-labs/simdex/x/amm/types"
)

// CreatePool registers a new pool for a token. Every token owns exactly
// one pool; the pool starts empty and is funded through AddLiquidity.
// Token-paired pools require the paired token's pool to exist already,
// so the pairing graph only ever references registered tokens.
func (k *Keeper) CreatePool(tokenId uint64, name string, totalSupply math.LegacyDec, pairKind types.PairKind, pairedTokenId uint64) (*types.Pool, error) {
	if tokenId == 0 {
		return nil, types.ErrInvalidTokenId.Wrap("token id must be non-zero")
	}
	if totalSupply.IsNil() || !totalSupply.IsPositive() {
		return nil, types.ErrInvalidAmount.Wrapf("total supply must be positive: %s", totalSupply)
	}
	if _, exists := k.byToken[tokenId]; exists {
		return nil, types.ErrPoolAlreadyExists.Wrapf("token %d already has a pool", tokenId)
	}

	switch pairKind {
	case types.PairAnchor, types.PairSecondaryAnchor:
		if pairedTokenId != 0 {
			return nil, types.ErrInvalidTokenId.Wrap("anchor-paired pools must not reference a paired token")
		}
	case types.PairToken:
		if pairedTokenId == tokenId {
			return nil, types.ErrInvalidTokenId.Wrapf("token %d cannot pair with itself", tokenId)
		}
		if _, err := k.GetPoolByToken(pairedTokenId); err != nil {
			return nil, types.ErrInvalidTokenId.Wrapf("paired token %d has no pool", pairedTokenId)
		}
	default:
		return nil, types.ErrInvalidParams.Wrapf("unknown pair kind %d", pairKind)
	}

	poolId := k.nextPoolId
	k.nextPoolId++

	pool := &types.Pool{
		Id:            poolId,
		TokenId:       tokenId,
		Name:          name,
		PairKind:      pairKind,
		PairedTokenId: pairedTokenId,
		TokenReserve:  math.LegacyZeroDec(),
		PairReserve:   math.LegacyZeroDec(),
		LpSupply:      math.LegacyZeroDec(),
		TotalSupply:   totalSupply,
	}

	k.pools[poolId] = pool
	k.byToken[tokenId] = poolId
	k.metrics.PoolsTotal.Inc()

	k.logger.Info(types.EventTypePoolCreated,
		types.AttributeKeyPoolId, poolId,
		types.AttributeKeyTokenId, tokenId,
		"pair_kind", pairKind.String(),
	)

	return pool, nil
}

// GetPool retrieves a pool by its unique numeric ID.
// Returns ErrPoolNotFound if the pool does not exist.
func (k *Keeper) GetPool(poolId uint64) (*types.Pool, error) {
	pool, ok := k.pools[poolId]
	if !ok {
		return nil, types.ErrPoolNotFound.Wrapf("pool %d not found", poolId)
	}
	return pool, nil
}

// GetPoolByToken retrieves the pool backing a token.
func (k *Keeper) GetPoolByToken(tokenId uint64) (*types.Pool, error) {
	poolId, ok := k.byToken[tokenId]
	if !ok {
		return nil, types.ErrPoolNotFound.Wrapf("token %d has no pool", tokenId)
	}
	return k.pools[poolId], nil
}

// IteratePools iterates over all pools in pool-id order
func (k *Keeper) IteratePools(cb func(pool *types.Pool) (stop bool)) {
	for _, id := range k.sortedPoolIds() {
		if cb(k.pools[id]) {
			break
		}
	}
}

// GetAllPools returns all pools in pool-id order
func (k *Keeper) GetAllPools() []*types.Pool {
	pools := make([]*types.Pool, 0, len(k.pools))
	k.IteratePools(func(pool *types.Pool) bool {
		pools = append(pools, pool)
		return false
	})
	return pools
}

// SetPairing re-points a token's pool at a different pair asset. The
// pairing graph is user-constructible and re-pairing may close a cycle;
// the price resolver degrades cyclic chains to zero rather than
// rejecting them here. Reserve magnitudes are kept as-is.
func (k *Keeper) SetPairing(tokenId uint64, pairKind types.PairKind, pairedTokenId uint64) error {
	pool, err := k.GetPoolByToken(tokenId)
	if err != nil {
		return err
	}

	switch pairKind {
	case types.PairAnchor, types.PairSecondaryAnchor:
		if pairedTokenId != 0 {
			return types.ErrInvalidTokenId.Wrap("anchor-paired pools must not reference a paired token")
		}
	case types.PairToken:
		if pairedTokenId == tokenId {
			return types.ErrInvalidTokenId.Wrapf("token %d cannot pair with itself", tokenId)
		}
		if _, err := k.GetPoolByToken(pairedTokenId); err != nil {
			return types.ErrInvalidTokenId.Wrapf("paired token %d has no pool", pairedTokenId)
		}
	default:
		return types.ErrInvalidParams.Wrapf("unknown pair kind %d", pairKind)
	}

	pool.PairKind = pairKind
	pool.PairedTokenId = pairedTokenId
	k.bumpGeneration()
	return nil
}

// AvailableSupply returns the portion of a token's total supply not yet
// committed anywhere: totalSupply minus the token's own reserve, minus
// every reserve where the token serves as another pool's pair asset.
// The second deduction matters: supply locked as pairing collateral
// never entered the token's own pool but is just as unavailable.
func (k *Keeper) AvailableSupply(tokenId uint64) (math.LegacyDec, error) {
	pool, err := k.GetPoolByToken(tokenId)
	if err != nil {
		return math.LegacyDec{}, err
	}

	available := pool.TotalSupply.Sub(pool.TokenReserve)
	k.IteratePools(func(other *types.Pool) bool {
		if other.PairKind == types.PairToken && other.PairedTokenId == tokenId {
			available = available.Sub(other.PairReserve)
		}
		return false
	})
	return available, nil
}

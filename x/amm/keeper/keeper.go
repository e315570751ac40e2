package keeper

import (
	"sort"

	"cosmossdk.io/log"
	"cosmossdk.io/math"

	"github.com/simdex-labs/simdex/x/amm/types"
)

// priceEntry memoizes one token's resolved USD price. An entry is fresh
// while its generation matches the keeper's mutation generation.
type priceEntry struct {
	price      types.TokenPrice
	generation uint64
}

// Keeper owns the simulated AMM economy: the pool registry, wallets,
// the price cache and the trade-chain scheduler. All operations are
// synchronous and run to completion; the engine carries no locking
// because nothing suspends mid-operation.
type Keeper struct {
	logger  log.Logger
	params  types.Params
	metrics *Metrics

	pools   map[uint64]*types.Pool // by pool id
	byToken map[uint64]uint64      // token id -> pool id
	wallets map[string]*types.Wallet

	nextPoolId uint64

	// generation increments on every reserve mutation; price cache
	// entries from older generations are stale.
	generation uint64
	priceCache map[uint64]priceEntry

	paused    bool
	scheduler *ChainScheduler
}

// NewKeeper creates a new amm Keeper instance
func NewKeeper(logger log.Logger, params types.Params) (*Keeper, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	k := &Keeper{
		logger:     logger.With("module", types.ModuleName),
		params:     params,
		metrics:    GetMetrics(),
		pools:      make(map[uint64]*types.Pool),
		byToken:    make(map[uint64]uint64),
		wallets:    make(map[string]*types.Wallet),
		nextPoolId: 1,
		priceCache: make(map[uint64]priceEntry),
	}
	k.scheduler = NewChainScheduler(k)
	return k, nil
}

// Logger returns the keeper's logger
func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// Scheduler returns the trade-chain scheduler.
func (k *Keeper) Scheduler() *ChainScheduler {
	return k.scheduler
}

// Generation returns the current mutation generation.
func (k *Keeper) Generation() uint64 {
	return k.generation
}

// bumpGeneration invalidates every cached price. Called after any
// reserve mutation; caches recompute lazily on next read.
func (k *Keeper) bumpGeneration() {
	k.generation++
}

// IsPaused reports whether the engine is paused.
func (k *Keeper) IsPaused() bool {
	return k.paused
}

// Pause stops chained-trade execution. Already-scheduled steps stay
// queued and are re-checked at execution time.
func (k *Keeper) Pause() {
	if k.paused {
		return
	}
	k.paused = true
	k.logger.Info(types.EventTypeEnginePaused)
}

// Resume re-enables chained-trade execution.
func (k *Keeper) Resume() {
	if !k.paused {
		return
	}
	k.paused = false
	k.logger.Info(types.EventTypeEngineResumed)
}

// SecondaryAnchorPrice returns the configured USD price of the
// secondary anchor asset.
func (k *Keeper) SecondaryAnchorPrice() math.LegacyDec {
	return k.params.SecondaryAnchorPrice
}

// SetSecondaryAnchorPrice updates the secondary anchor USD price and
// invalidates cached valuations.
func (k *Keeper) SetSecondaryAnchorPrice(price math.LegacyDec) error {
	if price.IsNil() || price.IsNegative() {
		return types.ErrInvalidParams.Wrapf("secondary anchor price must be non-negative: %s", price)
	}
	k.params.SecondaryAnchorPrice = price
	k.bumpGeneration()
	return nil
}

// sortedPoolIds returns all pool ids in ascending order. Map iteration
// order is randomized; every sweep over the registry goes through here
// so resolution and analysis stay deterministic.
func (k *Keeper) sortedPoolIds() []uint64 {
	ids := make([]uint64, 0, len(k.pools))
	for id := range k.pools {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

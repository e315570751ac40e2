package keeper_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/simdex-labs/simdex/x/amm/types"
)

func TestAddLiquidityFirstDeposit(t *testing.T) {
	k := testKeeper(t)
	pool, err := k.CreatePool(1, "ALPHA", dec("1000000"), types.PairAnchor, 0)
	require.NoError(t, err)

	// sqrt(900 * 400) = 600
	minted, err := k.AddLiquidity(pool.Id, dec("900"), dec("400"))
	require.NoError(t, err)
	require.True(t, minted.Sub(dec("600")).Abs().LT(dec("0.000000001")),
		"expected ~600 LP, got %s", minted)
	require.Equal(t, dec("900"), pool.TokenReserve)
	require.Equal(t, dec("400"), pool.PairReserve)
	require.Equal(t, minted, pool.LpSupply)
}

func TestAddLiquidityProportionalMint(t *testing.T) {
	k := testKeeper(t)
	pool := createFundedPool(t, k, 1, "ALPHA", types.PairAnchor, 0, "1000", "1000")
	initialLp := pool.LpSupply

	// A 10% deposit at the exact pool ratio mints 10% of the LP supply.
	minted, err := k.AddLiquidity(pool.Id, dec("100"), dec("100"))
	require.NoError(t, err)
	require.Equal(t, initialLp.Quo(dec("10")), minted)
	require.Equal(t, dec("1100"), pool.TokenReserve)
	require.Equal(t, dec("1100"), pool.PairReserve)
}

func TestAddLiquidityRatioTolerance(t *testing.T) {
	k := testKeeper(t)
	pool := createFundedPool(t, k, 1, "ALPHA", types.PairAnchor, 0, "1000", "1000")

	// 0.2% off the pool ratio, tolerance is 0.1%.
	_, err := k.AddLiquidity(pool.Id, dec("100"), dec("100.2"))
	require.ErrorIs(t, err, types.ErrRatioMismatch)

	// 0.05% off passes.
	_, err = k.AddLiquidity(pool.Id, dec("100"), dec("100.05"))
	require.NoError(t, err)
}

func TestAddLiquidityValidation(t *testing.T) {
	k := testKeeper(t)
	pool := createFundedPool(t, k, 1, "ALPHA", types.PairAnchor, 0, "1000", "1000")

	_, err := k.AddLiquidity(pool.Id, dec("0"), dec("10"))
	require.ErrorIs(t, err, types.ErrInvalidAmount)
	_, err = k.AddLiquidity(pool.Id, dec("10"), dec("-1"))
	require.ErrorIs(t, err, types.ErrInvalidAmount)
	_, err = k.AddLiquidity(99, dec("10"), dec("10"))
	require.ErrorIs(t, err, types.ErrPoolNotFound)
}

func TestAddLiquiditySupplyCap(t *testing.T) {
	k := testKeeper(t)
	pool, err := k.CreatePool(1, "ALPHA", dec("1000"), types.PairAnchor, 0)
	require.NoError(t, err)

	_, err = k.AddLiquidity(pool.Id, dec("1001"), dec("1001"))
	require.ErrorIs(t, err, types.ErrSupplyExceeded)

	_, err = k.AddLiquidity(pool.Id, dec("1000"), dec("1000"))
	require.NoError(t, err)
}

func TestRemoveLiquidityProportional(t *testing.T) {
	k := testKeeper(t)
	pool := createFundedPool(t, k, 1, "ALPHA", types.PairAnchor, 0, "1000", "500")

	ratioBefore := pool.PairReserve.Quo(pool.TokenReserve)

	// Burning half the LP supply returns half of each reserve.
	tokenOut, pairOut, err := k.RemoveLiquidity(pool.Id, pool.LpSupply.Quo(dec("2")))
	require.NoError(t, err)
	require.Equal(t, dec("500"), tokenOut)
	require.Equal(t, dec("250"), pairOut)
	require.Equal(t, dec("500"), pool.TokenReserve)
	require.Equal(t, dec("250"), pool.PairReserve)

	// A withdrawal never moves the pool price.
	require.Equal(t, ratioBefore, pool.PairReserve.Quo(pool.TokenReserve))
}

func TestRemoveLiquidityValidation(t *testing.T) {
	k := testKeeper(t)
	pool := createFundedPool(t, k, 1, "ALPHA", types.PairAnchor, 0, "1000", "1000")

	_, _, err := k.RemoveLiquidity(pool.Id, dec("0"))
	require.ErrorIs(t, err, types.ErrInvalidAmount)

	_, _, err = k.RemoveLiquidity(pool.Id, pool.LpSupply.Add(dec("1")))
	require.ErrorIs(t, err, types.ErrInvalidAmount)

	empty, err := k.CreatePool(2, "BETA", dec("1000"), types.PairAnchor, 0)
	require.NoError(t, err)
	_, _, err = k.RemoveLiquidity(empty.Id, dec("1"))
	require.ErrorIs(t, err, types.ErrInsufficientLiquidity)
}

func TestRemoveAllLiquidityEmptiesPool(t *testing.T) {
	k := testKeeper(t)
	pool := createFundedPool(t, k, 1, "ALPHA", types.PairAnchor, 0, "1000", "1000")

	tokenOut, pairOut, err := k.RemoveLiquidity(pool.Id, pool.LpSupply)
	require.NoError(t, err)
	require.Equal(t, dec("1000"), tokenOut)
	require.Equal(t, dec("1000"), pairOut)
	require.True(t, pool.IsEmpty())
	require.True(t, pool.LpSupply.IsZero())
}

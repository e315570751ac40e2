package keeper_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/simdex-labs/simdex/x/amm/keeper"
	"github.com/simdex-labs/simdex/x/amm/types"
)

func TestInvariantsHoldOnHealthyState(t *testing.T) {
	k := testKeeper(t)
	createFundedPool(t, k, 1, "ALPHA", types.PairAnchor, 0, "1000", "1000")
	createFundedPool(t, k, 2, "BETA", types.PairToken, 1, "1000", "500")

	_, err := k.ExecuteSwap(1, dec("50"), types.SwapBuy)
	require.NoError(t, err)

	msg, broken := keeper.AllInvariants(k)()
	require.False(t, broken, msg)
}

func TestPairedReservesInvariant(t *testing.T) {
	k := testKeeper(t)
	pool := createFundedPool(t, k, 1, "ALPHA", types.PairAnchor, 0, "1000", "1000")

	_, broken := keeper.PairedReservesInvariant(k)()
	require.False(t, broken)

	pool.PairReserve = dec("0")
	msg, broken := keeper.PairedReservesInvariant(k)()
	require.True(t, broken, msg)
}

func TestLpSupplyInvariant(t *testing.T) {
	k := testKeeper(t)
	pool := createFundedPool(t, k, 1, "ALPHA", types.PairAnchor, 0, "1000", "1000")

	_, broken := keeper.LpSupplyInvariant(k)()
	require.False(t, broken)

	pool.LpSupply = dec("0")
	msg, broken := keeper.LpSupplyInvariant(k)()
	require.True(t, broken, msg)
}

func TestAvailableSupplyInvariant(t *testing.T) {
	k := testKeeper(t)
	pool, err := k.CreatePool(1, "ALPHA", dec("1000"), types.PairAnchor, 0)
	require.NoError(t, err)
	_, err = k.AddLiquidity(pool.Id, dec("800"), dec("800"))
	require.NoError(t, err)

	_, broken := keeper.AvailableSupplyInvariant(k)()
	require.False(t, broken)

	// Force the token reserve past its total supply.
	pool.TokenReserve = dec("1200")
	msg, broken := keeper.AvailableSupplyInvariant(k)()
	require.True(t, broken, msg)
}

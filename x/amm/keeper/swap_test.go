package keeper_test

import (
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/simdex-labs/simdex/x/amm/keeper"
	"github.com/simdex-labs/simdex/x/amm/types"
)

func TestCalculateSwapOutput(t *testing.T) {
	fee := dec("0.003")

	// 100 in against 1000/1000 with a 0.3% fee:
	// 99.7 * 1000 / (1000 + 99.7) = 90.66...
	out, err := keeper.CalculateSwapOutput(dec("100"), dec("1000"), dec("1000"), fee)
	require.NoError(t, err)
	require.True(t, out.GT(dec("90.6")), "got %s", out)
	require.True(t, out.LT(dec("90.7")), "got %s", out)

	// Output is always strictly below the naive spot quote amountIn * rate.
	require.True(t, out.LT(dec("100")))
}

func TestCalculateSwapOutputErrors(t *testing.T) {
	fee := dec("0.003")
	testCases := []struct {
		name       string
		amountIn   string
		reserveIn  string
		reserveOut string
		expErr     error
	}{
		{"zero input", "0", "1000", "1000", types.ErrInvalidAmount},
		{"negative input", "-5", "1000", "1000", types.ErrInvalidAmount},
		{"empty input reserve", "100", "0", "1000", types.ErrInsufficientLiquidity},
		{"empty output reserve", "100", "1000", "0", types.ErrInsufficientLiquidity},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := keeper.CalculateSwapOutput(dec(tc.amountIn), dec(tc.reserveIn), dec(tc.reserveOut), fee)
			require.ErrorIs(t, err, tc.expErr)
		})
	}
}

func TestQuoteSwapDoesNotMutate(t *testing.T) {
	k := testKeeper(t)
	pool := createFundedPool(t, k, 1, "ALPHA", types.PairAnchor, 0, "1000", "1000")
	gen := k.Generation()

	quote, err := k.QuoteSwap(pool.Id, dec("100"), types.SwapBuy)
	require.NoError(t, err)
	require.True(t, quote.AmountOut.IsPositive())
	require.Equal(t, dec("0.3"), quote.Fee)

	require.Equal(t, dec("1000"), pool.TokenReserve)
	require.Equal(t, dec("1000"), pool.PairReserve)
	require.Equal(t, gen, k.Generation())
}

func TestExecuteSwapBuy(t *testing.T) {
	k := testKeeper(t)
	pool := createFundedPool(t, k, 1, "ALPHA", types.PairAnchor, 0, "1000", "1000")
	oldK := pool.K()

	result, err := k.ExecuteSwap(pool.Id, dec("100"), types.SwapBuy)
	require.NoError(t, err)

	// Full input enters the pair reserve, output leaves the token reserve.
	require.Equal(t, dec("1100"), pool.PairReserve)
	require.Equal(t, dec("1000").Sub(result.AmountOut), pool.TokenReserve)

	// Fee retention makes the constant product grow.
	require.True(t, pool.K().GT(oldK))

	// Buying the token pushes its pool price up.
	require.True(t, result.PriceImpact.IsPositive())
	require.True(t, result.NewPoolPrice.GT(dec("1")))
}

func TestExecuteSwapSell(t *testing.T) {
	k := testKeeper(t)
	pool := createFundedPool(t, k, 1, "ALPHA", types.PairAnchor, 0, "1000", "1000")
	oldK := pool.K()

	result, err := k.ExecuteSwap(pool.Id, dec("100"), types.SwapSell)
	require.NoError(t, err)

	require.Equal(t, dec("1100"), pool.TokenReserve)
	require.Equal(t, dec("1000").Sub(result.AmountOut), pool.PairReserve)
	require.True(t, pool.K().GT(oldK))

	// Selling the token pushes its pool price down.
	require.True(t, result.PriceImpact.IsNegative())
	require.True(t, result.NewPoolPrice.LT(dec("1")))
}

func TestExecuteSwapQuoteAgreement(t *testing.T) {
	k := testKeeper(t)
	pool := createFundedPool(t, k, 1, "ALPHA", types.PairAnchor, 0, "1000", "500")

	quote, err := k.QuoteSwap(pool.Id, dec("50"), types.SwapBuy)
	require.NoError(t, err)
	result, err := k.ExecuteSwap(pool.Id, dec("50"), types.SwapBuy)
	require.NoError(t, err)

	require.Equal(t, quote.AmountOut, result.AmountOut)
	require.Equal(t, quote.Fee, result.Fee)
	require.Equal(t, quote.NewPoolPrice, result.NewPoolPrice)
}

func TestExecuteSwapKeepsGrowingK(t *testing.T) {
	k := testKeeper(t)
	pool := createFundedPool(t, k, 1, "ALPHA", types.PairAnchor, 0, "1000", "1000")

	prev := pool.K()
	for i := 0; i < 10; i++ {
		direction := types.SwapBuy
		if i%2 == 1 {
			direction = types.SwapSell
		}
		_, err := k.ExecuteSwap(pool.Id, dec("25"), direction)
		require.NoError(t, err)
		require.True(t, pool.K().GTE(prev), "k shrank on swap %d", i)
		prev = pool.K()
	}
}

func TestExecuteSwapValidation(t *testing.T) {
	k := testKeeper(t)
	pool, err := k.CreatePool(1, "ALPHA", dec("1000"), types.PairAnchor, 0)
	require.NoError(t, err)

	_, err = k.ExecuteSwap(pool.Id, math.LegacyDec{}, types.SwapBuy)
	require.ErrorIs(t, err, types.ErrInvalidAmount)
	_, err = k.ExecuteSwap(pool.Id, dec("0"), types.SwapBuy)
	require.ErrorIs(t, err, types.ErrInvalidAmount)
	_, err = k.ExecuteSwap(99, dec("10"), types.SwapBuy)
	require.ErrorIs(t, err, types.ErrPoolNotFound)

	// Empty pool rejects swaps and stays untouched.
	_, err = k.ExecuteSwap(pool.Id, dec("10"), types.SwapBuy)
	require.ErrorIs(t, err, types.ErrInsufficientLiquidity)
	require.True(t, pool.IsEmpty())
}

func TestExecuteSwapRejectionLeavesPoolUntouched(t *testing.T) {
	// With a zero fee, division rounding can push amountOut up by 1e-18
	// and shrink k: 2/2 reserves, 1 in, out = 2/3 rounded to
	// 0.666666666666666667. The swap must be rejected with the pool and
	// the price-cache generation exactly as they were.
	params := types.DefaultParams()
	params.SwapFee = dec("0")
	k, err := keeper.NewKeeper(log.NewNopLogger(), params)
	require.NoError(t, err)

	pool, err := k.CreatePool(1, "ALPHA", dec("1000"), types.PairAnchor, 0)
	require.NoError(t, err)
	_, err = k.AddLiquidity(pool.Id, dec("2"), dec("2"))
	require.NoError(t, err)
	gen := k.Generation()

	_, err = k.ExecuteSwap(pool.Id, dec("1"), types.SwapBuy)
	require.ErrorIs(t, err, types.ErrInvariantViolation)

	require.Equal(t, dec("2"), pool.TokenReserve)
	require.Equal(t, dec("2"), pool.PairReserve)
	require.Equal(t, dec("4"), pool.K())
	require.Equal(t, gen, k.Generation())
}

func TestExecuteSwapBumpsGeneration(t *testing.T) {
	k := testKeeper(t)
	pool := createFundedPool(t, k, 1, "ALPHA", types.PairAnchor, 0, "1000", "1000")

	gen := k.Generation()
	_, err := k.ExecuteSwap(pool.Id, dec("10"), types.SwapBuy)
	require.NoError(t, err)
	require.Greater(t, k.Generation(), gen)
}

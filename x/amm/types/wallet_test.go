package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/simdex-labs/simdex/x/amm/types"
)

func TestWalletTokenBalances(t *testing.T) {
	wallet := types.NewWallet("alice")
	require.True(t, wallet.TokenBalance(1).IsZero())

	wallet.CreditToken(1, dec("100"))
	require.Equal(t, dec("100"), wallet.TokenBalance(1))

	require.NoError(t, wallet.DebitToken(1, dec("40")))
	require.Equal(t, dec("60"), wallet.TokenBalance(1))

	err := wallet.DebitToken(1, dec("61"))
	require.ErrorIs(t, err, types.ErrInsufficientFunds)
	require.Equal(t, dec("60"), wallet.TokenBalance(1))
}

func TestWalletAnchorBalanceFor(t *testing.T) {
	wallet := types.NewWallet("alice")
	wallet.AnchorBalance = dec("100")
	wallet.SecondaryBalance = dec("40")

	require.Equal(t, dec("100"), wallet.AnchorBalanceFor(types.PairAnchor))
	require.Equal(t, dec("40"), wallet.AnchorBalanceFor(types.PairSecondaryAnchor))
	require.Equal(t, dec("100"), wallet.AnchorBalanceFor(types.PairToken))
}

package types

import (
	"cosmossdk.io/math"
)

// Wallet is simple balance bookkeeping for one actor. Balances are
// engine-internal; no custody semantics.
type Wallet struct {
	Id               string
	AnchorBalance    math.LegacyDec
	SecondaryBalance math.LegacyDec
	TokenBalances    map[uint64]math.LegacyDec
}

// NewWallet returns an empty wallet.
func NewWallet(id string) *Wallet {
	return &Wallet{
		Id:               id,
		AnchorBalance:    math.LegacyZeroDec(),
		SecondaryBalance: math.LegacyZeroDec(),
		TokenBalances:    make(map[uint64]math.LegacyDec),
	}
}

// TokenBalance returns the wallet's balance for a token, zero if unset.
func (w *Wallet) TokenBalance(tokenId uint64) math.LegacyDec {
	if bal, ok := w.TokenBalances[tokenId]; ok {
		return bal
	}
	return math.LegacyZeroDec()
}

// CreditToken adds amount to the wallet's token balance.
func (w *Wallet) CreditToken(tokenId uint64, amount math.LegacyDec) {
	w.TokenBalances[tokenId] = w.TokenBalance(tokenId).Add(amount)
}

// DebitToken subtracts amount from the wallet's token balance.
func (w *Wallet) DebitToken(tokenId uint64, amount math.LegacyDec) error {
	bal := w.TokenBalance(tokenId)
	if bal.LT(amount) {
		return ErrInsufficientFunds.Wrapf("token %d: have %s, need %s", tokenId, bal, amount)
	}
	w.TokenBalances[tokenId] = bal.Sub(amount)
	return nil
}

// AnchorBalanceFor returns the balance matching an anchor pair kind.
func (w *Wallet) AnchorBalanceFor(kind PairKind) math.LegacyDec {
	if kind == PairSecondaryAnchor {
		return w.SecondaryBalance
	}
	return w.AnchorBalance
}

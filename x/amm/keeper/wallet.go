package keeper

import (
	"cosmossdk.io/math"

	"github.com/simdex-labs/simdex/x/amm/types"
)

// CreateWallet registers a new empty wallet.
func (k *Keeper) CreateWallet(id string) (*types.Wallet, error) {
	if id == "" {
		return nil, types.ErrWalletNotFound.Wrap("wallet id must not be empty")
	}
	if _, exists := k.wallets[id]; exists {
		return nil, types.ErrInvalidParams.Wrapf("wallet %s already exists", id)
	}
	wallet := types.NewWallet(id)
	k.wallets[id] = wallet
	return wallet, nil
}

// GetWallet retrieves a wallet by id.
func (k *Keeper) GetWallet(id string) (*types.Wallet, error) {
	wallet, ok := k.wallets[id]
	if !ok {
		return nil, types.ErrWalletNotFound.Wrapf("wallet %s not found", id)
	}
	return wallet, nil
}

// FundAnchor credits a wallet's primary anchor balance.
func (k *Keeper) FundAnchor(id string, amount math.LegacyDec) error {
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrInvalidAmount.Wrapf("amount must be positive: %s", amount)
	}
	wallet, err := k.GetWallet(id)
	if err != nil {
		return err
	}
	wallet.AnchorBalance = wallet.AnchorBalance.Add(amount)
	return nil
}

// FundSecondaryAnchor credits a wallet's secondary anchor balance.
func (k *Keeper) FundSecondaryAnchor(id string, amount math.LegacyDec) error {
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrInvalidAmount.Wrapf("amount must be positive: %s", amount)
	}
	wallet, err := k.GetWallet(id)
	if err != nil {
		return err
	}
	wallet.SecondaryBalance = wallet.SecondaryBalance.Add(amount)
	return nil
}

// FundToken credits a wallet's balance for a registered token.
func (k *Keeper) FundToken(id string, tokenId uint64, amount math.LegacyDec) error {
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrInvalidAmount.Wrapf("amount must be positive: %s", amount)
	}
	if _, err := k.GetPoolByToken(tokenId); err != nil {
		return err
	}
	wallet, err := k.GetWallet(id)
	if err != nil {
		return err
	}
	wallet.CreditToken(tokenId, amount)
	return nil
}

package types

import (
	"cosmossdk.io/errors"
)

// AMM module sentinel errors
var (
	ErrInvalidAmount         = errors.Register(ModuleName, 1, "invalid amount")
	ErrInvalidTokenId        = errors.Register(ModuleName, 2, "invalid token id")
	ErrPoolNotFound          = errors.Register(ModuleName, 3, "pool not found")
	ErrPoolAlreadyExists     = errors.Register(ModuleName, 4, "pool already exists")
	ErrInsufficientLiquidity = errors.Register(ModuleName, 5, "insufficient liquidity in pool")
	ErrRatioMismatch         = errors.Register(ModuleName, 6, "liquidity ratio mismatch")
	ErrSupplyExceeded        = errors.Register(ModuleName, 7, "token supply exceeded")
	ErrInsufficientFunds     = errors.Register(ModuleName, 8, "insufficient wallet funds")
	ErrWalletNotFound        = errors.Register(ModuleName, 9, "wallet not found")
	ErrInvalidRoute          = errors.Register(ModuleName, 10, "invalid route")
	ErrInvariantViolation    = errors.Register(ModuleName, 11, "invariant violation")
	ErrChainBusy             = errors.Register(ModuleName, 12, "actor already has a pending chained trade")
	ErrEnginePaused          = errors.Register(ModuleName, 13, "engine is paused")
	ErrInvalidParams         = errors.Register(ModuleName, 14, "invalid parameters")
	ErrInvalidPoolState      = errors.Register(ModuleName, 15, "invalid pool state")
)

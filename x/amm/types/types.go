package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// PairKind identifies what a pool's token is traded against.
type PairKind uint8

const (
	// PairAnchor pairs the token directly against the primary anchor asset.
	PairAnchor PairKind = iota
	// PairSecondaryAnchor pairs the token against the secondary anchor asset.
	PairSecondaryAnchor
	// PairToken pairs the token against another token's supply.
	PairToken
)

// IsAnchor reports whether the pair side is one of the anchor assets,
// i.e. the pool terminates a pricing chain.
func (pk PairKind) IsAnchor() bool {
	return pk == PairAnchor || pk == PairSecondaryAnchor
}

func (pk PairKind) String() string {
	switch pk {
	case PairAnchor:
		return "anchor"
	case PairSecondaryAnchor:
		return "secondary_anchor"
	case PairToken:
		return "token"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(pk))
	}
}

// Pool is a constant-product liquidity pool backing a single token.
// TokenReserve holds the pooled token, PairReserve holds the pair asset
// (anchor, secondary anchor, or another token depending on PairKind).
type Pool struct {
	Id            uint64
	TokenId       uint64
	Name          string
	PairKind      PairKind
	PairedTokenId uint64 // set only when PairKind == PairToken
	TokenReserve  math.LegacyDec
	PairReserve   math.LegacyDec
	LpSupply      math.LegacyDec
	TotalSupply   math.LegacyDec
}

// K returns the constant-product invariant tokenReserve * pairReserve.
// It is always derived from the reserves, never stored.
func (p *Pool) K() math.LegacyDec {
	return p.TokenReserve.Mul(p.PairReserve)
}

// IsEmpty reports whether the pool holds no liquidity. Reserves are either
// both zero or both positive; mixed states are invariant violations.
func (p *Pool) IsEmpty() bool {
	return p.TokenReserve.IsZero() || p.PairReserve.IsZero()
}

// SpotPrice returns the pool price in pair-asset terms,
// pairReserve / tokenReserve. Zero for an empty pool.
func (p *Pool) SpotPrice() math.LegacyDec {
	if p.IsEmpty() {
		return math.LegacyZeroDec()
	}
	return p.PairReserve.Quo(p.TokenReserve)
}

// Validate checks structural pool state.
func (p *Pool) Validate() error {
	if p.TokenReserve.IsNegative() || p.PairReserve.IsNegative() {
		return ErrInvalidPoolState.Wrapf("pool %d: negative reserves %s/%s",
			p.Id, p.TokenReserve, p.PairReserve)
	}
	if p.TokenReserve.IsZero() != p.PairReserve.IsZero() {
		return ErrInvalidPoolState.Wrapf("pool %d: one-sided reserves %s/%s",
			p.Id, p.TokenReserve, p.PairReserve)
	}
	if p.LpSupply.IsNegative() {
		return ErrInvalidPoolState.Wrapf("pool %d: negative LP supply %s", p.Id, p.LpSupply)
	}
	if !p.TotalSupply.IsPositive() {
		return ErrInvalidPoolState.Wrapf("pool %d: non-positive total supply %s", p.Id, p.TotalSupply)
	}
	if p.PairKind == PairToken && p.PairedTokenId == p.TokenId {
		return ErrInvalidPoolState.Wrapf("pool %d: token paired with itself", p.Id)
	}
	return nil
}

// TokenPrice is a resolved USD valuation. Degenerate marks prices that
// collapsed to zero because the pairing chain revisited a token; callers
// can distinguish that from a legitimately empty pool.
type TokenPrice struct {
	Value      math.LegacyDec
	Degenerate bool
}

// ZeroPrice returns a non-degenerate zero valuation.
func ZeroPrice() TokenPrice {
	return TokenPrice{Value: math.LegacyZeroDec()}
}

// DegeneratePrice returns the zero valuation flagged as circular.
func DegeneratePrice() TokenPrice {
	return TokenPrice{Value: math.LegacyZeroDec(), Degenerate: true}
}

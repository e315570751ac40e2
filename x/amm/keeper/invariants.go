package keeper

import (
	"fmt"

	"github.com/simdex-labs/simdex/x/amm/types"
)

// Invariant is a named engine-wide consistency check. It returns a
// description and whether the invariant is broken.
type Invariant func() (string, bool)

// AllInvariants runs every engine invariant and stops at the first break
func AllInvariants(k *Keeper) Invariant {
	return func() (string, bool) {
		checks := []Invariant{
			PairedReservesInvariant(k),
			LpSupplyInvariant(k),
			AvailableSupplyInvariant(k),
		}
		for _, check := range checks {
			if msg, broken := check(); broken {
				return msg, true
			}
		}
		return "amm: all invariants hold", false
	}
}

// PairedReservesInvariant checks that every pool is either empty on
// both sides or funded on both sides, with no negative reserves.
func PairedReservesInvariant(k *Keeper) Invariant {
	return func() (string, bool) {
		var (
			msg   string
			count int
		)
		k.IteratePools(func(pool *types.Pool) bool {
			if err := pool.Validate(); err != nil {
				count++
				msg += fmt.Sprintf("pool %d: %v\n", pool.Id, err)
			}
			return false
		})
		return fmt.Sprintf("amm: paired-reserves\nfound %d invalid pools\n%s", count, msg), count != 0
	}
}

// LpSupplyInvariant checks that LP supply and reserves agree: a funded
// pool has positive LP supply and an empty pool has none.
func LpSupplyInvariant(k *Keeper) Invariant {
	return func() (string, bool) {
		var (
			msg   string
			count int
		)
		k.IteratePools(func(pool *types.Pool) bool {
			if pool.IsEmpty() != pool.LpSupply.IsZero() {
				count++
				msg += fmt.Sprintf("pool %d: reserves %s/%s with LP supply %s\n",
					pool.Id, pool.TokenReserve, pool.PairReserve, pool.LpSupply)
			}
			return false
		})
		return fmt.Sprintf("amm: lp-supply\nfound %d inconsistent pools\n%s", count, msg), count != 0
	}
}

// AvailableSupplyInvariant checks that no token's committed reserves
// exceed its total supply, counting both its own pool and every pool
// where it serves as the pair asset.
func AvailableSupplyInvariant(k *Keeper) Invariant {
	return func() (string, bool) {
		var (
			msg   string
			count int
		)
		k.IteratePools(func(pool *types.Pool) bool {
			available, err := k.AvailableSupply(pool.TokenId)
			if err != nil {
				count++
				msg += fmt.Sprintf("token %d: %v\n", pool.TokenId, err)
				return false
			}
			if available.IsNegative() {
				count++
				msg += fmt.Sprintf("token %d: available supply %s is negative\n",
					pool.TokenId, available)
			}
			return false
		})
		return fmt.Sprintf("amm: available-supply\nfound %d over-committed tokens\n%s", count, msg), count != 0
	}
}

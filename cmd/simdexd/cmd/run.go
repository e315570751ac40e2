package cmd

import (
	"fmt"
	"os"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/spf13/cobra"

	"github.com/simdex-labs/simdex/x/amm/keeper"
	"github.com/simdex-labs/simdex/x/amm/types"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Build a small demo economy, route a trade and print the capital analysis",
		RunE: func(cmd *cobra.Command, _ []string) error {
			params, metricsPort, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if metricsPort > 0 {
				StartPrometheusServer(metricsPort)
			}

			logger := log.NewLogger(os.Stderr)
			k, err := keeper.NewKeeper(logger, params)
			if err != nil {
				return err
			}
			return runDemo(cmd, k)
		},
	}
}

// runDemo builds a three-token economy with one token-paired chain,
// routes a trade into the deepest token, and prints prices, the capital
// breakdown and a cascade table.
func runDemo(cmd *cobra.Command, k *keeper.Keeper) error {
	out := cmd.OutOrStdout()

	const (
		alphaId = 1
		betaId  = 2
		gammaId = 3
	)

	if _, err := k.CreatePool(alphaId, "ALPHA", math.LegacyNewDec(10_000), types.PairAnchor, 0); err != nil {
		return err
	}
	if _, err := k.CreatePool(betaId, "BETA", math.LegacyNewDec(10_000), types.PairToken, alphaId); err != nil {
		return err
	}
	if _, err := k.CreatePool(gammaId, "GAMMA", math.LegacyNewDec(10_000), types.PairToken, betaId); err != nil {
		return err
	}

	if _, err := k.AddLiquidity(1, math.LegacyNewDec(1000), math.LegacyNewDec(1000)); err != nil {
		return err
	}
	if _, err := k.AddLiquidity(2, math.LegacyNewDec(1000), math.LegacyNewDec(500)); err != nil {
		return err
	}
	if _, err := k.AddLiquidity(3, math.LegacyNewDec(800), math.LegacyNewDec(400)); err != nil {
		return err
	}

	k.ResolveAllPrices()
	for _, tokenId := range []uint64{alphaId, betaId, gammaId} {
		pool, err := k.GetPoolByToken(tokenId)
		if err != nil {
			return err
		}
		price, err := k.ResolvePriceUSD(tokenId)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%-6s price=%s USD  reserves=%s/%s  pair=%s\n",
			pool.Name, price.Value, pool.TokenReserve, pool.PairReserve, pool.PairKind)
	}

	wallet := "demo"
	if _, err := k.CreateWallet(wallet); err != nil {
		return err
	}
	if err := k.FundAnchor(wallet, math.LegacyNewDec(500)); err != nil {
		return err
	}

	route, err := k.FindBestRoute(gammaId, math.LegacyNewDec(100))
	if err != nil {
		return err
	}
	if route == nil {
		return fmt.Errorf("no route to GAMMA")
	}
	fmt.Fprintf(out, "\nbest route: %s (%d hops), expected out %s\n",
		route.Description(), len(route.Hops), route.TotalAmountOut)

	result, err := k.ExecuteRoute(wallet, route)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "executed: spent %s anchor, received %s GAMMA\n",
		result.AmountSpent, result.AmountOut)

	// A chained follow-up trade on the deterministic scheduler.
	err = k.Scheduler().Schedule(wallet, 2*time.Second, func(k *keeper.Keeper) error {
		next, err := k.FindBestRoute(betaId, math.LegacyNewDec(50))
		if err != nil || next == nil {
			return err
		}
		_, err = k.ExecuteRoute(wallet, next)
		return err
	})
	if err != nil {
		return err
	}
	if err := k.Scheduler().Advance(2 * time.Second); err != nil {
		return err
	}

	k.ResolveAllPrices()
	breakdown := k.CapitalBreakdown()
	fmt.Fprintf(out, "\ncapital: real=%s derived=%s leverage=%s avg-depth=%s\n",
		breakdown.RealCapital, breakdown.DerivedCapital,
		breakdown.LeverageRatio, breakdown.AverageDepth)

	impacts, err := k.CascadeImpact(math.LegacyNewDecWithPrec(-10, 2)) // -10% anchor shock
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "\ncascade of a -10% anchor shock:")
	for _, impact := range impacts {
		fmt.Fprintf(out, "  token %d depth=%d impact=%s%% value %s -> %s\n",
			impact.TokenId, impact.Depth, impact.ImpactPct,
			impact.ValueBefore, impact.ValueAfter)
	}

	if msg, broken := keeper.AllInvariants(k)(); broken {
		return fmt.Errorf("invariant broken after demo: %s", msg)
	}
	return nil
}

package cmd

import (
	"errors"
	"fmt"

	"cosmossdk.io/math"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/simdex-labs/simdex/x/amm/types"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// NewRootCmd builds the simdexd command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "simdexd",
		Short: "simdex - simulated multi-asset AMM economy engine",
		Long: `simdexd runs a simulated economy of constant-product liquidity
pools whose tokens may be paired against an anchor asset or against
each other, with multi-hop routing, recursive USD price resolution and
real-vs-derived capital analysis.`,
	}

	rootCmd.PersistentFlags().String("config", "", "config file (default ./simdex.yaml)")
	rootCmd.PersistentFlags().Int("metrics-port", 0, "serve Prometheus metrics on this port (0 disables)")

	rootCmd.AddCommand(
		newRunCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the simdexd version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
		},
	}
}

// loadConfig reads engine parameters from the config file and
// environment (SIMDEX_ prefix), falling back to defaults per key.
func loadConfig(cmd *cobra.Command) (types.Params, int, error) {
	v := viper.New()
	v.SetEnvPrefix("SIMDEX")
	v.AutomaticEnv()

	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("simdex")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		// A missing default config is fine; every key has a default. An
		// explicitly named file must exist.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return types.Params{}, 0, fmt.Errorf("read config: %w", err)
		}
	}

	params := types.DefaultParams()

	var err error
	if params.SwapFee, err = decSetting(v, "swap_fee", params.SwapFee); err != nil {
		return types.Params{}, 0, err
	}
	if params.RatioTolerance, err = decSetting(v, "ratio_tolerance", params.RatioTolerance); err != nil {
		return types.Params{}, 0, err
	}
	if params.ConvergenceTolerance, err = decSetting(v, "convergence_tolerance", params.ConvergenceTolerance); err != nil {
		return types.Params{}, 0, err
	}
	if params.SecondaryAnchorPrice, err = decSetting(v, "secondary_anchor_price", params.SecondaryAnchorPrice); err != nil {
		return types.Params{}, 0, err
	}
	if v.IsSet("max_route_hops") {
		params.MaxRouteHops = cast.ToInt(v.Get("max_route_hops"))
	}
	if v.IsSet("convergence_iterations") {
		params.ConvergenceIterations = cast.ToInt(v.Get("convergence_iterations"))
	}

	metricsPort, _ := cmd.Flags().GetInt("metrics-port")
	if metricsPort == 0 && v.IsSet("metrics_port") {
		metricsPort = cast.ToInt(v.Get("metrics_port"))
	}

	if err := params.Validate(); err != nil {
		return types.Params{}, 0, err
	}
	return params, metricsPort, nil
}

func decSetting(v *viper.Viper, key string, fallback math.LegacyDec) (math.LegacyDec, error) {
	if !v.IsSet(key) {
		return fallback, nil
	}
	dec, err := math.LegacyNewDecFromStr(cast.ToString(v.Get(key)))
	if err != nil {
		return math.LegacyDec{}, fmt.Errorf("config %s: %w", key, err)
	}
	return dec, nil
}

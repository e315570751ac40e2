package types

// Event types logged by the engine on state mutations
const (
	EventTypePoolCreated     = "amm_pool_created"
	EventTypeAddLiquidity    = "amm_add_liquidity"
	EventTypeRemoveLiquidity = "amm_remove_liquidity"
	EventTypeSwap            = "amm_swap"
	EventTypeRouteExecuted   = "amm_route_executed"
	EventTypePricesResolved  = "amm_prices_resolved"
	EventTypeEnginePaused    = "amm_engine_paused"
	EventTypeEngineResumed   = "amm_engine_resumed"
)

// Event attribute keys
const (
	AttributeKeyPoolId      = "pool_id"
	AttributeKeyTokenId     = "token_id"
	AttributeKeyTokenAmount = "token_amount"
	AttributeKeyPairAmount  = "pair_amount"
	AttributeKeyAmountIn    = "amount_in"
	AttributeKeyAmountOut   = "amount_out"
	AttributeKeyDirection   = "direction"
	AttributeKeyFee         = "fee"
	AttributeKeyLpMinted    = "lp_minted"
	AttributeKeyLpBurned    = "lp_burned"
	AttributeKeyWallet      = "wallet"
	AttributeKeyPath        = "path"
	AttributeKeyHops        = "hops"
	AttributeKeyPasses      = "passes"
)

package types

const (
	// ModuleName defines the module name
	ModuleName = "amm"

	// AnchorSymbol is the display symbol of the primary anchor asset.
	// All USD valuations are denominated in it.
	AnchorSymbol = "USD"

	// SecondaryAnchorSymbol is the display symbol of the secondary anchor
	// asset. Its own USD price is an engine parameter.
	SecondaryAnchorSymbol = "ALT"
)

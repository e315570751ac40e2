package keeper

import (
	"github.com/simdex-labs/simdex/x/amm/types"
)

// GetParams returns the current engine parameters
func (k *Keeper) GetParams() types.Params {
	return k.params
}

// SetParams replaces the engine parameters after validation. Changing
// the secondary anchor price or the fee invalidates cached valuations.
func (k *Keeper) SetParams(params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	k.params = params
	k.bumpGeneration()
	return nil
}

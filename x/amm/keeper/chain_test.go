package keeper_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/simdex-labs/simdex/x/amm/keeper"
	"github.com/simdex-labs/simdex/x/amm/types"
)

func TestScheduleAndAdvance(t *testing.T) {
	k := testKeeper(t)
	s := k.Scheduler()

	var ran []string
	step := func(name string) keeper.ChainStep {
		return func(*keeper.Keeper) error {
			ran = append(ran, name)
			return nil
		}
	}

	require.NoError(t, s.Schedule("bob", 2*time.Second, step("bob")))
	require.NoError(t, s.Schedule("alice", time.Second, step("alice")))
	require.True(t, s.Pending("alice"))
	require.True(t, s.Pending("bob"))

	// Nothing is due before its delay elapses.
	require.NoError(t, s.Advance(500*time.Millisecond))
	require.Empty(t, ran)

	// Both come due within the window and run in due-time order.
	require.NoError(t, s.Advance(2*time.Second))
	require.Equal(t, []string{"alice", "bob"}, ran)
	require.False(t, s.Pending("alice"))
	require.False(t, s.Pending("bob"))
	require.Equal(t, 2500*time.Millisecond, s.Now())
}

func TestScheduleFIFOAtSameDueTime(t *testing.T) {
	k := testKeeper(t)
	s := k.Scheduler()

	var ran []string
	note := func(name string) keeper.ChainStep {
		return func(*keeper.Keeper) error {
			ran = append(ran, name)
			return nil
		}
	}

	require.NoError(t, s.Schedule("first", time.Second, note("first")))
	require.NoError(t, s.Schedule("second", time.Second, note("second")))
	require.NoError(t, s.Advance(time.Second))
	require.Equal(t, []string{"first", "second"}, ran)
}

func TestScheduleRejectsBusyActor(t *testing.T) {
	k := testKeeper(t)
	s := k.Scheduler()
	noop := func(*keeper.Keeper) error { return nil }

	require.NoError(t, s.Schedule("alice", time.Second, noop))
	err := s.Schedule("alice", time.Second, noop)
	require.ErrorIs(t, err, types.ErrChainBusy)

	// Once the step ran the actor is free again.
	require.NoError(t, s.Advance(time.Second))
	require.NoError(t, s.Schedule("alice", time.Second, noop))
}

func TestScheduleValidation(t *testing.T) {
	k := testKeeper(t)
	s := k.Scheduler()
	noop := func(*keeper.Keeper) error { return nil }

	require.ErrorIs(t, s.Schedule("", time.Second, noop), types.ErrInvalidParams)
	require.ErrorIs(t, s.Schedule("alice", time.Second, nil), types.ErrInvalidParams)
	require.ErrorIs(t, s.Schedule("alice", -time.Second, noop), types.ErrInvalidParams)
	require.ErrorIs(t, s.Advance(-time.Second), types.ErrInvalidParams)
}

func TestCancel(t *testing.T) {
	k := testKeeper(t)
	s := k.Scheduler()

	ran := false
	require.NoError(t, s.Schedule("alice", time.Second, func(*keeper.Keeper) error {
		ran = true
		return nil
	}))

	require.True(t, s.Cancel("alice"))
	require.False(t, s.Cancel("alice"))
	require.NoError(t, s.Advance(2*time.Second))
	require.False(t, ran)
}

func TestCancelAll(t *testing.T) {
	k := testKeeper(t)
	s := k.Scheduler()
	noop := func(*keeper.Keeper) error { return nil }

	require.NoError(t, s.Schedule("alice", time.Second, noop))
	require.NoError(t, s.Schedule("bob", time.Second, noop))
	s.CancelAll()
	require.False(t, s.Pending("alice"))
	require.False(t, s.Pending("bob"))
}

func TestPauseHoldsDueSteps(t *testing.T) {
	k := testKeeper(t)
	s := k.Scheduler()

	ran := false
	require.NoError(t, s.Schedule("alice", time.Second, func(*keeper.Keeper) error {
		ran = true
		return nil
	}))

	// The step comes due while paused: it stays queued, not dropped.
	k.Pause()
	require.NoError(t, s.Advance(2*time.Second))
	require.False(t, ran)
	require.True(t, s.Pending("alice"))

	k.Resume()
	require.NoError(t, s.Advance(0))
	require.True(t, ran)
	require.False(t, s.Pending("alice"))
}

func TestScheduleRejectedWhilePaused(t *testing.T) {
	k := testKeeper(t)
	s := k.Scheduler()
	noop := func(*keeper.Keeper) error { return nil }

	k.Pause()
	require.ErrorIs(t, s.Schedule("alice", time.Second, noop), types.ErrEnginePaused)

	k.Resume()
	require.NoError(t, s.Schedule("alice", time.Second, noop))
}

func TestStepCanChainFollowUp(t *testing.T) {
	k := testKeeper(t)
	s := k.Scheduler()

	var ran []string
	require.NoError(t, s.Schedule("alice", time.Second, func(k *keeper.Keeper) error {
		ran = append(ran, "first")
		return k.Scheduler().Schedule("alice", 3*time.Second, func(*keeper.Keeper) error {
			ran = append(ran, "second")
			return nil
		})
	}))

	require.NoError(t, s.Advance(time.Second))
	require.Equal(t, []string{"first"}, ran)
	require.True(t, s.Pending("alice"))

	require.NoError(t, s.Advance(3*time.Second))
	require.Equal(t, []string{"first", "second"}, ran)
}

func TestZeroDelayFollowUpWaitsForNextAdvance(t *testing.T) {
	k := testKeeper(t)
	s := k.Scheduler()

	// A step that immediately reschedules itself must not be drained in
	// the same Advance call, or the loop would never return.
	runs := 0
	var reschedule keeper.ChainStep
	reschedule = func(k *keeper.Keeper) error {
		runs++
		return k.Scheduler().Schedule("alice", 0, reschedule)
	}
	require.NoError(t, s.Schedule("alice", 0, reschedule))

	require.NoError(t, s.Advance(time.Second))
	require.Equal(t, 1, runs)
	require.True(t, s.Pending("alice"))

	require.NoError(t, s.Advance(0))
	require.Equal(t, 2, runs)
}

func TestStepErrorFreesActor(t *testing.T) {
	k := testKeeper(t)
	s := k.Scheduler()

	require.NoError(t, s.Schedule("alice", time.Second, func(*keeper.Keeper) error {
		return types.ErrInsufficientFunds.Wrap("broke")
	}))

	// Step failures are logged, not surfaced, and free the actor's slot.
	require.NoError(t, s.Advance(time.Second))
	require.False(t, s.Pending("alice"))
	require.NoError(t, s.Schedule("alice", time.Second, func(*keeper.Keeper) error { return nil }))
}

func TestChainedTradeAgainstPools(t *testing.T) {
	k := testKeeper(t)
	createFundedPool(t, k, 1, "ALPHA", types.PairAnchor, 0, "1000", "1000")
	createFundedPool(t, k, 2, "BETA", types.PairToken, 1, "1000", "500")

	_, err := k.CreateWallet("trader")
	require.NoError(t, err)
	require.NoError(t, k.FundAnchor("trader", dec("300")))

	require.NoError(t, k.Scheduler().Schedule("trader", time.Second, func(k *keeper.Keeper) error {
		route, err := k.FindBestRoute(2, dec("100"))
		if err != nil || route == nil {
			return err
		}
		_, err = k.ExecuteRoute("trader", route)
		return err
	}))
	require.NoError(t, k.Scheduler().Advance(time.Second))

	wallet, err := k.GetWallet("trader")
	require.NoError(t, err)
	require.Equal(t, dec("200"), wallet.AnchorBalance)
	require.True(t, wallet.TokenBalance(2).IsPositive())
}

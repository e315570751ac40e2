package keeper

import (
	"sort"
	"time"

	"github.com/simdex-labs/simdex/x/amm/types"
)

// ChainStep is the body of one chained trade. It runs against the
// keeper and may schedule its own follow-up step.
type ChainStep func(k *Keeper) error

// chainedTask is one pending step in a trade chain.
type chainedTask struct {
	actor string
	dueAt time.Duration // virtual time
	seq   uint64        // FIFO tiebreak for equal due times
	step  ChainStep
}

// ChainScheduler runs chained trades as an explicit command queue on a
// virtual clock instead of wall-clock timers, keeping pause, cancel and
// tests deterministic. At most one step per actor may be pending; other
// actors' chains interleave freely. The inter-step delay is pacing
// only — it carries no cross-actor ordering guarantee.
type ChainScheduler struct {
	keeper  *Keeper
	now     time.Duration
	nextSeq uint64
	pending map[string]*chainedTask
}

// NewChainScheduler creates a scheduler bound to a keeper.
func NewChainScheduler(k *Keeper) *ChainScheduler {
	return &ChainScheduler{
		keeper:  k,
		pending: make(map[string]*chainedTask),
	}
}

// Now returns the scheduler's virtual time.
func (s *ChainScheduler) Now() time.Duration {
	return s.now
}

// Pending reports whether an actor has a scheduled step.
func (s *ChainScheduler) Pending(actor string) bool {
	_, ok := s.pending[actor]
	return ok
}

// Schedule queues a step for an actor after the given delay. An actor
// with an in-flight step rejects the new request rather than
// interleaving with it. A paused engine refuses new chains; steps
// already queued stay held until Resume.
func (s *ChainScheduler) Schedule(actor string, delay time.Duration, step ChainStep) error {
	if s.keeper.IsPaused() {
		return types.ErrEnginePaused.Wrap("chained trades are suspended")
	}
	if actor == "" {
		return types.ErrInvalidParams.Wrap("actor must not be empty")
	}
	if step == nil {
		return types.ErrInvalidParams.Wrap("nil chain step")
	}
	if delay < 0 {
		return types.ErrInvalidParams.Wrapf("negative delay %s", delay)
	}
	if _, busy := s.pending[actor]; busy {
		return types.ErrChainBusy.Wrapf("actor %s", actor)
	}

	s.nextSeq++
	s.pending[actor] = &chainedTask{
		actor: actor,
		dueAt: s.now + delay,
		seq:   s.nextSeq,
		step:  step,
	}
	return nil
}

// Cancel drops an actor's pending step. Returns false if none existed.
func (s *ChainScheduler) Cancel(actor string) bool {
	if _, ok := s.pending[actor]; !ok {
		return false
	}
	delete(s.pending, actor)
	return true
}

// CancelAll drops every pending step.
func (s *ChainScheduler) CancelAll() {
	s.pending = make(map[string]*chainedTask)
}

// Advance moves the virtual clock forward and executes every step that
// came due, in due-time then submission order. The pause switch is
// checked per step at execution time, not at submission: pausing the
// engine leaves due steps queued until Resume. Steps scheduled during
// the drain wait for the next Advance even at zero delay, so a
// self-rescheduling chain cannot keep the loop alive forever.
func (s *ChainScheduler) Advance(d time.Duration) error {
	if d < 0 {
		return types.ErrInvalidParams.Wrapf("negative advance %s", d)
	}
	s.now += d
	maxSeq := s.nextSeq

	for {
		task := s.nextDue(maxSeq)
		if task == nil {
			return nil
		}
		if s.keeper.IsPaused() {
			// Leave everything queued; Resume + Advance picks it up.
			return nil
		}

		// Free the actor's slot before running so the step can chain
		// its own follow-up.
		delete(s.pending, task.actor)
		if err := task.step(s.keeper); err != nil {
			s.keeper.Logger().Error("chained trade step failed",
				"actor", task.actor, "error", err)
		}
	}
}

// nextDue returns the due task with the earliest (dueAt, seq) among
// those submitted at or before maxSeq, nil when nothing qualifies.
func (s *ChainScheduler) nextDue(maxSeq uint64) *chainedTask {
	due := make([]*chainedTask, 0, len(s.pending))
	for _, task := range s.pending {
		if task.dueAt <= s.now && task.seq <= maxSeq {
			due = append(due, task)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].dueAt != due[j].dueAt {
			return due[i].dueAt < due[j].dueAt
		}
		return due[i].seq < due[j].seq
	})
	return due[0]
}

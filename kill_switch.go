package flowkit

import (
	"sync/atomic"
)

// KillSwitch tells a BatchTask to stop submitting further batches. Observe is
// fed every terminal state of a run and may be called concurrently by item
// completions within a batch, so implementations must update their counters
// atomically. Tripped is a pure query with no side effect.
//
// A switch belongs to a single run: create one per Map invocation and discard
// it afterwards.
type KillSwitch interface {
	//Observe advance the switch state with one task outcome
	Observe(state *State)
	//Tripped report whether further batches must not be submitted
	Tripped() bool
}

// AnyFailedSwitch trips on the first failed or crashed task.
type AnyFailedSwitch struct {
	tripped atomic.Bool
}

func NewAnyFailedSwitch() *AnyFailedSwitch {
	return &AnyFailedSwitch{}
}

func (s *AnyFailedSwitch) Observe(state *State) {
	if state.IsFailed() || state.IsCrashed() {
		s.tripped.Store(true)
	}
}

func (s *AnyFailedSwitch) Tripped() bool {
	return s.tripped.Load()
}

// CountSwitch trips once the number of failed or crashed tasks reaches a
// fixed limit.
type CountSwitch struct {
	limit int64
	count atomic.Int64
}

//NewCountSwitch build a CountSwitch, limit must be positive
func NewCountSwitch(limit int) (*CountSwitch, error) {
	if limit <= 0 {
		return nil, NewBatchError(ErrCodeConfig, "kill switch limit must be positive, got:%v", limit)
	}
	return &CountSwitch{limit: int64(limit)}, nil
}

func (s *CountSwitch) Observe(state *State) {
	if state.IsFailed() || state.IsCrashed() {
		s.count.Add(1)
	}
}

func (s *CountSwitch) Tripped() bool {
	return s.count.Load() >= s.limit
}

//Count current number of observed failures
func (s *CountSwitch) Count() int {
	return int(s.count.Load())
}

// RateSwitch trips once the failure rate reaches maxFailRate, but only after
// at least minSample outcomes have been observed.
type RateSwitch struct {
	minSample   int64
	maxFailRate float64
	total       atomic.Int64
	failed      atomic.Int64
}

//NewRateSwitch build a RateSwitch, minSample must be positive and maxFailRate in (0, 1]
func NewRateSwitch(minSample int, maxFailRate float64) (*RateSwitch, error) {
	if minSample <= 0 {
		return nil, NewBatchError(ErrCodeConfig, "kill switch min sample must be positive, got:%v", minSample)
	}
	if maxFailRate <= 0 || maxFailRate > 1 {
		return nil, NewBatchError(ErrCodeConfig, "kill switch max fail rate must be in (0, 1], got:%v", maxFailRate)
	}
	return &RateSwitch{minSample: int64(minSample), maxFailRate: maxFailRate}, nil
}

func (s *RateSwitch) Observe(state *State) {
	s.total.Add(1)
	if state.IsFailed() || state.IsCrashed() {
		s.failed.Add(1)
	}
}

func (s *RateSwitch) Tripped() bool {
	total := s.total.Load()
	if total < s.minSample {
		return false
	}
	return float64(s.failed.Load())/float64(total) >= s.maxFailRate
}

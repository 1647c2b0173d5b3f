package flowkit

import (
	"context"
	"fmt"
	"testing"

	"github.com/bmizerany/assert"
)

func intItems(n int) []interface{} {
	items := make([]interface{}, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, i)
	}
	return items
}

func TestMakeBatches(t *testing.T) {
	cases := []struct {
		length, size, batches, lastLen int
	}{
		{10, 3, 4, 1},
		{10, 5, 2, 5},
		{1, 100, 1, 1},
		{1000, 100, 10, 100},
		{7, 7, 1, 7},
	}
	for _, c := range cases {
		batches := makeBatches(intItems(c.length), c.size)
		assert.Equal(t, c.batches, len(batches))
		assert.Equal(t, c.lastLen, len(batches[len(batches)-1]))

		// All batches except possibly the last have exactly size items, and
		// concatenating them in order reproduces the workload.
		next := 0
		for i, batch := range batches {
			if i < len(batches)-1 {
				assert.Equal(t, c.size, len(batch))
			}
			for _, item := range batch {
				assert.Equal(t, next, item)
				next++
			}
		}
		assert.Equal(t, c.length, next)
	}

	assert.Equal(t, 0, len(makeBatches(nil, 10)))
}

func TestNewBatchTask_ConfigErrors(t *testing.T) {
	task := func(ctx context.Context, item interface{}) (interface{}, error) { return item, nil }

	for _, size := range []int{0, -1} {
		b, err := NewBatchTask("bad-size", task, size)
		assert.Equal(t, (*BatchTask)(nil), b)
		batchErr, ok := err.(BatchError)
		assert.Equal(t, true, ok)
		assert.Equal(t, ErrCodeConfig, batchErr.Code())
	}

	_, err := NewBatchTask("", task, 10)
	assert.NotEqual(t, nil, err)

	_, err = NewBatchTask("nil-task", nil, 10)
	assert.NotEqual(t, nil, err)
}

func TestBatchTask_Map_NoKillSwitch(t *testing.T) {
	task := func(ctx context.Context, item interface{}) (interface{}, error) {
		n := item.(int)
		if n%3 == 0 {
			return nil, fmt.Errorf("reject %v", n)
		}
		return n * 2, nil
	}
	b, err := NewBatchTask("double", task, 4)
	assert.Equal(t, nil, err)

	states := b.Map(context.Background(), intItems(30))

	// Without a kill switch every batch is submitted regardless of failures.
	assert.Equal(t, 30, len(states))
	failures := 0
	for i, state := range states {
		if i%3 == 0 {
			assert.Equal(t, true, state.IsFailed())
			failures++
		} else {
			assert.Equal(t, true, state.IsCompleted())
			assert.Equal(t, i*2, state.Value)
		}
	}
	assert.Equal(t, 10, failures)
}

func TestBatchTask_Map_OrderPreserved(t *testing.T) {
	task := func(ctx context.Context, item interface{}) (interface{}, error) { return item, nil }
	b, err := NewBatchTask("echo", task, 7)
	assert.Equal(t, nil, err)

	states := b.Map(context.Background(), intItems(100))
	assert.Equal(t, 100, len(states))
	for i, state := range states {
		assert.Equal(t, i, state.Value)
	}
}

// Workload 0..999, size 100, limit 15, failures at x%100==0: only 10 failures
// total, the switch never trips and all items are covered.
func TestBatchTask_Map_SwitchBelowLimit(t *testing.T) {
	task := func(ctx context.Context, item interface{}) (interface{}, error) {
		n := item.(int)
		if n%100 == 0 {
			return nil, fmt.Errorf("fail %v", n)
		}
		return n, nil
	}
	ks, err := NewCountSwitch(15)
	assert.Equal(t, nil, err)
	b, err := NewBatchTask("mod100", task, 100, WithKillSwitch(ks))
	assert.Equal(t, nil, err)

	states := b.Map(context.Background(), intItems(1000))

	assert.Equal(t, 1000, len(states))
	failures := 0
	for _, state := range states {
		if state.IsFailed() {
			failures++
		}
	}
	assert.Equal(t, 10, failures)
	assert.Equal(t, false, ks.Tripped())
}

// Same workload, failures at x%7==0: the switch trips partway through, the
// run stops at a batch boundary and the result is a whole number of batches.
func TestBatchTask_Map_SwitchTripsMidRun(t *testing.T) {
	task := func(ctx context.Context, item interface{}) (interface{}, error) {
		n := item.(int)
		if n%7 == 0 {
			return nil, fmt.Errorf("fail %v", n)
		}
		return n, nil
	}
	ks, err := NewCountSwitch(15)
	assert.Equal(t, nil, err)
	b, err := NewBatchTask("mod7", task, 100, WithKillSwitch(ks))
	assert.Equal(t, nil, err)

	states := b.Map(context.Background(), intItems(1000))

	assert.Equal(t, true, ks.Tripped())
	assert.Equal(t, true, len(states) < 1000)
	assert.Equal(t, 0, len(states)%100)
	// Batch 1 alone has 15 multiples of 7 (0, 7, ..., 98), so the switch
	// trips before batch 2 is submitted.
	assert.Equal(t, 100, len(states))
}

func TestBatchTask_Map_TrippedSwitchBlocksNextRunBatches(t *testing.T) {
	calls := 0
	task := func(ctx context.Context, item interface{}) (interface{}, error) {
		calls++
		return nil, fmt.Errorf("always fails")
	}
	ks := NewAnyFailedSwitch()
	b, err := NewBatchTask("always-fail", task, 5, WithKillSwitch(ks), WithExecutor(sequentialExecutor{}))
	assert.Equal(t, nil, err)

	states := b.Map(context.Background(), intItems(50))

	// The switch trips during batch 1; in-flight items still finish and
	// their outcomes are kept, later batches are never submitted.
	assert.Equal(t, 5, len(states))
	assert.Equal(t, 5, calls)
}

func TestBatchTask_Map_CrashedStates(t *testing.T) {
	task := func(ctx context.Context, item interface{}) (interface{}, error) {
		if item.(int) == 3 {
			panic("kaboom")
		}
		return item, nil
	}
	b, err := NewBatchTask("panicky", task, 10)
	assert.Equal(t, nil, err)

	states := b.Map(context.Background(), intItems(5))
	assert.Equal(t, 5, len(states))
	assert.Equal(t, true, states[3].IsCrashed())
	assert.Equal(t, true, states[2].IsCompleted())
}

// sequentialExecutor runs items inline, one by one. Used to make submission
// counts deterministic in tests.
type sequentialExecutor struct{}

type readyFuture struct {
	value interface{}
	err   error
}

func (f readyFuture) Get() (interface{}, error) {
	return f.value, f.err
}

func (sequentialExecutor) Exec(ctx context.Context, task Task, items []interface{}) []Future {
	futures := make([]Future, 0, len(items))
	for _, item := range items {
		value, err := task(ctx, item)
		futures = append(futures, readyFuture{value: value, err: err})
	}
	return futures
}

type recordingListener struct {
	before []int
	after  []int
	stopAt int
}

func (l *recordingListener) BeforeBatch(ctx *BatchContext) BatchError {
	l.before = append(l.before, ctx.BatchIndex)
	if l.stopAt >= 0 && ctx.BatchIndex >= l.stopAt {
		return NewBatchError(ErrCodeStop, "stop requested at batch:%v", ctx.BatchIndex)
	}
	ctx.Put("seen", len(ctx.Items))
	return nil
}

func (l *recordingListener) AfterBatch(ctx *BatchContext, states []*State) BatchError {
	seen, err := ctx.GetInt("seen")
	if err != nil || seen != len(states) {
		return NewBatchError(ErrCodeGeneral, "context not shared across listener calls")
	}
	l.after = append(l.after, ctx.BatchIndex)
	return nil
}

func TestBatchTask_Map_Listeners(t *testing.T) {
	task := func(ctx context.Context, item interface{}) (interface{}, error) { return item, nil }

	listener := &recordingListener{stopAt: -1}
	b, err := NewBatchTask("listened", task, 10, WithListener(listener))
	assert.Equal(t, nil, err)
	states := b.Map(context.Background(), intItems(25))
	assert.Equal(t, 25, len(states))
	assert.Equal(t, []int{0, 1, 2}, listener.before)
	assert.Equal(t, []int{0, 1, 2}, listener.after)

	stopper := &recordingListener{stopAt: 1}
	b, err = NewBatchTask("stopped", task, 10, WithListener(stopper))
	assert.Equal(t, nil, err)
	states = b.Map(context.Background(), intItems(25))
	// Batch 0 ran, batch 1 was rejected before submission.
	assert.Equal(t, 10, len(states))
	assert.Equal(t, []int{0, 1}, stopper.before)
	assert.Equal(t, []int{0}, stopper.after)
}

package flowkit

import (
	"context"
	"reflect"
)

// BatchTask wraps a Task so a large workload is submitted to the execution
// primitive in bounded batches instead of all at once. Batches are submitted
// strictly in order: batch N+1 is not handed to the executor until every item
// of batch N reached a terminal state. An optional KillSwitch is consulted at
// each batch boundary; once it trips no further batch is submitted, while the
// batch already in flight is allowed to finish and its outcomes are kept.
type BatchTask struct {
	name       string
	task       Task
	size       int
	killSwitch KillSwitch
	executor   Executor
	listeners  []BatchListener
}

//Option customize a BatchTask beyond its required inputs
type Option func(*BatchTask)

//WithKillSwitch attach an early-abort guard, consulted at batch boundaries
func WithKillSwitch(ks KillSwitch) Option {
	return func(b *BatchTask) {
		b.killSwitch = ks
	}
}

//WithExecutor replace the default pool executor with a host-provided one
func WithExecutor(executor Executor) Option {
	return func(b *BatchTask) {
		b.executor = executor
	}
}

//WithListener register a listener for batch boundaries
func WithListener(listener BatchListener) Option {
	return func(b *BatchTask) {
		b.listeners = append(b.listeners, listener)
	}
}

//NewBatchTask wrap task to be executed in batches of size items
func NewBatchTask(name string, task Task, size int, opts ...Option) (*BatchTask, error) {
	if name == "" {
		return nil, NewBatchError(ErrCodeConfig, "batch task name must not be empty")
	}
	if task == nil {
		return nil, NewBatchError(ErrCodeConfig, "batch task must have a task func, name:%v", name)
	}
	if size <= 0 {
		return nil, NewBatchError(ErrCodeConfig, "batch size must be positive, got:%v", size)
	}
	b := &BatchTask{
		name:     name,
		task:     task,
		size:     size,
		executor: defaultExecutor,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

//Name the task name
func (b *BatchTask) Name() string {
	return b.name
}

// Map submits items to the executor in consecutive batches and returns the
// terminal state of every item actually submitted, flattened in workload
// order. Per-item failures are returned as FAILED or CRASHED states, never as
// an error of Map itself. When the kill switch trips or a listener rejects a
// batch, the remaining batches are skipped and their items are simply absent
// from the result: a result shorter than the workload is the early-stop
// signal.
func (b *BatchTask) Map(ctx context.Context, items []interface{}) []*State {
	batches := makeBatches(items, b.size)
	states := make([]*State, 0, len(items))
	for i, batch := range batches {
		if b.killSwitch != nil && b.killSwitch.Tripped() {
			logger.Info(ctx, "kill switch tripped, stop mapping, task:%v, remaining batches:%v of %v", b.name, len(batches)-i, len(batches))
			break
		}
		batchCtx := newBatchContext(i, len(batches), batch)
		if !b.beforeBatch(ctx, batchCtx) {
			break
		}
		logger.Debug(ctx, "mapping task:%v batch %v of %v, items:%v", b.name, i+1, len(batches), len(batch))
		batchStates := b.execBatch(ctx, batch)
		states = append(states, batchStates...)
		if !b.afterBatch(ctx, batchCtx, batchStates) {
			break
		}
	}
	return states
}

// execBatch hands one batch to the executor and waits for every item to reach
// a terminal state before returning.
func (b *BatchTask) execBatch(ctx context.Context, batch []interface{}) []*State {
	futures := b.executor.Exec(ctx, b.task, batch)
	states := make([]*State, 0, len(batch))
	for _, future := range futures {
		state := stateOf(future.Get())
		if b.killSwitch != nil {
			b.killSwitch.Observe(state)
		}
		states = append(states, state)
	}
	return states
}

func (b *BatchTask) beforeBatch(ctx context.Context, batchCtx *BatchContext) bool {
	for _, listener := range b.listeners {
		if err := listener.BeforeBatch(batchCtx); err != nil {
			logger.Error(ctx, "batch listener rejected batch, task:%v, batch:%v, listener:%v, err:%v", b.name, batchCtx.BatchIndex, reflect.TypeOf(listener).String(), err)
			return false
		}
	}
	return true
}

func (b *BatchTask) afterBatch(ctx context.Context, batchCtx *BatchContext, states []*State) bool {
	for _, listener := range b.listeners {
		if err := listener.AfterBatch(batchCtx, states); err != nil {
			logger.Error(ctx, "batch listener stopped run, task:%v, batch:%v, listener:%v, err:%v", b.name, batchCtx.BatchIndex, reflect.TypeOf(listener).String(), err)
			return false
		}
	}
	return true
}

func stateOf(value interface{}, err error) *State {
	if err == nil {
		return Completed(value)
	}
	if _, ok := err.(*panicError); ok {
		return Crashed(err)
	}
	return Failed(err)
}

// makeBatches partitions items, in order, into consecutive slices of at most
// size elements. Every item lands in exactly one batch and concatenating the
// batches reproduces the input. The returned batches share the backing array
// of items.
func makeBatches(items []interface{}, size int) [][]interface{} {
	if len(items) == 0 {
		return nil
	}
	batches := make([][]interface{}, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		batches = append(batches, items[start:end])
	}
	return batches
}

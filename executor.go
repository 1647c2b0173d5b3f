package flowkit

import (
	"context"
)

// Task is one unit of work, invoked once per workload item by the host
// execution primitive. It must not retain the item after returning.
type Task func(ctx context.Context, item interface{}) (interface{}, error)

// Executor is the host framework's bulk-invocation primitive: it runs a task
// over a sequence of items and hands back one future per item, in input
// order. How many items run in parallel, and whether invocations are retried
// or distributed, is entirely the executor's business.
type Executor interface {
	Exec(ctx context.Context, task Task, items []interface{}) []Future
}

// PoolExecutor runs task invocations on a local goroutine pool. It is the
// default executor for BatchTask when the caller does not bring its own.
type PoolExecutor struct {
	pool *taskPool
}

//NewPoolExecutor build an executor with a dedicated pool of the given size
func NewPoolExecutor(size int) *PoolExecutor {
	return &PoolExecutor{pool: newTaskPool(size)}
}

func (e *PoolExecutor) Exec(ctx context.Context, task Task, items []interface{}) []Future {
	futures := make([]Future, 0, len(items))
	for _, item := range items {
		item := item
		futures = append(futures, e.pool.Submit(ctx, func() (interface{}, error) {
			return task(ctx, item)
		}))
	}
	return futures
}

//SetMaxSize tune the number of goroutines available to the executor
func (e *PoolExecutor) SetMaxSize(size int) {
	e.pool.SetMaxSize(size)
}

//Release stop the underlying pool, further Exec calls return failed futures
func (e *PoolExecutor) Release() {
	e.pool.Release()
}

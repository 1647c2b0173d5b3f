package flowkit

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// BatchContext describes one batch of a Map run and carries free-form
// key/value state for listeners. The same context value is passed to
// BeforeBatch and AfterBatch of every listener, so a listener can stash
// something in BeforeBatch and pick it up in AfterBatch.
type BatchContext struct {
	//BatchIndex zero-based index of the batch within the run
	BatchIndex int
	//BatchCount total number of batches in the run
	BatchCount int
	//Items the workload items submitted in this batch
	Items []interface{}

	kvs map[string]interface{}
}

func newBatchContext(index, count int, items []interface{}) *BatchContext {
	return &BatchContext{
		BatchIndex: index,
		BatchCount: count,
		Items:      items,
		kvs:        map[string]interface{}{},
	}
}

func (ctx *BatchContext) Put(key string, value interface{}) {
	ctx.kvs[key] = value
}

func (ctx *BatchContext) Exists(key string) bool {
	return ctx.kvs[key] != nil
}

func (ctx *BatchContext) Remove(key string) {
	delete(ctx.kvs, key)
}

func (ctx *BatchContext) Get(key string, def ...interface{}) interface{} {
	val := ctx.kvs[key]
	if val == nil && len(def) > 0 {
		val = def[0]
	}
	return val
}

func (ctx *BatchContext) GetInt(key string, def ...int) (int, error) {
	v := ctx.kvs[key]
	if v == nil {
		if len(def) > 0 {
			return def[0], nil
		}
		return 0, errors.Errorf("no value for key:%v", key)
	}
	switch val := v.(type) {
	case int:
		return val, nil
	case int32:
		return int(val), nil
	case int64:
		return int(val), nil
	case float64:
		return int(val), nil
	case json.Number:
		i, err := val.Int64()
		return int(i), err
	}
	return 0, errors.Errorf("value for key:%v is not an int:%v", key, v)
}

func (ctx *BatchContext) GetString(key string, def ...string) (string, error) {
	v := ctx.kvs[key]
	if v == nil {
		if len(def) > 0 {
			return def[0], nil
		}
		return "", errors.Errorf("no value for key:%v", key)
	}
	if s, ok := v.(string); ok {
		return s, nil
	}
	return fmt.Sprintf("%v", v), nil
}

func (ctx *BatchContext) MarshalJSON() ([]byte, error) {
	return json.Marshal(ctx.kvs)
}

func (ctx *BatchContext) UnmarshalJSON(b []byte) error {
	if ctx.kvs == nil {
		ctx.kvs = map[string]interface{}{}
	}
	return json.Unmarshal(b, &ctx.kvs)
}

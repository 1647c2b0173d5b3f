package flowkit

import (
	"fmt"
	"testing"

	"github.com/bmizerany/assert"
	"github.com/flowutils/flowkit/util"
)

func TestBatchContext_Get(t *testing.T) {
	ctx := newBatchContext(0, 1, nil)
	v := ctx.Get("key")
	assert.Equal(t, nil, v)
	assert.Equal(t, "fallback", ctx.Get("key", "fallback"))

	ctx.Put("key", "1111")
	assert.Equal(t, "1111", ctx.Get("key"))
	assert.Equal(t, true, ctx.Exists("key"))

	ctx.Remove("key")
	assert.Equal(t, false, ctx.Exists("key"))
}

func TestBatchContext_GetInt(t *testing.T) {
	ctx := newBatchContext(2, 5, nil)
	ctx.Put("count", 100)
	ctx.Put("ratio", float64(7))
	ctx.Put("name", "abc")

	v, err := ctx.GetInt("count")
	assert.Equal(t, nil, err)
	assert.Equal(t, 100, v)

	v, err = ctx.GetInt("ratio")
	assert.Equal(t, nil, err)
	assert.Equal(t, 7, v)

	v, err = ctx.GetInt("missing", 42)
	assert.Equal(t, nil, err)
	assert.Equal(t, 42, v)

	_, err = ctx.GetInt("missing")
	assert.NotEqual(t, nil, err)

	_, err = ctx.GetInt("name")
	assert.NotEqual(t, nil, err)
}

func TestBatchContext_MarshalJSON(t *testing.T) {
	batchCtx := newBatchContext(0, 2, []interface{}{1, 2, 3})
	batchCtx.Put("count", 100)
	batchCtx.Put("current", 5)

	jsonStr, err := util.JsonString(batchCtx)
	assert.Equal(t, nil, err)
	fmt.Printf("json:%v\n", jsonStr)

	batchCtx2 := &BatchContext{}
	err = util.ParseJson(jsonStr, batchCtx2)
	assert.Equal(t, nil, err)
	count, err := batchCtx2.GetInt("count")
	assert.Equal(t, nil, err)
	assert.Equal(t, 100, count)
}

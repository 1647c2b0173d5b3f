package flowkit

import (
	"fmt"
	"testing"

	"github.com/bmizerany/assert"
)

func TestBatchErr_Format(t *testing.T) {
	batchErr := NewBatchError(ErrCodeGeneral, "new error")
	assert.Equal(t, ErrCodeGeneral, batchErr.Code())
	assert.Equal(t, "new error", batchErr.Message())
	fmt.Printf("batchErr: %v\n", batchErr)
	fmt.Printf("batchErr detail: %+v\n", batchErr)
	assert.NotEqual(t, 0, len(batchErr.StackTrace()))

	err := fmt.Errorf("some error raised from store")
	batchErr2 := NewBatchError(ErrCodeGeneral, "wrap error", err)
	assert.Equal(t, "wrap error", batchErr2.Message())
	fmt.Printf("batchErr2: %v\n", batchErr2)
	fmt.Printf("batchErr2 detail: %+v\n", batchErr2)

	batchErr3 := NewBatchError(ErrCodeGeneral, "wrap error:%v", err)
	assert.Equal(t, "wrap error:some error raised from store", batchErr3.Message())
	stackTrace3 := batchErr3.StackTrace()
	assert.NotEqual(t, 0, len(stackTrace3))
}

func TestNewBatchError_KeepsBatchErrorCode(t *testing.T) {
	inner := NewBatchError(ErrCodeConfig, "batch size must be positive, got:%v", -1)
	assert.Equal(t, ErrCodeConfig, inner.Code())
	assert.Equal(t, "batch size must be positive, got:-1", inner.Message())
}

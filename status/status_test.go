package status

import (
	"testing"

	"github.com/bmizerany/assert"
)

func TestStatus_IsTerminal(t *testing.T) {
	assert.Equal(t, false, PENDING.IsTerminal())
	assert.Equal(t, false, RUNNING.IsTerminal())
	assert.Equal(t, true, COMPLETED.IsTerminal())
	assert.Equal(t, true, FAILED.IsTerminal())
	assert.Equal(t, true, CRASHED.IsTerminal())
	assert.Equal(t, true, CANCELLED.IsTerminal())
}

func TestStatus_And(t *testing.T) {
	assert.Equal(t, FAILED, COMPLETED.And(FAILED))
	assert.Equal(t, FAILED, FAILED.And(COMPLETED))
	assert.Equal(t, CRASHED, FAILED.And(CRASHED))
	assert.Equal(t, RUNNING, PENDING.And(RUNNING))
	assert.Equal(t, COMPLETED, Status("bogus").And(COMPLETED))
}

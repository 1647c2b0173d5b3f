package flowkit

import (
	"fmt"

	"github.com/flowutils/flowkit/status"
)

// State is the outcome of one task invocation for one workload item. The
// host execution primitive owns how the item ran; the state only records how
// it ended.
type State struct {
	Status status.Status
	Value  interface{}
	Err    error
}

//Completed build a successful state carrying the task's return value
func Completed(value interface{}) *State {
	return &State{Status: status.COMPLETED, Value: value}
}

//Failed build a state for a task that returned an error
func Failed(err error) *State {
	return &State{Status: status.FAILED, Err: err}
}

//Crashed build a state for a task that panicked
func Crashed(err error) *State {
	return &State{Status: status.CRASHED, Err: err}
}

//Cancelled build a state for an item that was cancelled before completion
func Cancelled(err error) *State {
	return &State{Status: status.CANCELLED, Err: err}
}

func (s *State) IsCompleted() bool {
	return s.Status == status.COMPLETED
}

func (s *State) IsFailed() bool {
	return s.Status == status.FAILED
}

func (s *State) IsCrashed() bool {
	return s.Status == status.CRASHED
}

func (s *State) IsTerminal() bool {
	return s.Status.IsTerminal()
}

func (s *State) String() string {
	if s.Err != nil {
		return fmt.Sprintf("%v(%v)", s.Status, s.Err)
	}
	return string(s.Status)
}

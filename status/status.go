package status

//Status state of a single task invocation
type Status string

const (
	//PENDING the item is scheduled but not yet submitted
	PENDING Status = "PENDING"
	//RUNNING the item is executing
	RUNNING Status = "RUNNING"
	//COMPLETED the item finished successfully
	COMPLETED Status = "COMPLETED"
	//FAILED the task returned an error for the item
	FAILED Status = "FAILED"
	//CRASHED the task panicked or was killed by infrastructure
	CRASHED Status = "CRASHED"
	//CANCELLED the item was cancelled before or during execution
	CANCELLED Status = "CANCELLED"
)

var severity = map[Status]int{
	PENDING:   0,
	RUNNING:   1,
	COMPLETED: 2,
	CANCELLED: 3,
	FAILED:    4,
	CRASHED:   5,
}

//IsTerminal reports whether no further transition can happen from the status
func (s Status) IsTerminal() bool {
	switch s {
	case COMPLETED, FAILED, CRASHED, CANCELLED:
		return true
	}
	return false
}

//And merges two statuses, keeping the more severe one
func (s Status) And(other Status) Status {
	i1, ok1 := severity[s]
	i2, ok2 := severity[other]
	if ok1 && ok2 {
		if i1 < i2 {
			return other
		}
		return s
	} else if ok1 {
		return other
	}
	return s
}

package flowkit

import (
	"os"

	"github.com/flowutils/flowkit/internal/logs"
)

//log
var logger logs.Logger = logs.NewLogger(os.Stdout, logs.Info)

//SetLogger set a logger instance for flowkit
func SetLogger(l logs.Logger) {
	logger = l
}

//task pool
const (
	DefaultTaskPoolSize = 1000
)

var defaultExecutor = NewPoolExecutor(DefaultTaskPoolSize)

//SetMaxRunningTasks set max number of parallel task invocations on the default executor
func SetMaxRunningTasks(size int) {
	defaultExecutor.SetMaxSize(size)
}

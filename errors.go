package flowkit

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// BatchError carries an error code alongside the message so callers can tell
// configuration mistakes apart from runtime failures.
type BatchError interface {
	Code() string
	Message() string
	Error() string
	StackTrace() errors.StackTrace
}

type batchErr struct {
	code string
	msg  string
	err  error
}

func (err *batchErr) Code() string {
	return err.code
}

func (err *batchErr) Message() string {
	return err.msg
}

func (err *batchErr) Error() string {
	return fmt.Sprintf("batch err, code:%v, message:%v", err.code, err.msg)
}

func (err *batchErr) Unwrap() error {
	return err.err
}

func (err *batchErr) StackTrace() errors.StackTrace {
	type stackTracer interface {
		StackTrace() errors.StackTrace
	}
	if tracer, ok := err.err.(stackTracer); ok {
		return tracer.StackTrace()
	}
	return nil
}

func (err *batchErr) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			fmt.Fprintf(s, "%s\n%+v", err.Error(), err.err)
			return
		}
		fallthrough
	case 's':
		fmt.Fprint(s, err.Error())
	case 'q':
		fmt.Fprintf(s, "%q", err.Error())
	}
}

// NewBatchError builds a BatchError from a code and a formatted message. If
// the last argument is an error left unconsumed by the format verbs in msg,
// it is kept as the cause of the returned error.
func NewBatchError(code string, msg string, args ...interface{}) BatchError {
	var cause error
	if len(args) > 0 {
		if e, ok := args[len(args)-1].(error); ok && strings.Count(msg, "%") < len(args) {
			cause = e
			args = args[:len(args)-1]
		}
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	if cause == nil {
		cause = errors.New(msg)
	} else {
		cause = errors.WithStack(cause)
	}
	return &batchErr{code: code, msg: msg, err: cause}
}

const (
	//ErrCodeConfig invalid construction input, must be fixed by the caller
	ErrCodeConfig = "config"
	//ErrCodeStop mapping stopped before the whole workload was submitted
	ErrCodeStop = "stop"
	//ErrCodeConcurrency concurrent misuse of a single-run object
	ErrCodeConcurrency = "concurrency"
	//ErrCodeGeneral any other failure
	ErrCodeGeneral = "general"
)
